package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToWireEvent_Maps_Known_Errors(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{ErrNotAMember, "NOT_A_MEMBER"},
		{ErrEmptyMessage, "EMPTY_MESSAGE"},
		{ErrContentTooLong, "CONTENT_TOO_LONG"},
		{ErrMessageNotSent, "MESSAGE_NOT_SENT"},
		{ErrUnknownEvent, "UNKNOWN_EVENT"},
		{ErrInvalidPayload, "INVALID_PAYLOAD"},
		{ErrUnauthorized, "UNAUTHORIZED"},
		{ErrUnknownUser, "UNKNOWN_USER"},
		{ErrUnknownMessage, "UNKNOWN_MESSAGE"},
		{ErrNotInHuddle, "NOT_IN_HUDDLE"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			req := require.New(t)
			wire := ToWireEvent(tt.err)
			req.Equal(tt.code, wire.Code)
			req.NotEmpty(wire.Message)
		})
	}
}

func TestToWireEvent_Sees_Through_Wrapping(t *testing.T) {
	req := require.New(t)

	wrapped := fmt.Errorf("decode join payload: %w", ErrInvalidPayload)

	req.Equal("INVALID_PAYLOAD", ToWireEvent(wrapped).Code)
}

func TestToWireEvent_Never_Leaks_Internals(t *testing.T) {
	req := require.New(t)

	wire := ToWireEvent(fmt.Errorf("badger: disk is on fire"))

	req.Equal("INTERNAL", wire.Code)
	req.NotContains(wire.Message, "badger")
}
