package errors

import (
	"errors"
	"fmt"

	"teamline/domain/event"
)

var (
	ErrNotAMember     = fmt.Errorf("not a member of this channel")
	ErrEmptyMessage   = fmt.Errorf("message body is empty")
	ErrContentTooLong = fmt.Errorf("message body exceeds maximum length")
	ErrMessageNotSent = fmt.Errorf("message could not be stored")
	ErrUnknownEvent   = fmt.Errorf("unknown event")
	ErrInvalidPayload = fmt.Errorf("invalid payload")
	ErrUnauthorized   = fmt.Errorf("invalid or missing credential")
	ErrUnknownUser    = fmt.Errorf("unknown user")
	ErrUnknownMessage = fmt.Errorf("unknown message")
	ErrNotInHuddle    = fmt.Errorf("not a huddle participant")
	ErrWorkerPanic    = fmt.Errorf("worker panic")
)

// ToWireEvent maps an error to the typed error event sent to the
// requesting session only. Unrecognized errors become a generic
// internal error so store internals never leak to clients.
func ToWireEvent(err error) event.Error {
	switch {
	case errors.Is(err, ErrNotAMember):
		return event.Error{Code: "NOT_A_MEMBER", Message: ErrNotAMember.Error()}
	case errors.Is(err, ErrEmptyMessage):
		return event.Error{Code: "EMPTY_MESSAGE", Message: ErrEmptyMessage.Error()}
	case errors.Is(err, ErrContentTooLong):
		return event.Error{Code: "CONTENT_TOO_LONG", Message: ErrContentTooLong.Error()}
	case errors.Is(err, ErrMessageNotSent):
		return event.Error{Code: "MESSAGE_NOT_SENT", Message: ErrMessageNotSent.Error()}
	case errors.Is(err, ErrUnknownEvent):
		return event.Error{Code: "UNKNOWN_EVENT", Message: ErrUnknownEvent.Error()}
	case errors.Is(err, ErrInvalidPayload):
		return event.Error{Code: "INVALID_PAYLOAD", Message: ErrInvalidPayload.Error()}
	case errors.Is(err, ErrUnauthorized):
		return event.Error{Code: "UNAUTHORIZED", Message: ErrUnauthorized.Error()}
	case errors.Is(err, ErrUnknownUser):
		return event.Error{Code: "UNKNOWN_USER", Message: ErrUnknownUser.Error()}
	case errors.Is(err, ErrUnknownMessage):
		return event.Error{Code: "UNKNOWN_MESSAGE", Message: ErrUnknownMessage.Error()}
	case errors.Is(err, ErrNotInHuddle):
		return event.Error{Code: "NOT_IN_HUDDLE", Message: ErrNotInHuddle.Error()}
	default:
		return event.Error{Code: "INTERNAL", Message: "internal error"}
	}
}
