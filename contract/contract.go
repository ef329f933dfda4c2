//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"teamline/domain"
	"teamline/domain/event"
)

// EventSink is where outbound events for one consumer go. Sinks own
// their backpressure policy; Consume must not block past ctx.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

type WorkerName string

// Worker doesn't protect itself; supervision is the supervisor's job.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Stop()
}

// GetWorkerName uses reflection to retrieve the type name of the
// worker, used for logging and supervision without forcing every
// worker to carry a name.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// MembershipStore is the external channel-membership authority.
// The core reads it synchronously and never writes through it.
type MembershipStore interface {
	IsMember(ctx context.Context, channelID, userID string) (bool, error)
	ListMembers(ctx context.Context, channelID string) ([]domain.ChannelMember, error)
}

// MessageStore is the external durable message authority. The core
// calls it inside the send handler before any broadcast.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg domain.Message) error
	ToggleReaction(ctx context.Context, channelID, messageID, emoji, userID string) (map[string][]string, error)
	IncrementUnread(ctx context.Context, channelID string, userIDs []string) error
	ResetUnread(ctx context.Context, channelID, userID string) error
	TouchChannelActivity(ctx context.Context, channelID string, at time.Time) error
}

// UserDirectory resolves profiles, display names and global
// notification settings.
type UserDirectory interface {
	Profile(ctx context.Context, tenantID, userID string) (domain.UserProfile, error)
	Profiles(ctx context.Context, tenantID string, userIDs []string) ([]domain.UserProfile, error)
}
