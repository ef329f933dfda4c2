//go:generate go run go.uber.org/mock/mockgen -source=realtime_service.go -destination=../mocks/mock_realtime_service.go -package=mocks
// Package services wires the coordination state, the external
// stores and the fan-out router into the per-event handlers the
// gateway dispatches to.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"teamline/contract"
	"teamline/domain"
	"teamline/domain/event"
	errs "teamline/errors"
	"teamline/moderation"
	"teamline/observability"
	"teamline/runtime"
)

const previewLength = 120

type IRealtimeService interface {
	Connect(ctx context.Context, sess domain.Session, sink contract.EventSink)
	Disconnect(ctx context.Context, sess domain.Session)

	JoinChannel(ctx context.Context, sess domain.Session, channelID string) error
	LeaveChannel(ctx context.Context, sess domain.Session, channelID string)
	SendMessage(ctx context.Context, sess domain.Session, cmd event.SendMessage) error
	Typing(ctx context.Context, sess domain.Session, channelID string)
	StopTyping(ctx context.Context, sess domain.Session, channelID string)
	ReadMessages(ctx context.Context, sess domain.Session, channelID string) error
	AddReaction(ctx context.Context, sess domain.Session, cmd event.AddReaction) error

	HuddleJoin(ctx context.Context, sess domain.Session, channelID string)
	HuddleLeave(ctx context.Context, sess domain.Session, channelID string)
	HuddleSignal(ctx context.Context, sess domain.Session, cmd event.HuddleSignalCmd)
	HuddleToggleMedia(ctx context.Context, sess domain.Session, cmd event.HuddleToggleMedia)

	CanvasJoin(ctx context.Context, sess domain.Session, channelID string)
	CanvasLeave(ctx context.Context, sess domain.Session, channelID string)
	CanvasCursor(ctx context.Context, sess domain.Session, cmd event.CanvasCursorCmd)
	CanvasElements(ctx context.Context, sess domain.Session, cmd event.CanvasElementsCmd)
}

type RealtimeService struct {
	log              *slog.Logger
	state            *runtime.State
	members          contract.MembershipStore
	messages         contract.MessageStore
	users            contract.UserDirectory
	censor           *moderation.Moderator
	monitor          *observability.Monitor
	maxContentLength int
	now              func() time.Time
}

func NewRealtimeService(
	log *slog.Logger,
	state *runtime.State,
	members contract.MembershipStore,
	messages contract.MessageStore,
	users contract.UserDirectory,
	censor *moderation.Moderator,
	monitor *observability.Monitor,
	maxContentLength int,
) *RealtimeService {
	return &RealtimeService{
		log:              log,
		state:            state,
		members:          members,
		messages:         messages,
		users:            users,
		censor:           censor,
		monitor:          monitor,
		maxContentLength: maxContentLength,
		now:              time.Now,
	}
}

// Connect places the admitted session into its implicit per-user
// and per-tenant rooms, announces the user if this is their first
// session, and answers with the online snapshot.
func (s *RealtimeService) Connect(ctx context.Context, sess domain.Session, sink contract.EventSink) {
	s.state.Registry.Register(sess.ID, sink)
	s.state.Registry.Join(sess.ID, runtime.UserRoom(sess.UserID))
	s.state.Registry.Join(sess.ID, runtime.TenantRoom(sess.TenantID))

	if first := s.state.Presence.Add(sess.TenantID, sess.UserID); first {
		s.broadcast(ctx, runtime.TenantRoom(sess.TenantID), event.UserOnline{UserID: sess.UserID}, sess.ID)
	}

	online := s.state.Presence.Snapshot(sess.TenantID)
	snapshot := event.OnlineUsers{Users: s.resolveOnlineUsers(ctx, sess.TenantID, online)}
	s.state.Registry.Send(ctx, sess.ID, snapshot)

	s.monitor.SessionOpened()
	s.log.Info("Session admitted",
		"session_id", sess.ID, "user_id", sess.UserID, "tenant_id", sess.TenantID)
}

func (s *RealtimeService) resolveOnlineUsers(ctx context.Context, tenantID string, userIDs []string) []event.OnlineUser {
	profiles, err := s.users.Profiles(ctx, tenantID, userIDs)
	if err != nil {
		s.log.Warn("Profile lookup failed for online snapshot", "tenant_id", tenantID, "error", err)
		return lo.Map(userIDs, func(id string, _ int) event.OnlineUser {
			return event.OnlineUser{UserID: id}
		})
	}
	return lo.Map(profiles, func(p domain.UserProfile, _ int) event.OnlineUser {
		return event.OnlineUser{UserID: p.ID, DisplayName: p.DisplayName}
	})
}

// Disconnect runs the deterministic cleanup for a closed session:
// typing sweep, huddle departures, canvas departures, presence
// removal, then the registry drop. Broadcasts happen before the
// drop so the departing session's rooms still resolve.
func (s *RealtimeService) Disconnect(ctx context.Context, sess domain.Session) {
	for _, channelID := range s.state.Typing.Sweep(sess.UserID) {
		s.broadcast(ctx, runtime.ChannelRoom(channelID),
			event.StopTyping{ChannelID: channelID, UserID: sess.UserID}, sess.ID)
	}

	for channelID, peerID := range s.state.Huddles.LeaveAll(sess.UserID) {
		s.broadcast(ctx, runtime.HuddleRoom(channelID),
			event.HuddleUserLeft{ChannelID: channelID, UserID: sess.UserID, PeerID: peerID}, sess.ID)
	}

	for _, channelID := range s.state.Canvas.LeaveAll(sess.UserID) {
		s.broadcast(ctx, runtime.CanvasRoom(channelID),
			event.CanvasCursor{ChannelID: channelID, UserID: sess.UserID}, sess.ID)
		s.broadcast(ctx, runtime.CanvasRoom(channelID),
			event.CanvasUserLeft{ChannelID: channelID, UserID: sess.UserID}, sess.ID)
	}

	if s.state.Presence.Remove(sess.TenantID, sess.UserID) {
		s.broadcast(ctx, runtime.TenantRoom(sess.TenantID), event.UserOffline{UserID: sess.UserID}, sess.ID)
	}

	s.state.Registry.Drop(sess.ID)
	s.monitor.SessionClosed()
	s.log.Info("Session closed", "session_id", sess.ID, "user_id", sess.UserID)
}

// JoinChannel checks membership with the external store before
// admitting the session to the channel room. A denial is a typed
// error to the caller only, with no side effects.
func (s *RealtimeService) JoinChannel(ctx context.Context, sess domain.Session, channelID string) error {
	ok, err := s.members.IsMember(ctx, channelID, sess.UserID)
	if err != nil {
		return fmt.Errorf("membership lookup for channel %s: %w", channelID, err)
	}
	if !ok {
		return errs.ErrNotAMember
	}

	s.state.Registry.Join(sess.ID, runtime.ChannelRoom(channelID))

	members, err := s.members.ListMembers(ctx, channelID)
	if err != nil {
		s.log.Warn("Member list lookup failed after join", "channel_id", channelID, "error", err)
	}
	online := lo.FilterMap(members, func(m domain.ChannelMember, _ int) (string, bool) {
		return m.UserID, s.state.Presence.IsOnline(sess.TenantID, m.UserID)
	})
	s.state.Registry.Send(ctx, sess.ID, event.ChannelJoined{ChannelID: channelID, OnlineMembers: online})
	return nil
}

// LeaveChannel removes room membership only; presence and typing
// state are untouched.
func (s *RealtimeService) LeaveChannel(_ context.Context, sess domain.Session, channelID string) {
	s.state.Registry.Leave(sess.ID, runtime.ChannelRoom(channelID))
}

// SendMessage is the persist-then-broadcast pipeline: validate,
// clear the sender's typing state, censor, persist, update counters,
// broadcast the message, then evaluate the alert decision for every
// other member. A message that failed to persist is never broadcast.
func (s *RealtimeService) SendMessage(ctx context.Context, sess domain.Session, cmd event.SendMessage) error {
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return errs.ErrEmptyMessage
	}
	if s.maxContentLength > 0 && len([]rune(content)) > s.maxContentLength {
		return errs.ErrContentTooLong
	}

	if s.state.Typing.Stop(cmd.ChannelID, sess.UserID) {
		s.broadcast(ctx, runtime.ChannelRoom(cmd.ChannelID),
			event.StopTyping{ChannelID: cmd.ChannelID, UserID: sess.UserID}, sess.ID)
	}

	censored, flagged := s.censor.Censor(content)
	if len(flagged) > 0 {
		s.log.Debug("Censored message content",
			"channel_id", cmd.ChannelID, "user_id", sess.UserID, "terms", len(flagged))
	}
	lang := whatlanggo.Detect(censored).Lang.Iso6391()

	msg := domain.Message{
		ID:          uuid.New(),
		TenantID:    sess.TenantID,
		ChannelID:   cmd.ChannelID,
		SenderID:    sess.UserID,
		SenderName:  s.displayName(ctx, sess),
		Content:     censored,
		Language:    lang,
		Attachments: cmd.Attachments,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		s.log.Error("Message persistence failed",
			"channel_id", cmd.ChannelID, "user_id", sess.UserID, "error", err)
		return errs.ErrMessageNotSent
	}
	s.monitor.MessagePersisted()

	members, err := s.members.ListMembers(ctx, cmd.ChannelID)
	if err != nil {
		s.log.Error("Member list lookup failed, skipping counters and alerts",
			"channel_id", cmd.ChannelID, "error", err)
	}
	recipients := lo.Filter(members, func(m domain.ChannelMember, _ int) bool {
		return m.UserID != sess.UserID
	})
	recipientIDs := lo.Map(recipients, func(m domain.ChannelMember, _ int) string { return m.UserID })

	if len(recipientIDs) > 0 {
		if err := s.messages.IncrementUnread(ctx, cmd.ChannelID, recipientIDs); err != nil {
			s.log.Warn("Unread counter update failed", "channel_id", cmd.ChannelID, "error", err)
		}
	}
	if err := s.messages.TouchChannelActivity(ctx, cmd.ChannelID, msg.CreatedAt); err != nil {
		s.log.Warn("Channel activity update failed", "channel_id", cmd.ChannelID, "error", err)
	}

	s.broadcast(ctx, runtime.ChannelRoom(cmd.ChannelID), event.ReceiveMessage{Message: msg})
	s.notifyRecipients(ctx, sess.TenantID, msg, recipients)
	return nil
}

// notifyRecipients evaluates the alert decision once per recipient
// and delivers it to their personal room. The decision never blocks
// the message broadcast, which already happened.
func (s *RealtimeService) notifyRecipients(ctx context.Context, tenantID string, msg domain.Message, recipients []domain.ChannelMember) {
	if len(recipients) == 0 {
		return
	}
	recipientIDs := lo.Map(recipients, func(m domain.ChannelMember, _ int) string { return m.UserID })
	profiles, err := s.users.Profiles(ctx, tenantID, recipientIDs)
	if err != nil {
		s.log.Error("Profile lookup failed, deciding on channel settings only",
			"channel_id", msg.ChannelID, "error", err)
		profiles = nil
	}
	byID := lo.KeyBy(profiles, func(p domain.UserProfile) string { return p.ID })

	now := s.now()
	for _, member := range recipients {
		profile, ok := byID[member.UserID]
		if !ok {
			// A directory gap still yields a decision: no keywords, no
			// mention name, channel-level settings only.
			profile = domain.UserProfile{
				ID: member.UserID,
				Settings: domain.NotificationSettings{
					MessagesEnabled: true,
					DesktopEnabled:  true,
				},
			}
		}
		decision := runtime.Decide(runtime.DecisionInput{
			Text:            msg.Content,
			RecipientName:   profile.DisplayName,
			Keywords:        profile.Settings.Keywords,
			NotifyOn:        member.NotifyOn,
			MuteUntil:       member.MuteUntil,
			ChannelSound:    member.Sound,
			Settings:        profile.Settings,
			RecipientOnline: s.state.Presence.IsOnline(tenantID, member.UserID),
			Now:             now,
		})
		s.broadcast(ctx, runtime.UserRoom(member.UserID), event.NewMessageNotification{
			ChannelID:   msg.ChannelID,
			MessageID:   msg.ID.String(),
			SenderName:  msg.SenderName,
			Preview:     preview(msg.Content),
			ShouldAlert: decision.ShouldAlert,
			AlertReason: string(decision.Reason),
			Sound:       decision.Sound,
		})
	}
}

// Typing rebroadcasts every typing event (dedup applies to the
// timer, not the outbound event) and re-arms the expiry.
func (s *RealtimeService) Typing(ctx context.Context, sess domain.Session, channelID string) {
	s.broadcast(ctx, runtime.ChannelRoom(channelID), event.Typing{
		ChannelID:   channelID,
		UserID:      sess.UserID,
		DisplayName: s.displayName(ctx, sess),
	}, sess.ID)

	s.state.Typing.Touch(channelID, sess.UserID, func(channelID, userID string) {
		// Expiry fires on the timer goroutine, long after the
		// triggering request's context is gone.
		s.broadcast(context.Background(), runtime.ChannelRoom(channelID),
			event.StopTyping{ChannelID: channelID, UserID: userID})
	})
}

func (s *RealtimeService) StopTyping(ctx context.Context, sess domain.Session, channelID string) {
	if s.state.Typing.Stop(channelID, sess.UserID) {
		s.broadcast(ctx, runtime.ChannelRoom(channelID),
			event.StopTyping{ChannelID: channelID, UserID: sess.UserID}, sess.ID)
	}
}

// ReadMessages resets the reader's unread counter and tells the
// channel so other clients can update read indicators.
func (s *RealtimeService) ReadMessages(ctx context.Context, sess domain.Session, channelID string) error {
	if err := s.messages.ResetUnread(ctx, channelID, sess.UserID); err != nil {
		return fmt.Errorf("reset unread for channel %s: %w", channelID, err)
	}
	s.broadcast(ctx, runtime.ChannelRoom(channelID),
		event.MessagesRead{ChannelID: channelID, UserID: sess.UserID}, sess.ID)
	return nil
}

// AddReaction toggles the (emoji, user) pair on a stored message and
// broadcasts the resulting reaction map to the channel.
func (s *RealtimeService) AddReaction(ctx context.Context, sess domain.Session, cmd event.AddReaction) error {
	reactions, err := s.messages.ToggleReaction(ctx, cmd.ChannelID, cmd.MessageID, cmd.Emoji, sess.UserID)
	if err != nil {
		return err
	}
	s.broadcast(ctx, runtime.ChannelRoom(cmd.ChannelID), event.ReactionUpdated{
		ChannelID: cmd.ChannelID,
		MessageID: cmd.MessageID,
		Reactions: reactions,
	})
	return nil
}

// HuddleJoin adds the session to the huddle, announces it to the
// existing participants, and answers the joiner with the roster it
// must dial. The mesh is full: one peer connection per participant.
func (s *RealtimeService) HuddleJoin(ctx context.Context, sess domain.Session, channelID string) {
	existing := s.state.Huddles.Join(channelID, sess.UserID, sess.ID)
	s.state.Registry.Join(sess.ID, runtime.HuddleRoom(channelID))

	s.broadcast(ctx, runtime.HuddleRoom(channelID), event.HuddleUserJoined{
		ChannelID: channelID,
		UserID:    sess.UserID,
		PeerID:    sess.ID,
	}, sess.ID)

	s.state.Registry.Send(ctx, sess.ID, event.HuddleParticipants{
		ChannelID:    channelID,
		Participants: existing,
	})
}

func (s *RealtimeService) HuddleLeave(ctx context.Context, sess domain.Session, channelID string) {
	peerID, ok := s.state.Huddles.Leave(channelID, sess.UserID)
	if !ok {
		return
	}
	s.state.Registry.Leave(sess.ID, runtime.HuddleRoom(channelID))
	s.broadcast(ctx, runtime.HuddleRoom(channelID), event.HuddleUserLeft{
		ChannelID: channelID,
		UserID:    sess.UserID,
		PeerID:    peerID,
	}, sess.ID)
}

// HuddleSignal forwards the opaque WebRTC payload verbatim to the
// target peer. The relay never inspects SDP or ICE contents.
func (s *RealtimeService) HuddleSignal(ctx context.Context, sess domain.Session, cmd event.HuddleSignalCmd) {
	s.state.Registry.Send(ctx, cmd.To, event.HuddleSignal{
		ChannelID:  cmd.ChannelID,
		FromPeerID: sess.ID,
		FromUserID: sess.UserID,
		Payload:    cmd.Payload,
	})
}

// HuddleToggleMedia broadcasts the flags; no media state is kept
// server-side.
func (s *RealtimeService) HuddleToggleMedia(ctx context.Context, sess domain.Session, cmd event.HuddleToggleMedia) {
	s.broadcast(ctx, runtime.HuddleRoom(cmd.ChannelID), event.HuddleMediaToggled{
		ChannelID: cmd.ChannelID,
		UserID:    sess.UserID,
		Audio:     cmd.Audio,
		Video:     cmd.Video,
	}, sess.ID)
}

func (s *RealtimeService) CanvasJoin(_ context.Context, sess domain.Session, channelID string) {
	s.state.Registry.Join(sess.ID, runtime.CanvasRoom(channelID))
	s.state.Canvas.Join(channelID, sess.UserID)
}

func (s *RealtimeService) CanvasLeave(ctx context.Context, sess domain.Session, channelID string) {
	if hadCursor := s.state.Canvas.Leave(channelID, sess.UserID); hadCursor {
		s.broadcast(ctx, runtime.CanvasRoom(channelID),
			event.CanvasCursor{ChannelID: channelID, UserID: sess.UserID}, sess.ID)
	}
	s.broadcast(ctx, runtime.CanvasRoom(channelID),
		event.CanvasUserLeft{ChannelID: channelID, UserID: sess.UserID}, sess.ID)
	s.state.Registry.Leave(sess.ID, runtime.CanvasRoom(channelID))
}

func (s *RealtimeService) CanvasCursor(ctx context.Context, sess domain.Session, cmd event.CanvasCursorCmd) {
	state := s.state.Canvas.SetCursor(cmd.ChannelID, sess.UserID, cmd.X, cmd.Y, cmd.Label, s.now().UTC())
	s.broadcast(ctx, runtime.CanvasRoom(cmd.ChannelID), event.CanvasCursor{
		ChannelID: cmd.ChannelID,
		UserID:    sess.UserID,
		Cursor:    &state,
	}, sess.ID)
}

func (s *RealtimeService) CanvasElements(ctx context.Context, sess domain.Session, cmd event.CanvasElementsCmd) {
	s.broadcast(ctx, runtime.CanvasRoom(cmd.ChannelID), event.CanvasElements{
		ChannelID: cmd.ChannelID,
		UserID:    sess.UserID,
		Elements:  cmd.Elements,
	}, sess.ID)
}

func (s *RealtimeService) displayName(ctx context.Context, sess domain.Session) string {
	profile, err := s.users.Profile(ctx, sess.TenantID, sess.UserID)
	if err != nil || profile.DisplayName == "" {
		return sess.UserID
	}
	return profile.DisplayName
}

func (s *RealtimeService) broadcast(ctx context.Context, room runtime.RoomID, e event.Event, exclude ...string) {
	s.monitor.EventBroadcast()
	s.state.Registry.Broadcast(ctx, room, e, exclude...)
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "…"
}
