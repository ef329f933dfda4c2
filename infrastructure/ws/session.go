package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"teamline/domain"
	"teamline/domain/event"
	errs "teamline/errors"
	"teamline/sink"
)

var (
	errMissingToken     = fmt.Errorf("no credential in handshake")
	errIncompleteClaims = fmt.Errorf("credential carries no user or tenant")
)

// connection pairs one WebSocket with one admitted session. The
// read pump dispatches inbound envelopes to the service; the write
// pump drains the session sink into JSON frames and keeps the
// connection alive with pings, which is also the only disconnect
// detection huddle and canvas state relies on.
type connection struct {
	gateway *Gateway
	conn    *websocket.Conn
	sess    domain.Session
	sink    *sink.SessionSink
	done    chan struct{}
}

func newConnection(g *Gateway, conn *websocket.Conn, sess domain.Session, s *sink.SessionSink) *connection {
	return &connection{gateway: g, conn: conn, sess: sess, sink: s, done: make(chan struct{})}
}

// outbound is the envelope shape written to the client.
type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func (c *connection) readPump() {
	defer func() {
		close(c.done)
		c.gateway.service.Disconnect(context.Background(), c.sess)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.gateway.log.Warn("Connection dropped",
					"session_id", c.sess.ID, "user_id", c.sess.UserID, "error", err)
			}
			return
		}

		var env event.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.sendError(errs.ErrInvalidPayload)
			continue
		}
		if err := c.dispatch(env); err != nil {
			c.sendError(err)
		}
	}
}

// dispatch decodes and validates the payload for the named event,
// then invokes the matching handler. Validation failures and
// handler errors surface as typed error events to this session
// only; the connection stays open.
func (c *connection) dispatch(env event.Envelope) error {
	ctx := context.Background()

	switch env.Event {
	case event.CmdJoinChannel:
		var cmd event.JoinChannel
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		return c.gateway.service.JoinChannel(ctx, c.sess, cmd.ChannelID)

	case event.CmdLeaveChannel:
		var cmd event.LeaveChannel
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.LeaveChannel(ctx, c.sess, cmd.ChannelID)

	case event.CmdSendMessage:
		var cmd event.SendMessage
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		return c.gateway.service.SendMessage(ctx, c.sess, cmd)

	case event.CmdTyping:
		var cmd event.TypingCmd
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.Typing(ctx, c.sess, cmd.ChannelID)

	case event.CmdStopTyping:
		var cmd event.StopTypingCmd
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.StopTyping(ctx, c.sess, cmd.ChannelID)

	case event.CmdReadMessages:
		var cmd event.ReadMessages
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		return c.gateway.service.ReadMessages(ctx, c.sess, cmd.ChannelID)

	case event.CmdAddReaction:
		var cmd event.AddReaction
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		return c.gateway.service.AddReaction(ctx, c.sess, cmd)

	case event.CmdHuddleJoin:
		var cmd event.HuddleJoin
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.HuddleJoin(ctx, c.sess, cmd.ChannelID)

	case event.CmdHuddleLeave:
		var cmd event.HuddleLeave
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.HuddleLeave(ctx, c.sess, cmd.ChannelID)

	case event.CmdHuddleSignal:
		var cmd event.HuddleSignalCmd
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.HuddleSignal(ctx, c.sess, cmd)

	case event.CmdHuddleToggleMedia:
		var cmd event.HuddleToggleMedia
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.HuddleToggleMedia(ctx, c.sess, cmd)

	case event.CmdCanvasJoin:
		var cmd event.CanvasJoin
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.CanvasJoin(ctx, c.sess, cmd.ChannelID)

	case event.CmdCanvasLeave:
		var cmd event.CanvasLeave
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.CanvasLeave(ctx, c.sess, cmd.ChannelID)

	case event.CmdCanvasCursor:
		var cmd event.CanvasCursorCmd
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.CanvasCursor(ctx, c.sess, cmd)

	case event.CmdCanvasElements:
		var cmd event.CanvasElementsCmd
		if err := c.decode(env.Data, &cmd); err != nil {
			return err
		}
		c.gateway.service.CanvasElements(ctx, c.sess, cmd)

	default:
		return errs.ErrUnknownEvent
	}
	return nil
}

func (c *connection) decode(data json.RawMessage, out any) error {
	if len(data) == 0 {
		return errs.ErrInvalidPayload
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errs.ErrInvalidPayload
	}
	if err := c.gateway.validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidPayload, err)
	}
	return nil
}

// sendError pushes the typed error through the session's own sink
// so it keeps its place in the outbound ordering.
func (c *connection) sendError(err error) {
	wire := errs.ToWireEvent(err)
	ctx, cancel := context.WithTimeout(context.Background(), c.gateway.deliveryTimeout)
	defer cancel()
	_ = c.sink.Consume(ctx, wire)
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case evt := <-c.sink.Events:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(outbound{Event: evt.Name(), Data: evt}); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					c.gateway.log.Debug("Write failed",
						"session_id", c.sess.ID, "error", err)
				}
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
