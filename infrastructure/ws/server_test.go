package ws_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"teamline/auth"
	"teamline/domain"
	"teamline/domain/event"
	errs "teamline/errors"
	"teamline/infrastructure/ws"
	"teamline/mocks"
	"teamline/observability"
)

type gatewayFixture struct {
	server  *httptest.Server
	service *mocks.MockIRealtimeService
	tokens  *auth.TokenManager
}

func newGatewayFixture(t *testing.T, origins []string) *gatewayFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockIRealtimeService(ctrl)
	tokens := auth.NewTokenManager("a-test-secret", time.Hour)
	gateway := ws.NewGateway(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		service, tokens, observability.NewMonitor(),
		origins, 16, time.Second,
	)
	server := httptest.NewServer(gateway)
	t.Cleanup(server.Close)
	return &gatewayFixture{server: server, service: service, tokens: tokens}
}

func (f *gatewayFixture) wsURL(token string) string {
	url := "ws" + strings.TrimPrefix(f.server.URL, "http")
	if token != "" {
		url += "?token=" + token
	}
	return url
}

// dial connects an authenticated client. Connect and the final
// Disconnect are expected on every admitted session.
func (f *gatewayFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	token, err := f.tokens.Issue("alice", "acme", "member")
	require.NoError(t, err)

	f.service.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	f.service.EXPECT().Disconnect(gomock.Any(), gomock.Any()).Times(1)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(token), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		time.Sleep(50 * time.Millisecond) // let the read pump observe the close
	})
	return conn
}

func send(t *testing.T, conn *websocket.Conn, eventName string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(event.Envelope{Event: eventName, Data: raw}))
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	return frame.Event, frame.Data
}

func TestGateway_Rejects_A_Missing_Token(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)

	resp, err := http.Get(f.server.URL)
	req.NoError(err)
	defer resp.Body.Close()

	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestGateway_Rejects_A_Forged_Token(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)
	forger := auth.NewTokenManager("other-secret", time.Hour)
	token, err := forger.Issue("alice", "acme", "member")
	req.NoError(err)

	_, resp, err := websocket.DefaultDialer.Dial(f.wsURL(token), nil)

	req.Error(err)
	req.NotNil(resp)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestGateway_Rejects_A_Token_Without_A_Tenant(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)
	token, err := f.tokens.Issue("alice", "", "member")
	req.NoError(err)

	_, resp, err := websocket.DefaultDialer.Dial(f.wsURL(token), nil)

	req.Error(err)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestGateway_Rejects_A_Disallowed_Origin(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, []string{"https://app.example.com"})
	token, err := f.tokens.Issue("alice", "acme", "member")
	req.NoError(err)

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, _, err = websocket.DefaultDialer.Dial(f.wsURL(token), header)
	req.Error(err)

	// The allow-listed origin passes
	f.service.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	f.service.EXPECT().Disconnect(gomock.Any(), gomock.Any()).Times(1)
	header = http.Header{"Origin": []string{"https://app.example.com"}}
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(token), header)
	req.NoError(err)
	_ = conn.Close()
	time.Sleep(50 * time.Millisecond) // let the read pump observe the close
}

func TestGateway_Admits_With_The_Token_Claims(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)
	token, err := f.tokens.Issue("alice", "acme", "admin")
	req.NoError(err)

	admitted := make(chan domain.Session, 1)
	f.service.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_, sess, _ any) { admitted <- sess.(domain.Session) })
	f.service.EXPECT().Disconnect(gomock.Any(), gomock.Any()).Times(1)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(token), nil)
	req.NoError(err)

	select {
	case sess := <-admitted:
		req.Equal("alice", sess.UserID)
		req.Equal("acme", sess.TenantID)
		req.Equal("admin", sess.Role)
		req.NotEmpty(sess.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("Connect was never called")
	}

	_ = conn.Close()
	time.Sleep(50 * time.Millisecond)
}

func TestGateway_Accepts_A_Bearer_Header(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)
	token, err := f.tokens.Issue("alice", "acme", "member")
	req.NoError(err)

	f.service.EXPECT().Connect(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	f.service.EXPECT().Disconnect(gomock.Any(), gomock.Any()).Times(1)

	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(""), header)
	req.NoError(err)
	_ = conn.Close()
	time.Sleep(50 * time.Millisecond)
}

func TestGateway_Dispatches_Commands_To_The_Service(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)
	conn := f.dial(t)

	joined := make(chan string, 1)
	f.service.EXPECT().JoinChannel(gomock.Any(), gomock.Any(), "general").
		DoAndReturn(func(_, _ any, channelID string) error {
			joined <- channelID
			return nil
		})

	send(t, conn, event.CmdJoinChannel, event.JoinChannel{ChannelID: "general"})

	select {
	case channelID := <-joined:
		req.Equal("general", channelID)
	case <-time.After(2 * time.Second):
		t.Fatal("JoinChannel was never dispatched")
	}
}

func TestGateway_Dispatches_A_Huddle_Signal(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)
	conn := f.dial(t)

	relayed := make(chan event.HuddleSignalCmd, 1)
	f.service.EXPECT().HuddleSignal(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_, _ any, cmd event.HuddleSignalCmd) { relayed <- cmd })

	send(t, conn, event.CmdHuddleSignal, event.HuddleSignalCmd{
		ChannelID: "general", To: "peer-b", Payload: []byte(`{"type":"offer","sdp":"v=0"}`),
	})

	select {
	case cmd := <-relayed:
		req.Equal("peer-b", cmd.To)
		req.JSONEq(`{"type":"offer","sdp":"v=0"}`, string(cmd.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("HuddleSignal was never dispatched")
	}
}

func TestGateway_Answers_An_Unknown_Event_With_A_Typed_Error(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)
	conn := f.dial(t)

	send(t, conn, "no-such-event", struct{}{})

	name, data := readEnvelope(t, conn)
	req.Equal("error", name)
	var wire event.Error
	req.NoError(json.Unmarshal(data, &wire))
	req.Equal("UNKNOWN_EVENT", wire.Code)
}

func TestGateway_Rejects_An_Invalid_Payload(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)
	conn := f.dial(t)

	// Content is required; the service must never see this
	send(t, conn, event.CmdSendMessage, map[string]string{"channelId": "general"})

	name, data := readEnvelope(t, conn)
	req.Equal("error", name)
	var wire event.Error
	req.NoError(json.Unmarshal(data, &wire))
	req.Equal("INVALID_PAYLOAD", wire.Code)
}

func TestGateway_Surfaces_Service_Errors_And_Keeps_The_Connection(t *testing.T) {
	req := require.New(t)
	f := newGatewayFixture(t, nil)
	conn := f.dial(t)

	f.service.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errs.ErrEmptyMessage)

	send(t, conn, event.CmdSendMessage, event.SendMessage{ChannelID: "general", Content: "x"})

	name, data := readEnvelope(t, conn)
	req.Equal("error", name)
	var wire event.Error
	req.NoError(json.Unmarshal(data, &wire))
	req.Equal("EMPTY_MESSAGE", wire.Code)

	// The connection survives; the next command still dispatches
	done := make(chan struct{})
	f.service.EXPECT().StopTyping(gomock.Any(), gomock.Any(), "general").
		Do(func(_, _ any, _ string) { close(done) })
	send(t, conn, event.CmdStopTyping, event.StopTypingCmd{ChannelID: "general"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("connection did not survive the error")
	}
}
