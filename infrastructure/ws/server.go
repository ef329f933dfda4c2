// Package ws is the connection gateway: it upgrades HTTP requests
// to WebSocket sessions, verifies the handshake credential before
// any room join, and pumps frames between the connection and the
// session's event sink.
package ws

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"teamline/auth"
	"teamline/domain"
	"teamline/observability"
	"teamline/services"
	"teamline/sink"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

type Gateway struct {
	log             *slog.Logger
	service         services.IRealtimeService
	tokens          *auth.TokenManager
	monitor         *observability.Monitor
	upgrader        websocket.Upgrader
	validate        *validator.Validate
	bufferSize      int
	deliveryTimeout time.Duration
}

func NewGateway(
	log *slog.Logger,
	service services.IRealtimeService,
	tokens *auth.TokenManager,
	monitor *observability.Monitor,
	allowedOrigins []string,
	bufferSize int,
	deliveryTimeout time.Duration,
) *Gateway {
	return &Gateway{
		log:             log,
		service:         service,
		tokens:          tokens,
		monitor:         monitor,
		upgrader:        makeUpgrader(allowedOrigins),
		validate:        validator.New(),
		bufferSize:      bufferSize,
		deliveryTimeout: deliveryTimeout,
	}
}

// makeUpgrader builds a WebSocket upgrader with origin checking.
// Non-browser clients send no Origin header and are let through.
func makeUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowAll := len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*")
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = true
	}
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if allowAll {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return originSet[origin]
		},
	}
}

// ServeHTTP admits one session per connection. The credential is
// verified before the upgrade: a rejected handshake never touches
// presence or any room.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := g.authenticate(r)
	if err != nil {
		g.log.Warn("Handshake rejected", "remote", r.RemoteAddr, "error", err)
		http.Error(w, "invalid or missing credential", http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("Upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sess := domain.Session{
		ID: uuid.NewString(),
		Identity: domain.Identity{
			UserID:   claims.UserID,
			TenantID: claims.TenantID,
			Role:     claims.Role,
		},
	}
	sessionSink := sink.NewSessionSink(g.log, g.monitor, g.bufferSize)
	g.service.Connect(r.Context(), sess, sessionSink)

	c := newConnection(g, conn, sess, sessionSink)
	go c.writePump()
	c.readPump()
}

// authenticate extracts and verifies the handshake credential. The
// token travels either as a "token" query parameter or a bearer
// Authorization header.
func (g *Gateway) authenticate(r *http.Request) (*auth.Claims, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		header := r.Header.Get("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		return nil, errMissingToken
	}
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.TenantID == "" {
		return nil, errIncompleteClaims
	}
	return claims, nil
}
