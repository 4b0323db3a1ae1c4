package handler

import (
	"context"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"foundly/internal/infrastructure/ratelimit"
	ws "foundly/internal/infrastructure/websocket"
	"foundly/internal/session"
	"foundly/pkg/errors"
)

// WebSocketHandler upgrades connections onto the session channel. Each
// connection gets its own session controller; authentication happens over the
// channel itself via the sign_in command, so the endpoint takes no middleware.
type WebSocketHandler struct {
	wsManager   *ws.Manager
	sessionDeps session.Deps
	limiter     *ratelimit.RateLimiter
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict origins once the web client's domain is fixed
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, sessionDeps session.Deps, limiter *ratelimit.RateLimiter) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		sessionDeps: sessionDeps,
		limiter:     limiter,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(uuid.New().String(), conn, nil, h.limiter)
	ctrl := session.NewController(h.sessionDeps, client.Sink())
	client.Session = ctrl

	// The controller outlives the HTTP request; the manager closes it when
	// the client unregisters.
	go ctrl.Run(context.Background())

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
