package router

import (
	"github.com/labstack/echo/v4"

	"foundly/internal/adapter/api/handler"
)

// SetupWebSocketRouter mounts the session channel. No middleware: the channel
// authenticates through its own sign_in command.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
