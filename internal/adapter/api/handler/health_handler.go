package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	ws "foundly/internal/infrastructure/websocket"
)

type HealthHandler struct {
	wsManager *ws.Manager
	degraded  string
}

var healthHandler *HealthHandler

// SetupHealthHandler wires the health endpoint. degraded carries the startup
// configuration error when the server is running without its backing store.
func SetupHealthHandler(wsManager *ws.Manager, degraded string) {
	healthHandler = &HealthHandler{
		wsManager: wsManager,
		degraded:  degraded,
	}
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	if h.wsManager != nil {
		body["sessions"] = h.wsManager.ClientCount()
	}
	if h.degraded != "" {
		body["status"] = "degraded"
		body["detail"] = h.degraded
		return c.JSON(http.StatusServiceUnavailable, body)
	}

	return c.JSON(http.StatusOK, body)
}
