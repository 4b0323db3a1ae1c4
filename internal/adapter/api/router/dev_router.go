package router

import (
	"github.com/labstack/echo/v4"

	"foundly/internal/adapter/api/handler"
)

// SetupDevRouter mounts development-only token minting. Callers must gate this
// on the environment; it is never registered in production.
func SetupDevRouter(e *echo.Echo) {
	devTokenHandler := handler.GetDevTokenHandler()

	e.POST("/v1/dev/token", devTokenHandler.GenerateToken)
}
