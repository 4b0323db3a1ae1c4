package router

import (
	"github.com/labstack/echo/v4"

	"foundly/internal/adapter/api/handler"
	"foundly/internal/adapter/api/middleware"
)

func SetupScanRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	scanHandler := handler.GetScanHandler()

	scans := e.Group("/v1/scan")
	scans.Use(authMiddleware.Authenticate)

	scans.POST("", scanHandler.Resolve)
}
