package router

import (
	"github.com/labstack/echo/v4"

	"foundly/internal/adapter/api/handler"
	"foundly/internal/adapter/api/middleware"
)

func SetupItemRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	itemHandler := handler.GetItemHandler()

	items := e.Group("/v1/items")
	items.Use(authMiddleware.Authenticate)

	items.POST("", itemHandler.Register)
	items.GET("/mine", itemHandler.MyItems)
	items.GET("/:id", itemHandler.Get)
	items.GET("/:id/qr", itemHandler.QRCode)
	items.POST("/:id/return", itemHandler.MarkReturned)
}
