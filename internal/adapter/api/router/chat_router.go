package router

import (
	"github.com/labstack/echo/v4"

	"foundly/internal/adapter/api/handler"
	"foundly/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("", chatHandler.InitiateContact)
	chats.GET("", chatHandler.List)
	chats.GET("/:id", chatHandler.Get)
	chats.POST("/:id/messages", chatHandler.SendMessage)
}
