package handler

import (
	"foundly/internal/usecase"
)

var (
	authHandler *AuthHandler
	userHandler *UserHandler
	itemHandler *ItemHandler
	scanHandler *ScanHandler
	chatHandler *ChatHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	itemUseCase *usecase.ItemUseCase,
	chatUseCase *usecase.ChatUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	itemHandler = NewItemHandler(itemUseCase)
	scanHandler = NewScanHandler(itemUseCase)
	chatHandler = NewChatHandler(chatUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetScanHandler() *ScanHandler {
	return scanHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}
