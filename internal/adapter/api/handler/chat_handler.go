package handler

import (
	"github.com/labstack/echo/v4"

	"foundly/internal/usecase"
	"foundly/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type initiateContactRequest struct {
	OwnerID string `json:"owner_id" validate:"required"`
	ItemID  string `json:"item_id" validate:"required"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

func (h *ChatHandler) InitiateContact(c echo.Context) error {
	var req initiateContactRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	chat, err := h.chatUseCase.InitiateContact(c.Request().Context(), uid, usecase.InitiateContactInput{
		OwnerID: req.OwnerID,
		ItemID:  req.ItemID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)

	chats, err := h.chatUseCase.ListChats(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chats)
}

func (h *ChatHandler) Get(c echo.Context) error {
	uid := c.Get("uid").(string)

	chat, err := h.chatUseCase.GetChat(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, usecase.SendMessageInput{
		ChatID: c.Param("id"),
		Text:   req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
