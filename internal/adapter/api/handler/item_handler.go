package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"

	"foundly/internal/usecase"
	"foundly/pkg/errors"
	"foundly/pkg/response"
)

type ItemHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewItemHandler(itemUseCase *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
	}
}

type registerItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type markReturnedRequest struct {
	Confirmed bool `json:"confirmed"`
}

func (h *ItemHandler) Register(c echo.Context) error {
	var req registerItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	item, err := h.itemUseCase.RegisterItem(c.Request().Context(), uid, usecase.RegisterItemInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.itemUseCase.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ItemHandler) MyItems(c echo.Context) error {
	uid := c.Get("uid").(string)

	items, err := h.itemUseCase.MyItems(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}

// MarkReturned is the one irreversible write in the system. The request body
// must carry confirmed=true; there is no default-yes path.
func (h *ItemHandler) MarkReturned(c echo.Context) error {
	var req markReturnedRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	item, err := h.itemUseCase.MarkReturned(c.Request().Context(), uid, c.Param("id"), req.Confirmed)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

// QRCode renders the item's identifier as a PNG for printing on a tag. Only
// the owner can fetch it; the encoded payload is just the item id.
func (h *ItemHandler) QRCode(c echo.Context) error {
	uid := c.Get("uid").(string)

	item, err := h.itemUseCase.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	if item.OwnerID != uid {
		return response.Error(c, errors.Forbidden("only the owner can fetch an item's code", nil))
	}

	png, err := qrcode.Encode(item.ID, qrcode.Medium, 256)
	if err != nil {
		return response.Error(c, errors.Internal("failed to render QR code", err))
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
