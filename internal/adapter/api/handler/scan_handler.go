package handler

import (
	"github.com/labstack/echo/v4"

	"foundly/internal/usecase"
	"foundly/pkg/response"
)

type ScanHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewScanHandler(itemUseCase *usecase.ItemUseCase) *ScanHandler {
	return &ScanHandler{
		itemUseCase: itemUseCase,
	}
}

type scanRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// Resolve looks up a scanned or hand-typed identifier. A self scan is not a
// failure: the resolution comes back with self_scan=true and an informational
// notice rather than an error status.
func (h *ScanHandler) Resolve(c echo.Context) error {
	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	result, err := h.itemUseCase.ResolveScan(c.Request().Context(), uid, req.Identifier)
	if err != nil && result == nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
