package handler

import (
	"github.com/labstack/echo/v4"

	"foundly/internal/infrastructure/firebase"
	"foundly/pkg/config"
	"foundly/pkg/logger"
	"foundly/pkg/response"
)

// DevTokenHandler mints long-lived tokens for local tooling. Its routes are
// only mounted when ENVIRONMENT=development.
type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	jwtSecret    string
	jwtExpiry    int64
}

var devTokenHandler *DevTokenHandler

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, cfg *config.Config) {
	devTokenHandler = &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		jwtSecret:    cfg.JWTSecret,
		jwtExpiry:    cfg.JWTExpiry,
	}
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

type devTokenRequest struct {
	UID string `json:"uid" validate:"required"`
}

// GenerateToken prefers a real Firebase ID token; without a usable web API key
// it falls back to a locally signed JWT so tooling can still hit the API.
func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	source := "firebase"
	token, err := h.firebaseAuth.GenerateLongLivedToken(c.Request().Context(), req.UID)
	if err != nil {
		logger.Warn("Falling back to local dev token for %s: %v", req.UID, err)
		source = "local"
		token, err = firebase.MintLocalToken(req.UID, h.jwtSecret, h.jwtExpiry)
		if err != nil {
			return response.Error(c, err)
		}
	}

	return response.Success(c, map[string]string{
		"uid":    req.UID,
		"token":  token,
		"source": source,
	})
}
