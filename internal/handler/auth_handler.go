package handler

import (
	"net/http"

	"github.com/KyryloKozlovskyi/transaction-website/internal/middleware"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, admin ...echo.MiddlewareFunc) {
	g.GET("/verify", h.VerifyToken, admin...)
}

// VerifyToken lets the admin UI confirm a token before using it. The
// middleware has already resolved the principal by the time this runs.
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Token is valid",
		"user":    middleware.Principal(c),
	})
}
