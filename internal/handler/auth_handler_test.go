package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KyryloKozlovskyi/transaction-website/internal/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyToken_ReturnsPrincipal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", &auth.Principal{UID: "uid-1", Email: "admin@example.com", Admin: true})

	h := NewAuthHandler()
	require.NoError(t, h.VerifyToken(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string         `json:"message"`
		User    auth.Principal `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Token is valid", resp.Message)
	assert.Equal(t, "admin@example.com", resp.User.Email)
	assert.True(t, resp.User.Admin)
}
