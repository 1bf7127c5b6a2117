package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartfinance/internal/auth"
	"smartfinance/internal/dto"
)

func newController(t *testing.T) (*AuthController, *auth.Manager) {
	t.Helper()

	creds, err := auth.NewFixedCredentials("loja", "caixa123")
	require.NoError(t, err)
	m := auth.NewManager(creds, "0123456789abcdef0123456789abcdef", time.Hour, auth.NewMemoryRevocationStore())
	return NewAuthController(m, true, zap.NewNop()), m
}

func TestAuthController_Login(t *testing.T) {
	c, m := newController(t)

	rec := httptest.NewRecorder()
	body := `{"username":"loja","password":"caixa123"}`
	c.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookie, cookies[0].Name)
	assert.Equal(t, resp.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	_, err := m.Authenticate(t.Context(), resp.Token)
	assert.NoError(t, err)
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	c, _ := newController(t)

	rec := httptest.NewRecorder()
	c.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"loja","password":"x"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthController_Logout(t *testing.T) {
	c, m := newController(t)
	token, _, err := m.Login("loja", "caixa123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	_, err = m.Authenticate(t.Context(), token)
	assert.Error(t, err)
}

func TestAuthController_Logout_WithoutSession(t *testing.T) {
	c, _ := newController(t)

	rec := httptest.NewRecorder()
	c.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
