package controller

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"smartfinance/internal/auth"
	"smartfinance/internal/dto"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/respond"
)

type SessionManager interface {
	Login(username, password string) (string, time.Time, error)
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
	Logout(ctx context.Context, session *auth.Session) error
}

type AuthController struct {
	manager      SessionManager
	secureCookie bool
	out          *respond.Writer
	logger       *zap.Logger
}

func NewAuthController(manager SessionManager, secureCookie bool, logger *zap.Logger) *AuthController {
	return &AuthController{
		manager:      manager,
		secureCookie: secureCookie,
		out:          respond.NewWriter(logger),
		logger:       logger,
	}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	var req dto.LoginRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	token, expiresAt, err := c.manager.Login(req.Username, req.Password)
	if err != nil {
		c.logger.Warn("login failed", zap.String("traceId", traceID), zap.String("username", req.Username))
		c.out.Error(w, traceID, err)
		return
	}

	http.SetCookie(w, c.cookie(token, expiresAt))
	c.logger.Info("login succeeded", zap.String("traceId", traceID), zap.String("username", req.Username))
	c.out.JSON(w, http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Logout revokes the presented session, if any, and clears the cookie.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	if token := auth.TokenFromRequest(r); token != "" {
		session, err := c.manager.Authenticate(r.Context(), token)
		if _, unauthorized := apperrors.IsUnauthorizedError(err); err != nil && !unauthorized {
			c.out.Error(w, traceID, err)
			return
		}
		if session != nil {
			if err := c.manager.Logout(r.Context(), session); err != nil {
				c.out.Error(w, traceID, err)
				return
			}
			c.logger.Info("logout", zap.String("traceId", traceID), zap.String("username", session.Username))
		}
	}

	expired := c.cookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	c.out.NoContent(w)
}

func (c *AuthController) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
