package auth

import (
	"context"
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "smartfinance/internal/errors"
)

const issuer = "smartfinance"

// Session is a validated login token.
type Session struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

type Manager struct {
	creds   CredentialChecker
	secret  []byte
	ttl     time.Duration
	revoked RevocationStore
	now     func() time.Time
}

func NewManager(creds CredentialChecker, secret string, ttl time.Duration, revoked RevocationStore) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{
		creds:   creds,
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

// Login checks the credentials and issues an HS256 token.
func (m *Manager) Login(username, password string) (string, time.Time, error) {
	if !m.creds.Check(username, password) {
		return "", time.Time{}, apperrors.NewUnauthorizedError("invalid credentials")
	}

	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)
	claims := jwtlib.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   username,
		Issuer:    issuer,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(expiresAt),
	}

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError("signing token", err)
	}
	return token, expiresAt, nil
}

// Authenticate parses token and rejects it when expired, forged or revoked.
func (m *Manager) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims := &jwtlib.RegisteredClaims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwtlib.WithValidMethods([]string{"HS256"}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid or expired session")
	}
	if claims.ID == "" || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, apperrors.NewUnauthorizedError("invalid session claims")
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.NewUnauthorizedError("session has been logged out")
	}

	return &Session{
		ID:        claims.ID,
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revokes the session until it would have expired anyway.
func (m *Manager) Logout(ctx context.Context, session *Session) error {
	return m.revoked.Revoke(ctx, session.ID, session.ExpiresAt)
}
