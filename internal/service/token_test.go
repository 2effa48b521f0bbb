package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-clinic/internal/config"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(key string, d time.Duration) TokenService {
	return NewTokenService(config.App{TokenSignKey: key, TokenIssuer: "clinic", TokenDuration: d}, logger.Nop())
}

func TestTokenService_CreateAndParse(t *testing.T) {
	ctx := context.Background()
	s := newTestTokenService("secret", time.Hour)
	session := models.Session{ID: "0192f0c4-7b1e-7cc3-a1c8-000000000001", Username: "user"}

	token, err := s.CreateToken(ctx, session)
	require.NoError(t, err)
	require.NotEmpty(t, token.String())

	parsed, err := s.ParseToken(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, "user", parsed.Username())
	assert.Equal(t, session.ID, parsed.SessionID())
}

func TestTokenService_CreateToken_InvalidSettings(t *testing.T) {
	ctx := context.Background()

	_, err := newTestTokenService("", time.Hour).CreateToken(ctx, models.Session{ID: "1", Username: "user"})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)

	_, err = newTestTokenService("secret", time.Hour).CreateToken(ctx, models.Session{})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestTokenService_ParseToken_Rejects(t *testing.T) {
	ctx := context.Background()
	token, err := newTestTokenService("secret", time.Hour).CreateToken(ctx, models.Session{ID: "1", Username: "user"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   TokenService
		token string
	}{
		{name: "wrong key", svc: newTestTokenService("other", time.Hour), token: token.String()},
		{name: "garbage", svc: newTestTokenService("secret", time.Hour), token: "not.a.jwt"},
		{name: "empty", svc: newTestTokenService("secret", time.Hour), token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ParseToken(ctx, tt.token)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
