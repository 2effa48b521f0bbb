package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-clinic/internal/config"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/utils"
	"github.com/MKhiriev/go-clinic/models"
)

// tokenService is the concrete implementation of TokenService. Tokens are
// HS256 JWTs whose subject is the operator's username and whose ID claim is
// the session identifier.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the token settings in cfg.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// CreateToken issues a signed token bound to session.
func (t *tokenService) CreateToken(ctx context.Context, session models.Session) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.tokenIssuer, session.Username, session.ID, t.tokenDuration, t.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.CreateToken").Send()
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken verifies tokenString. Any validation failure (expired, wrong
// issuer or signature, malformed) is reported as ErrTokenIsExpiredOrInvalid.
func (t *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, t.tokenSignKey, t.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
