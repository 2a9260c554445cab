package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService for gateway operators listed
// in configuration.
type AuthServiceImpl struct {
	operators map[string]string
	hashSvc   ports.HashService
	tokenSvc  ports.TokenService
	log       zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl. Operator names are matched
// case-insensitively.
func NewAuthService(
	operators map[string]string,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	normalized := make(map[string]string, len(operators))
	for name, hash := range operators {
		normalized[strings.ToLower(name)] = hash
	}
	return &AuthServiceImpl{
		operators: normalized,
		hashSvc:   hashSvc,
		tokenSvc:  tokenSvc,
		log:       log,
	}
}

// Login validates credentials and returns a JWT token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	name := strings.ToLower(strings.TrimSpace(username))
	hash, ok := s.operators[name]
	if !ok {
		s.log.Warn().Str("operator", name).Msg("Login for unknown operator")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, hash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		s.log.Warn().Str("operator", name).Msg("Login with wrong password")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(name)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().Str("operator", name).Msg("Operator logged in")
	return token, expiry, nil
}
