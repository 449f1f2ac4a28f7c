// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/logger"
)

type authService struct {
	signKey string
	issuer  string
	users   map[string]string

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] from the application
// configuration. With an empty TokenSignKey and no configured users both
// Verify methods are presence-only no-ops, which is the default posture of a
// mock server.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	logger.Debug().
		Bool("strict_bearer", cfg.TokenSignKey != "").
		Bool("strict_basic", len(cfg.BasicAuthUsers) > 0).
		Msg("creating auth service")

	return &authService{
		signKey: cfg.TokenSignKey,
		issuer:  cfg.TokenIssuer,
		users:   cfg.BasicAuthUsers,
		logger:  logger,
	}
}

// VerifyBearer parses and verifies tokenString as an HMAC-SHA256 JWT when a
// sign key is configured. Without one, any present token passes.
func (s *authService) VerifyBearer(ctx context.Context, tokenString string) error {
	if s.signKey == "" {
		return nil
	}

	log := logger.FromContext(ctx)

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	_, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(s.signKey), nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Warn().Msg("bearer token is expired")
			return fmt.Errorf("%w: %w", ErrTokenIsExpired, err)
		}

		log.Warn().Err(err).Msg("bearer token failed verification")
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return nil
}

// VerifyBasic compares the supplied password against the bcrypt hash stored
// for login. Without configured users, any present credentials pass.
func (s *authService) VerifyBasic(ctx context.Context, login, password string) error {
	if len(s.users) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	hash, ok := s.users[login]
	if !ok {
		log.Warn().Str("login", login).Msg("unknown basic auth login")
		return ErrWrongCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		log.Warn().Str("login", login).Msg("basic auth password mismatch")
		return fmt.Errorf("%w: %w", ErrWrongCredentials, err)
	}

	return nil
}
