// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/golang-jwt/jwt/v5"
)

// MinSigningKeyLength is the shortest HMAC-SHA256 secret accepted by the
// token service, in bytes.
const MinSigningKeyLength = 32

// TokenSettings is the process-wide token configuration. It is read once at
// construction.
type TokenSettings struct {
	// SignKey is the HMAC-SHA256 secret.
	SignKey []byte

	// TTL is the lifetime of an issued token.
	TTL time.Duration

	// Issuer is embedded as the "iss" claim and required on validation when
	// non-empty.
	Issuer string
}

// TokenOption customizes a token service.
type TokenOption func(*tokenService)

// WithTokenClock replaces the wall clock used for issuing and validating
// tokens.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *tokenService) {
		if now != nil {
			s.now = now
		}
	}
}

type tokenService struct {
	signKey []byte
	ttl     time.Duration
	issuer  string
	now     func() time.Time

	logger *logger.Logger
}

// NewTokenService validates settings and returns a TokenService bound to
// them. The key is copied, so later changes to settings.SignKey have no
// effect.
func NewTokenService(settings TokenSettings, logger *logger.Logger, opts ...TokenOption) (TokenService, error) {
	if len(settings.SignKey) < MinSigningKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrWeakSigningKey, len(settings.SignKey), MinSigningKeyLength)
	}
	if settings.TTL <= 0 {
		return nil, ErrInvalidTokenTTL
	}

	s := &tokenService{
		signKey: append([]byte(nil), settings.SignKey...),
		ttl:     settings.TTL,
		issuer:  settings.Issuer,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *tokenService) Issue(subject string) (models.Token, error) {
	if subject == "" {
		return models.Token{}, ErrEmptySubject
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := utils.SignJWTToken(claims, s.signKey)
	if err != nil {
		s.logger.Err(err).Str("func", "tokenService.Issue").Msg("error signing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (s *tokenService) Validate(token string) (string, bool) {
	result := s.Inspect(token)
	if !result.Valid() {
		return "", false
	}
	return result.Subject, true
}

func (s *tokenService) Inspect(token string) models.TokenValidation {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	parsed, err := utils.ParseJWTToken(token, s.signKey, opts...)
	if err != nil {
		status := statusFromParseError(err)
		s.logger.Debug().Err(err).Stringer("status", status).Msg("token rejected")
		return models.TokenValidation{Status: status}
	}

	if parsed.Subject() == "" {
		return models.TokenValidation{Status: models.TokenMalformed}
	}

	return models.TokenValidation{Status: models.TokenValid, Subject: parsed.Subject()}
}

// statusFromParseError classifies a parser failure. The parser verifies the
// signature before the claims, so an expired token always carries a valid
// signature.
func statusFromParseError(err error) models.TokenStatus {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return models.TokenBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.TokenExpired
	default:
		return models.TokenMalformed
	}
}
