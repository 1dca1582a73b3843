package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-user-directory/models"
	"github.com/golang-jwt/jwt/v5"
)

// SignJWTToken signs claims with HMAC-SHA256 using signKey.
//
// The claims are embedded as-is: callers set Subject, IssuedAt and ExpiresAt
// (and Issuer when used) before signing.
//
// Returns:
//
//	models.Token - the claims together with the compact signed string
//	error        - non-nil if signKey is empty or signing fails
//
// Example usage:
//
//	now := time.Now()
//	token, err := utils.SignJWTToken(jwt.RegisteredClaims{
//	    Subject:   "alice",
//	    IssuedAt:  jwt.NewNumericDate(now),
//	    ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
//	}, key)
func SignJWTToken(claims jwt.RegisteredClaims, signKey []byte) (models.Token, error) {
	if len(signKey) == 0 {
		return models.Token{}, errors.New("invalid params for signing JWT Token")
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{RegisteredClaims: claims, SignedString: tokenString}, nil
}

// ParseJWTToken verifies the signature of tokenString and validates its
// registered claims.
//
// Only HS256 is accepted, the exp claim is required and segments must be
// canonical unpadded base64url, so stray bits in the last character of a
// segment are rejected. Additional parser
// options (issuer check, clock) are applied after these defaults.
//
// The returned error wraps the jwt sentinel errors, so callers can tell
// causes apart with errors.Is:
//   - jwt.ErrTokenMalformed          - not a compact JWS
//   - jwt.ErrTokenSignatureInvalid   - MAC mismatch or unexpected algorithm
//   - jwt.ErrTokenExpired            - now is not strictly before exp
//   - jwt.ErrTokenInvalidClaims      - any other claim failure
func ParseJWTToken(tokenString string, signKey []byte, opts ...jwt.ParserOption) (models.Token, error) {
	parserOpts := append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	}, opts...)

	claims := &models.Token{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return signKey, nil
	}, parserOpts...)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	claims.SignedString = tokenString
	return *claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
