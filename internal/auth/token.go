// Package auth issues and validates the bearer tokens that guard the
// operator endpoints.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer   = "passforge"
	audience = "passforge-api"
)

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrSubjectRequired = errors.New("token subject is required")
)

// Claims are the JWT claims carried by an operator token.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs a token for subject valid for expiry.
func GenerateToken(subject, secret string, expiry time.Duration) (string, error) {
	if subject == "" {
		return "", ErrSubjectRequired
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses tokenString and checks signature, issuer, audience and
// expiry.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
