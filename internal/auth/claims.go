package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of JWT claims the client reads from its own
// token. Parsing is unverified: the signing secret lives on the server,
// so these values are for display and logout decisions only, never for
// trust.
type Claims struct {
	Subject string
	Email   string
	Expiry  time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Inspect parses the token without verifying its signature and returns
// the claims the client cares about.
func Inspect(token string) (*Claims, error) {
	parsed := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, parsed); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims := &Claims{
		Subject: parsed.Subject,
		Email:   parsed.Email,
	}
	if parsed.ExpiresAt != nil {
		claims.Expiry = parsed.ExpiresAt.Time
	}
	return claims, nil
}

// Expired reports whether the token carries an expiry in the past. A
// token without an expiry claim, or one that cannot be parsed at all,
// is treated as not expired; the server remains the authority.
func Expired(token string, now time.Time) bool {
	claims, err := Inspect(token)
	if err != nil {
		return false
	}
	return !claims.Expiry.IsZero() && claims.Expiry.Before(now)
}
