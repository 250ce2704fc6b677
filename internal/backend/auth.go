package backend

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CheckToken inspects a bearer token's expiry without verifying its
// signature (the backend verifies; we only want to fail fast locally
// instead of burning a network round trip on a dead token). Tokens that
// do not parse as JWTs are passed through untouched — opaque tokens are
// the backend's problem.
func CheckToken(token string, now time.Time) error {
	if token == "" {
		return fmt.Errorf("no bearer token configured, run `crewctl login`")
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if now.After(exp.Time) {
		return ErrTokenExpired
	}
	return nil
}
