package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned by [TokenExpiry] when the token carries no "exp" claim.
var ErrNoExpiry = errors.New("token has no expiry")

// UnverifiedClaims decodes the claims of tokenString without checking its
// signature.
//
// The result must never be used for an authorization decision: the identity
// service is the only authority on whether a token is valid. The gateway
// reads unverified claims only to enrich an already verified principal and
// to bound how long a verification result may be cached.
func UnverifiedClaims(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("error decoding token claims: %w", err)
	}
	return claims, nil
}

// TokenExpiry returns the "exp" claim of tokenString without verifying the
// token.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims, err := UnverifiedClaims(tokenString)
	if err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}
