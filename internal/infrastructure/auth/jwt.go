// Package auth validates access tokens issued by the external identity
// provider. Token issuance is out of scope; the contract is a shared
// HMAC secret and the subject claim carrying the user id.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	appctx "backroom/internal/core/context"
)

// Config holds JWT validation configuration.
type Config struct {
	Secret string
	Issuer string
}

// Claims represents the token claims the platform understands.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Validator checks bearer tokens against the shared secret.
type Validator struct {
	config Config
}

// NewValidator creates a token validator.
func NewValidator(config Config) *Validator {
	return &Validator{config: config}
}

// ValidateToken validates the token and returns the user context.
func (v *Validator) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if v.config.Issuer != "" && claims.Issuer != v.config.Issuer {
		return nil, fmt.Errorf("unexpected token issuer")
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &appctx.UserContext{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
