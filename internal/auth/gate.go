// Package auth resolves bearer credentials to usernames and issues the
// tokens that carry them.
package auth

import (
	"errors"
	"strings"
	"time"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/platform/crypto"
)

const msgUnauthorized = "You are unauthorized."

var errEmptySecret = errors.New("auth: signing secret is empty")

// Gate verifies and issues HS256 tokens whose subject is the username.
// It keeps no state between calls.
type Gate struct {
	secret string
	ttl    time.Duration
}

func NewGate(secret string, ttl time.Duration) (*Gate, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	return &Gate{secret: secret, ttl: ttl}, nil
}

// Authenticate accepts "Bearer <token>" or a bare token and returns the
// username it was issued for. Any failure is apperr.ErrUnauthorized.
func (g *Gate) Authenticate(credential string) (string, error) {
	token := bearerToken(credential)
	if token == "" {
		return "", apperr.Unauthorized(msgUnauthorized)
	}
	claims, err := crypto.ParseToken(g.secret, token)
	if err != nil {
		return "", apperr.Unauthorized(msgUnauthorized)
	}
	return claims.Sub, nil
}

// Issue signs a token for username.
func (g *Gate) Issue(username string) (string, error) {
	token, _, err := crypto.GenerateToken(g.secret, username, g.ttl)
	if err != nil {
		return "", err
	}
	return token, nil
}

func bearerToken(credential string) string {
	credential = strings.TrimSpace(credential)
	const prefix = "bearer "
	if len(credential) >= len(prefix) && strings.EqualFold(credential[:len(prefix)], prefix) {
		credential = strings.TrimSpace(credential[len(prefix):])
	}
	return credential
}
