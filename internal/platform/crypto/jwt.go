package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrEmptySubject is returned when a token would carry no username.
var ErrEmptySubject = errors.New("token subject is empty")

type Claims struct {
	Sub string `json:"sub"` // username
	jwt.RegisteredClaims
}

func generateJTI() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// GenerateToken signs an HS256 token for username valid for ttl.
// It returns the signed token and its jti.
func GenerateToken(secret, username string, ttl time.Duration) (string, string, error) {
	if username == "" {
		return "", "", ErrEmptySubject
	}
	jti, err := generateJTI()
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	c := Claims{
		Sub: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	tokenStr, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return tokenStr, jti, nil
}

func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		if claims.Sub == "" {
			return nil, ErrEmptySubject
		}
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
