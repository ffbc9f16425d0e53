// Package token issues and verifies the signed bearer tokens that carry
// user identity between requests.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = 72 * time.Hour

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Service signs and verifies HS256 tokens. The secret is injected so tests
// and deployments control it; there is no process-global key.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs a token embedding the user's username and id.
func (s *Service) Issue(username string, userID int) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"id":       userID,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token string, returning its claims.
func (s *Service) Verify(tokenString string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Identity extracts the username and user id from verified claims.
func Identity(claims jwt.MapClaims) (username string, userID int, err error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", 0, ErrInvalidToken
	}
	// encoding/json decodes numbers as float64
	id, ok := claims["id"].(float64)
	if !ok {
		return "", 0, ErrInvalidToken
	}
	return username, int(id), nil
}
