package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims carried by a session token. The token only names the session; all state is server side.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func IssueToken(sessionID string, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: signing secret not configured", ErrInvalidToken)
	}
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies the signature and returns the session id.
func ParseToken(token string, secret []byte) (string, error) {
	if token == "" || len(secret) == 0 {
		return "", ErrInvalidToken
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.SessionID == "" {
		return "", fmt.Errorf("%w: missing session id", ErrInvalidToken)
	}
	return claims.SessionID, nil
}
