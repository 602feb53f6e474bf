// Package authtoken issues and verifies the HS256 bearer tokens used by the API.
package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stayhub/internal/domain"
)

var ErrInvalidToken = errors.New("authtoken: invalid token")

// Principal is the authenticated identity carried by a verified token.
type Principal struct {
	UserID string
	Email  string
	Role   domain.Role
}

type JWT struct {
	secret []byte
	ttl    time.Duration
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

func (j *JWT) Issue(u domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  string(u.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(j.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(j.secret)
}

// Verify parses a signed token and returns the principal it encodes.
// Tokens signed with any method other than HMAC are rejected.
func (j *JWT) Verify(raw string) (Principal, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return j.secret, nil
	})
	if err != nil || !tok.Valid {
		return Principal{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	role, err := domain.ParseRole(roleStr)
	if sub == "" || err != nil {
		return Principal{}, ErrInvalidToken
	}
	return Principal{UserID: sub, Email: email, Role: role}, nil
}
