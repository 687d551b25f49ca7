package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the token payload the upstream issues. The console is not
// the issuer and holds no signing secret, so claims are read without
// signature verification; the upstream re-checks the signature on every
// authenticated call.
type Claims struct {
	UserID    string `json:"uid"`
	CompanyID string `json:"cid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

var ErrTokenExpired = errors.New("session token expired")

// ParseClaims decodes a bearer token and rejects expired ones, so a stale
// persisted session is wiped instead of restored.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
