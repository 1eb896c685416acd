// Package token issues and verifies the signed bearer tokens that reference a
// stored session.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalid = errors.New("invalid token")

// Claims carries the session reference inside a token.
type Claims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer signs and parses HS256 tokens.
type Issuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewIssuer(secret, issuer string) *Issuer {
	return &Issuer{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Issue returns a token for the session that expires at expiresAt.
func (i *Issuer) Issue(sessionID, username string, expiresAt time.Time) (string, error) {
	claims := Claims{
		SessionID: sessionID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(i.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse validates signature, algorithm and expiry.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalid
	}
	if claims.SessionID == "" || claims.Username == "" {
		return nil, ErrInvalid
	}
	if i.issuer != "" && claims.Issuer != i.issuer {
		return nil, ErrInvalid
	}
	return &claims, nil
}
