package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scrimhub/scrimhub/internal/model"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// Lifetime is how long an issued session token stays valid. There is no
// revocation list; a role change does not invalidate earlier tokens.
const Lifetime = 30 * 24 * time.Hour

// Claims is the verified payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string         `json:"userId"`
	Username string         `json:"username"`
	Avatar   string         `json:"avatar"`
	ClanID   string         `json:"clanId,omitempty"`
	ClanRole model.ClanRole `json:"clanRole,omitempty"`
	SiteRole model.SiteRole `json:"siteRole,omitempty"`
}

type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs a session token carrying the user's identity and roles.
func (s *Service) Issue(u *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   u.UserID,
		Username: u.Username,
		Avatar:   u.Avatar,
		ClanID:   u.ClanID,
		ClanRole: u.ClanRole,
		SiteRole: u.SiteRole,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and checks signature and expiry, returning the claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := tok.Claims.(*Claims); ok && tok.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
