package auth

import (
	"errors"
	"fmt"
	"time"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "auction-marketplace"

// Claims is the session token payload
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 session tokens
type Manager struct {
	secret []byte
	expire time.Duration
	now    func() time.Time
}

// NewManager creates a token manager. expire bounds each token's lifetime.
func NewManager(secret string, expire time.Duration) (*Manager, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	if expire <= 0 {
		return nil, errors.New("jwt expiry must be positive")
	}
	return &Manager{secret: []byte(secret), expire: expire, now: time.Now}, nil
}

// Issue signs a token for the profile
func (m *Manager) Issue(profile models.Profile) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: profile.Email,
		Role:  profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token for %s: %w", profile.Email, err)
	}
	return signed, nil
}

// Verify parses a token and returns the actor it was issued for
func (m *Manager) Verify(tokenString string) (models.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return models.Actor{}, fmt.Errorf("verify token: %w: %w", auctionerrors.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return models.Actor{}, fmt.Errorf("verify token: %w: token claims are invalid", auctionerrors.ErrUnauthorized)
	}
	return models.Actor{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}
