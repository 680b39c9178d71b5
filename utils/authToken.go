package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

// TokenClaims represents the data embedded in an access token.
type TokenClaims struct {
	UserID string    `json:"userId"`
	Role   string    `json:"role"`
	Email  string    `json:"email"`
	Expiry time.Time `json:"expiry"`
}

var ErrTokenExpired = errors.New("token expired")

// TokenMaker issues and verifies PASETO v2 symmetric tokens. The key and
// expiry come from the application config so they are testable in isolation.
type TokenMaker struct {
	symmetricKey []byte
	expiry       time.Duration
}

// NewTokenMaker creates a TokenMaker. The symmetric key must be 32 bytes.
func NewTokenMaker(symmetricKey []byte, expiry time.Duration) (*TokenMaker, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be 32 bytes long, got %d", len(symmetricKey))
	}
	return &TokenMaker{symmetricKey: symmetricKey, expiry: expiry}, nil
}

// CreateToken generates an encrypted token for the given identity.
func (m *TokenMaker) CreateToken(userID, role, email string) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		Email:  email,
		Expiry: time.Now().Add(m.expiry),
	}

	token, err := paseto.NewV2().Encrypt(m.symmetricKey, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// VerifyToken decrypts the token and checks its expiry. Callers must still
// reload the identity from the store; claims alone are not trusted.
func (m *TokenMaker) VerifyToken(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, m.symmetricKey, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}
