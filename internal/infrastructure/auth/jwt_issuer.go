package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
)

// sessionClaims mantém o claim userId usado pelo frontend
type sessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTIssuer implementa ports.TokenIssuer com HS256
type JWTIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewJWTIssuer cria um emissor de tokens de sessão
func NewJWTIssuer(secret string, expiry time.Duration) ports.TokenIssuer {
	return &JWTIssuer{secret: []byte(secret), expiry: expiry}
}

func (i *JWTIssuer) Issue(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.expiry)

	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (i *JWTIssuer) Parse(tokenString string) (*ports.TokenClaims, error) {
	claims := &sessionClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrUnauthorized, err)
	}

	if claims.UserID == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	return &ports.TokenClaims{
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
