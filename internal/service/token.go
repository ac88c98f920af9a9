package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification failures. The distinct kinds exist for logs and
// metrics; every caller maps all of them to the same external rejection.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
)

// TokenClaims is the identity embedded in an issued token. Role is the
// user's role at sign-in time; it is not re-read afterwards.
type TokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenCodec issues and verifies HS256-signed identity tokens. The signing
// key is loaded once at startup and never exposed to callers.
type TokenCodec struct {
	signingKey []byte
	tokenTTL   time.Duration
}

func NewTokenCodec(signingKey []byte, tokenTTL time.Duration) *TokenCodec {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &TokenCodec{signingKey: signingKey, tokenTTL: tokenTTL}
}

// Issue signs subject+role with a fresh issued-at and expiry. The jti claim
// is a random UUID, so two tokens for the same subject in the same second
// still differ.
func (tc *TokenCodec) Issue(subject, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.tokenTTL)),
		},
		Role: role,
	})
	return token.SignedString(tc.signingKey)
}

// Verify parses and checks a raw token. Garbage input is routed through the
// returned error, never a panic.
func (tc *TokenCodec) Verify(raw string) (TokenClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v: %w", token.Header["alg"], jwt.ErrTokenSignatureInvalid)
		}
		return tc.signingKey, nil
	})
	if err != nil {
		return TokenClaims{}, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return TokenClaims{}, ErrTokenMalformed
	}
	return *claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenBadSignature
	default:
		return ErrTokenMalformed
	}
}
