package service

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"strings"
	"testing"
	"time"

	"auth_service/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var testSigningKey = []byte("unit-test-signing-key")

func newTestCodec() *TokenCodec {
	return NewTokenCodec(testSigningKey, time.Hour)
}

func TestTokenCodec_IssueVerifyRoundTrip(t *testing.T) {
	tc := newTestCodec()

	raw, err := tc.Issue("diana", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := tc.Verify(raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "diana" {
		t.Errorf("subject: want diana, got %q", claims.Subject)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role: want ADMIN, got %q", claims.Role)
	}
}

func TestTokenCodec_IssueIsNotIdempotent(t *testing.T) {
	tc := newTestCodec()

	t1, err := tc.Issue("diana", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	t2, err := tc.Issue("diana", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("two tokens for identical inputs must differ (jti nonce)")
	}
}

func TestTokenCodec_VerifyExpired(t *testing.T) {
	tc := newTestCodec()

	// Issue an already expired token with the same signing key.
	past := time.Now().Add(-2 * time.Hour)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "old",
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
		Role: models.RoleAdmin,
	})
	expired, err := tk.SignedString(testSigningKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = tc.Verify(expired)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_VerifyForeignKey(t *testing.T) {
	tc := newTestCodec()
	other := NewTokenCodec([]byte("a-different-key"), time.Hour)

	raw, err := other.Issue("mallory", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = tc.Verify(raw)
	if !errors.Is(err, ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestTokenCodec_VerifyTampered(t *testing.T) {
	tc := newTestCodec()

	raw, err := tc.Issue("diana", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flip a character in the signature segment.
	i := strings.LastIndex(raw, ".") + 1
	tampered := raw[:i] + flip(raw[i]) + raw[i+1:]

	if _, err := tc.Verify(tampered); err == nil {
		t.Fatalf("expected error for tampered token")
	}
}

func flip(b byte) string {
	if b == 'A' {
		return "B"
	}
	return "A"
}

func TestTokenCodec_VerifyGarbage(t *testing.T) {
	tc := newTestCodec()

	for _, raw := range []string{"", "rekjkrejvirvblrvrnrivnr", "a.b", "a.b.c.d", "..."} {
		_, err := tc.Verify(raw)
		if !errors.Is(err, ErrTokenMalformed) && !errors.Is(err, ErrTokenBadSignature) {
			t.Errorf("garbage %q: expected malformed/bad-signature error, got %v", raw, err)
		}
	}
}

func TestTokenCodec_VerifyUnexpectedAlg(t *testing.T) {
	tc := newTestCodec()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "diana",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Role: models.RoleAdmin,
	})
	raw, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = tc.Verify(raw)
	if !errors.Is(err, ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature for non-HMAC alg, got %v", err)
	}
}
