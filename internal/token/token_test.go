package token

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func setSecret(t *testing.T, value string) {
	t.Helper()
	t.Setenv("ORGAUTH_AUTH_SECRET", value)
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)
}

func TestGenerateAndValidate(t *testing.T) {
	setSecret(t, "test-secret")

	signed, expiresAt, err := Generate("jane-01ABC", "Jane@Example.com", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	until := time.Until(expiresAt)
	if until <= 0 || until > time.Hour {
		t.Fatalf("expiry not within one hour: %v", expiresAt)
	}

	claims, err := ParseAndValidate(signed)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.User.UserID != "jane-01ABC" {
		t.Fatalf("unexpected userId claim: %s", claims.User.UserID)
	}
	if claims.User.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %s", claims.User.Email)
	}
	if claims.ID == "" {
		t.Fatal("expected jti claim")
	}
}

func TestGenerateDefaultsToOneHour(t *testing.T) {
	setSecret(t, "test-secret")

	_, expiresAt, err := Generate("user-1", "a@b.co", 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if d := time.Until(expiresAt); d < 59*time.Minute || d > time.Hour {
		t.Fatalf("expected ~1h default expiry, got %v", d)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	setSecret(t, "test-secret")

	now := time.Now().UTC().Add(-2 * time.Hour)
	claims := Claims{
		User: Identity{UserID: "user-1", Email: "a@b.co"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "orgauth",
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAndValidate(signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	setSecret(t, "test-secret")

	signed, _, err := Generate("user-1", "a@b.co", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	setSecret(t, "other-secret")
	if _, err := ParseAndValidate(signed); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	setSecret(t, "test-secret")

	now := time.Now().UTC()
	claims := Claims{
		User: Identity{UserID: "user-1"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAndValidate(signed); err == nil {
		t.Fatal("expected foreign issuer to be rejected")
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = ContextWithUser(ctx, "user-7", "User@Example.com")

	id, ok := UserIDFromContext(ctx)
	if !ok || id != "user-7" {
		t.Fatalf("unexpected user id: %s, ok=%v", id, ok)
	}
	email, ok := EmailFromContext(ctx)
	if !ok || email != "user@example.com" {
		t.Fatalf("unexpected email: %s, ok=%v", email, ok)
	}
	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Fatal("expected missing identity in empty context")
	}
}
