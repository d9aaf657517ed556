package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/livemart/livemart-backend/pkg/config"
	"github.com/livemart/livemart-backend/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "livemart",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	userID := uuid.New()

	payload := AccessTokenPayload{
		UserID: userID,
		Email:  "shopper@example.com",
		Role:   enums.UserRoleCustomer,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != enums.UserRoleCustomer {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Subject != payload.Email {
		t.Fatalf("expected subject %q, got %q", payload.Email, claims.Subject)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %q, got %q", cfg.Issuer, claims.Issuer)
	}
	wantExpiry := now.Add(30 * time.Minute)
	if got := claims.ExpiresAt.Time; got.Sub(wantExpiry) > time.Second || wantExpiry.Sub(got) > time.Second {
		t.Fatalf("expected expiry near %v, got %v", wantExpiry, got)
	}
}

func TestMintAccessTokenRejectsBadInput(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "livemart", ExpirationMinutes: 30}
	now := time.Now()

	if _, err := MintAccessToken(config.JWTConfig{Issuer: "livemart", ExpirationMinutes: 1}, now, AccessTokenPayload{}); err == nil {
		t.Fatal("expected missing secret to error")
	}
	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{Email: "a@b.c", Role: "admin"}); err == nil {
		t.Fatal("expected invalid role to error")
	}
	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{Role: enums.UserRoleCustomer}); err == nil {
		t.Fatal("expected missing email to error")
	}
}

func TestParseAccessTokenRejectsTampering(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "livemart", ExpirationMinutes: 30}
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		Role:   enums.UserRoleRetailer,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(config.JWTConfig{Secret: "other", Issuer: "livemart"}, token); err == nil {
		t.Fatal("expected wrong secret to fail")
	}

	mangled := strings.TrimSuffix(token, token[len(token)-2:]) + "xx"
	if _, err := ParseAccessToken(cfg, mangled); err == nil {
		t.Fatal("expected mangled token to fail")
	}
}
