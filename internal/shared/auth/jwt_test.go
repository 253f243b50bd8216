package auth

import (
	"testing"
	"time"
)

func TestConfiguredSecretUsedForSignAndVerify(t *testing.T) {
	SetSecret("configured-secret")
	t.Cleanup(func() { SetSecret("") })

	token, err := SignJWT(Claims{
		Sub: "user-1",
		Exp: time.Now().UTC().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Sub != "user-1" {
		t.Fatalf("sub = %q", claims.Sub)
	}

	// A token minted under one secret must not verify under another.
	SetSecret("rotated-secret")
	if _, err := VerifyJWT(token); err == nil {
		t.Fatal("token verified across a secret change")
	}
}

func TestSetSecretEmptyRestoresFallback(t *testing.T) {
	SetSecret("   ")
	t.Cleanup(func() { SetSecret("") })

	token, err := SignJWT(Claims{
		Sub: "user-1",
		Exp: time.Now().UTC().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("SignJWT with fallback secret: %v", err)
	}
	if _, err := VerifyJWT(token); err != nil {
		t.Fatalf("VerifyJWT with fallback secret: %v", err)
	}
}
