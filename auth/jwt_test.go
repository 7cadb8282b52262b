package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService([]byte("test-key"), time.Hour)

	token, err := svc.Generate("hr@x.com", "HR", "hr")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	email, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if email != "hr@x.com" {
		t.Errorf("principal = %q, want hr@x.com", email)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	token, err := NewTokenService([]byte("key-a"), time.Hour).Generate("hr@x.com", "HR", "hr")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := NewTokenService([]byte("key-b"), time.Hour).Verify(token); err == nil {
		t.Error("token signed with another key verified")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService([]byte("test-key"), -time.Minute)
	token, err := svc.Generate("hr@x.com", "HR", "hr")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Error("expired token verified")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService([]byte("test-key"), time.Hour)
	if _, err := svc.Verify("not-a-token"); err == nil {
		t.Error("garbage token verified")
	}
}
