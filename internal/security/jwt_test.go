package security_test

import (
	"testing"
	"time"

	"github.com/TejasJagadale/backendofficial/internal/security"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	tok, err := security.MakeAccess("s3cret", "u1", "u@example.com", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	c, err := security.ParseAccess("s3cret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UID != "u1" || c.Email != "u@example.com" {
		t.Fatalf("claims mismatch: %#v", c)
	}
}

func TestAccessToken_WrongSecret(t *testing.T) {
	tok, err := security.MakeAccess("s3cret", "u1", "u@example.com", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseAccess("other", tok); err == nil {
		t.Fatal("accepted token signed with another secret")
	}
}

func TestAccessToken_Expired(t *testing.T) {
	tok, err := security.MakeAccess("s3cret", "u1", "u@example.com", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseAccess("s3cret", tok); err == nil {
		t.Fatal("accepted expired token")
	}
}

func TestPassword_HashAndCheck(t *testing.T) {
	h, err := security.HashPassword("secret1")
	if err != nil {
		t.Fatal(err)
	}
	if !security.CheckPassword(h, "secret1") {
		t.Fatal("correct password rejected")
	}
	if security.CheckPassword(h, "secret2") {
		t.Fatal("wrong password accepted")
	}
}

func TestNewResetToken_Unique(t *testing.T) {
	a, err := security.NewResetToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := security.NewResetToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b || len(a) != 64 {
		t.Fatalf("tokens: %q %q", a, b)
	}
}
