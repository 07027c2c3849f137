package security_test

import (
	"strings"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

var testParams = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("very-secure-password", testParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil || !ok {
		t.Fatalf("VerifyPassword failed for the correct password: %v", err)
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := security.HashPassword("", testParams); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=8,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8,t=1,p=1$!!$aGFzaA",
	} {
		if _, err := security.VerifyPassword("pw", encoded); err != security.ErrInvalidHash {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := security.GenerateTempPassword(20)
	if err != nil {
		t.Fatalf("GenerateTempPassword: %v", err)
	}
	if len(pw) != 20 {
		t.Fatalf("expected 20 chars, got %d", len(pw))
	}
	if strings.ContainsAny(pw, "0O1lI") {
		t.Fatalf("password contains look-alike characters: %q", pw)
	}
	if _, err := security.GenerateTempPassword(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}
