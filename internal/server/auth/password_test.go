package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "s3cret!" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
	if !h.Verify("s3cret!", hash) {
		t.Fatalf("Verify returned false for the right password")
	}
	if h.Verify("s3cret?", hash) {
		t.Fatalf("Verify returned true for a wrong password")
	}
}

func TestPasswordHasher_DefaultCostIsEncoded(t *testing.T) {
	t.Parallel()

	hash, err := NewPasswordHasher().Hash("abcdef")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	cost, err := Cost(hash)
	if err != nil {
		t.Fatalf("Cost error: %v", err)
	}
	if cost != PasswordCost {
		t.Fatalf("cost: got %d want %d", cost, PasswordCost)
	}
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Fatalf("hash does not carry cost 10: %q", hash)
	}
}

func TestPasswordHasher_OldCostStillVerifies(t *testing.T) {
	t.Parallel()

	old, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}

	if !NewPasswordHasher().Verify("pw123456", string(old)) {
		t.Fatalf("hash with a different cost must still verify")
	}
}

func TestPasswordHasher_GarbageHash(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasherWithCost(bcrypt.MinCost)
	if h.Verify("x", "not-a-bcrypt-hash") {
		t.Fatalf("garbage hash must not verify")
	}
	if _, err := Cost("not-a-bcrypt-hash"); err == nil {
		t.Fatalf("expected error for garbage hash")
	}
}

func TestPasswordHasher_VerifyAgainstDummy(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasherWithCost(bcrypt.MinCost)
	if h.VerifyAgainstDummy("anything") {
		t.Fatalf("dummy comparison must always fail")
	}
	// second call reuses the lazily built hash
	if h.VerifyAgainstDummy("anything") {
		t.Fatalf("dummy comparison must always fail")
	}
}
