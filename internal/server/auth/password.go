package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for new hashes. The cost is
// encoded in every stored hash, so raising it does not break old ones.
const PasswordCost = 10

// PasswordHasher produces and checks self-describing bcrypt hashes
// ("$2a$10$<salt><digest>").
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: PasswordCost}
}

// NewPasswordHasherWithCost builds a hasher with a custom bcrypt work factor.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A mismatch or an
// unparsable hash is a plain false.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	return err == nil
}

// VerifyAgainstDummy burns the same bcrypt work as Verify against a fixed
// hash. Login calls it when the email is unknown so both failure paths take
// the same time. It always returns false.
func (h *PasswordHasher) VerifyAgainstDummy(plaintext string) bool {
	h.dummyOnce.Do(func() {
		h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plaintext))
	return false
}

// Cost returns the work factor encoded in hash.
func Cost(hash string) (int, error) {
	return bcrypt.Cost([]byte(hash))
}
