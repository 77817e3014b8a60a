package directory

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Normalizer derives lookup-normalized forms of emails and names during user
// creation. Consumed as a capability so deployments can swap in their
// identity system's normalization rules.
type Normalizer interface {
	NormalizeEmail(email string) string
	NormalizeName(name string) string
}

// PasswordHasher derives the stored credential representation from a
// plaintext placeholder. The directory never validates credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// UpperNormalizer is the default Normalizer: the upper-case invariant form
// used for case-insensitive lookups.
type UpperNormalizer struct{}

func (UpperNormalizer) NormalizeEmail(email string) string { return strings.ToUpper(email) }
func (UpperNormalizer) NormalizeName(name string) string   { return strings.ToUpper(name) }

// BcryptHasher is the default PasswordHasher.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}
