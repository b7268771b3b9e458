// Package security holds the two cryptographic building blocks of the auth
// core: the bcrypt password hasher and the JWT token codec. Both are plain
// values constructed once at startup; neither touches global state.
package security

import "golang.org/x/crypto/bcrypt"

// dummyHash is a bcrypt digest of a random string nobody knows. Comparing
// against it when a username lookup misses keeps the work done on the
// failure path roughly equal to the real-password path.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// PasswordHasher wraps bcrypt with a configurable work factor.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted one-way digest of plain. Each call salts
// independently, so hashing the same password twice yields different
// digests that both verify.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. Malformed digests verify
// false rather than erroring; bcrypt's comparison is constant-time with
// respect to the password bytes.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// VerifyDummy burns a bcrypt comparison against a throwaway digest. Called
// on the no-such-user path so lookup misses and password mismatches take
// comparable time.
func (h *PasswordHasher) VerifyDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
}
