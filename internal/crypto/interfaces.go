package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into self-describing salted hashes
// and checks plaintexts against them. The salt and work factor are embedded in
// the hash string, so nothing else has to be stored next to it.
type PasswordHasher interface {
	// Hash returns a freshly salted hash of plaintext. Two calls with the same
	// plaintext produce different strings.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A malformed hash yields
	// false, never an error.
	Verify(plaintext, hash string) bool
}
