// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash produces a salted, one-way digest of password.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A wrong password is (false, nil);
	// an error is returned only when hash itself is malformed.
	Check(password, hash string) (bool, error)
}
