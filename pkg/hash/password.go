package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Hash produces a salted bcrypt hash of the given password. The output
// embeds the algorithm version, cost and salt, so stored hashes remain
// verifiable if the cost is raised later.
func Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// Verify reports whether password matches hashedPassword. It never
// returns an error: an empty password, an empty hash or a malformed
// hash all count as a failed verification. Comparison is delegated to
// bcrypt, which does not short-circuit on the first mismatching byte.
func Verify(password, hashedPassword string) bool {
	if password == "" || hashedPassword == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
