package util

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt cost used when none is configured.
const DefaultHashCost = 12

// HashPassword hashes a plain text password at the default cost.
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultHashCost)
}

// HashPasswordWithCost hashes a plain text password at the given bcrypt
// cost. Costs outside the range bcrypt accepts fall back to the default.
func HashPasswordWithCost(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the plain text password matches the hash.
// The cost is read from the hash itself, so hashes created under an older
// configured cost keep verifying.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
