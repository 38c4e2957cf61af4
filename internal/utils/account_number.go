package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// accountNumberPrefix is the institution prefix for all generated account
// numbers.
const accountNumberPrefix = "1000"

// accountNumberRandomDigits is the number of random digits following the
// prefix, for a 16-digit number overall.
const accountNumberRandomDigits = 12

// GenerateAccountNumber produces a candidate 16-digit account number:
// the institution prefix followed by cryptographically random digits.
// Uniqueness is not guaranteed here; callers must verify the candidate
// against the account store and regenerate on collision.
func GenerateAccountNumber() (string, error) {
	digits := make([]byte, 0, accountNumberRandomDigits)
	ten := big.NewInt(10)
	for i := 0; i < accountNumberRandomDigits; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to read random digit: %w", err)
		}
		digits = append(digits, byte('0'+n.Int64()))
	}
	return accountNumberPrefix + string(digits), nil
}
