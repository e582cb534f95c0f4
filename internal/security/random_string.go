package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Alphabets for human-facing reference codes. ReferenceAlphabet leaves out
// characters that are easy to misread (0/O, 1/I).
const (
	ReferenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	DigitAlphabet     = "0123456789"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using
// crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}

// ReferenceCode returns prefix followed by length reference characters, the
// shape of booking and refill ids.
func ReferenceCode(prefix string, length int) (string, error) {
	suffix, err := RandomString(length, ReferenceAlphabet)
	if err != nil {
		return "", err
	}
	return prefix + suffix, nil
}
