package utils

import (
	"crypto/rand"
	"math/big"
)

// RandomAlphanumericCode generates an uppercase alphanumeric code of the
// given length, suitable for single-use verification codes.
func RandomAlphanumericCode(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		b[i] = alphabet[num.Int64()]
	}
	return string(b), nil
}
