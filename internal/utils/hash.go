package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPhoneNumber computes the SHA-256 hash of a phone number and returns
// the hex digest. The digest keys the pairing cache and links cache entries
// to caregiver rows, so raw numbers never enter the cache keyspace. Both the
// invite and verify paths must derive the same key for the same number.
func HashPhoneNumber(phoneNumber string) string {
	hasher := sha256.New()
	hasher.Write([]byte(phoneNumber))
	return hex.EncodeToString(hasher.Sum(nil))
}
