package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

func GenerateRandomString() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// Ambiguous characters (0/O, 1/I) are excluded.
const alphaNumeric = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomAlphaNumeric returns a random uppercase alphanumeric string
// suitable for human-readable codes.
func GenerateRandomAlphaNumeric(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphaNumeric[RandIntn(len(alphaNumeric))]
	}
	return string(b)
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}
