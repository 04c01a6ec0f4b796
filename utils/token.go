package utils

import (
	"crypto/rand"
	"math/big"
)

const digits = "0123456789"

// GenerateOTP returns an n-digit numeric code.
func GenerateOTP(n int) string {
	return randomFrom(digits, n)
}

func randomFrom(charset string, n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(charset)))
	for i := range out {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		out[i] = charset[v.Int64()]
	}
	return string(out)
}
