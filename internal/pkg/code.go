package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
)

// RandDigits returns n cryptographically random decimal digits, used for
// email verification codes.
func RandDigits(n int) (string, error) {
	buf := make([]byte, n)
	for i := range buf {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + x.Int64())
	}
	return string(buf), nil
}
