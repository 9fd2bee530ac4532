package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenActivationCode returns a uniformly random 4 digit code in [1000, 9999].
func GenActivationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
