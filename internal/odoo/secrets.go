package odoo

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// secretAlphabet gates database and superadmin access, so it sticks to
// characters that survive INI files, connection strings and shells.
const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!#%+:=?@"

// GenerateSecret returns a password of exactly length characters drawn
// uniformly from secretAlphabet using crypto/rand.
func GenerateSecret(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("secret length %d out of range", length)
	}
	max := big.NewInt(int64(len(secretAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		buf[i] = secretAlphabet[n.Int64()]
	}
	return string(buf), nil
}
