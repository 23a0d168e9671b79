// Package randgen generates node keys and short random identifiers.
package randgen

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Key returns a tree-wide unique node key.
func Key() string {
	return uuid.NewString()
}

// Short returns a random lowercase alphanumeric string of the given
// length. Useful for human-readable keys in fixtures and demos.
func Short(length int) string {
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a fixed character rather than propagate.
			out[i] = alphabet[0]
			continue
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}
