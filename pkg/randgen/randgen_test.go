package randgen_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jermeyyy/quovadis/pkg/randgen"
)

func TestShort(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"length 0", 0},
		{"length 1", 1},
		{"length 8", 8},
		{"length 16", 16},
	}

	pattern := regexp.MustCompile(`^[a-z0-9]*$`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := randgen.Short(tt.length)

			assert.Len(t, result, tt.length)
			assert.True(t, pattern.MatchString(result), "Short(%d) = %q, want only [a-z0-9]", tt.length, result)
		})
	}
}

func TestKey_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		key := randgen.Key()
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}
