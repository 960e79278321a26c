package odoo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretLengthAndAlphabet(t *testing.T) {
	for _, length := range []int{1, 16, 64} {
		s, err := GenerateSecret(length)
		require.NoError(t, err)
		assert.Len(t, s, length)
		for _, c := range s {
			assert.True(t, strings.ContainsRune(secretAlphabet, c), "unexpected character %q", c)
		}
	}
}

func TestGenerateSecretUnique(t *testing.T) {
	a, err := GenerateSecret(16)
	require.NoError(t, err)
	b, err := GenerateSecret(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateSecretRejectsBadLength(t *testing.T) {
	_, err := GenerateSecret(0)
	assert.Error(t, err)
	_, err = GenerateSecret(-4)
	assert.Error(t, err)
}
