package shortcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		s, err := New()
		require.NoError(t, err)
		assert.True(t, Valid(s), s)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 190)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("a1b2c3"))
	assert.False(t, Valid("A1B2C3"))
	assert.False(t, Valid("a1b2c"))
	assert.False(t, Valid("a1b2c3d"))
	assert.False(t, Valid("a1-2c3"))
}
