package uuid

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	gen := New()

	id := gen.NewUUID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, gen.NewUUID())
}

func TestNewCode(t *testing.T) {
	gen := New()
	pattern := regexp.MustCompile(`^[0-9A-F]+$`)

	for _, length := range []int{1, 8, 32, 40} {
		code := gen.NewCode(length)
		assert.Len(t, code, length)
		assert.Regexp(t, pattern, code)
	}

	assert.Empty(t, gen.NewCode(0))
}
