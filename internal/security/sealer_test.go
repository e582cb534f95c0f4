package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()
	sealer, err := NewSealer([]byte("test-secret-key-with-at-least-32-bytes"))
	require.NoError(t, err)
	return sealer
}

func TestSealerRoundTrip(t *testing.T) {
	t.Parallel()

	sealer := newTestSealer(t)
	sealed, err := sealer.Seal("client-id", []byte("4f1c2a"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, "v1."))
	assert.NotContains(t, sealed, "4f1c2a")

	opened, err := sealer.Open("client-id", sealed)
	require.NoError(t, err)
	assert.Equal(t, "4f1c2a", string(opened))
}

func TestSealerUsesFreshNonces(t *testing.T) {
	t.Parallel()

	sealer := newTestSealer(t)
	first, err := sealer.Seal("draft", []byte("same"))
	require.NoError(t, err)
	second, err := sealer.Seal("draft", []byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSealerRejections(t *testing.T) {
	t.Parallel()

	sealer := newTestSealer(t)
	sealed, err := sealer.Seal("client-id", []byte("value"))
	require.NoError(t, err)

	other, err := NewSealer([]byte("a-different-secret-key-of-32-bytes"))
	require.NoError(t, err)

	_, err = sealer.Open("registration-draft", sealed)
	assert.ErrorIs(t, err, ErrInvalidSealedValue, "purpose is bound")

	_, err = other.Open("client-id", sealed)
	assert.ErrorIs(t, err, ErrInvalidSealedValue, "key is bound")

	for _, raw := range []string{"", "v1.", "v2." + strings.TrimPrefix(sealed, "v1."), "v1.***", "v1.AAAA", sealed[:len(sealed)-2]} {
		_, err = sealer.Open("client-id", raw)
		assert.ErrorIs(t, err, ErrInvalidSealedValue, "raw %q", raw)
	}

	_, err = sealer.Seal(" ", []byte("value"))
	assert.Error(t, err)
	_, err = NewSealer(nil)
	assert.Error(t, err)
}
