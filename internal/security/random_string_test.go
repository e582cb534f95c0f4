package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  bool
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: true},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: true},
		{name: "zero length", length: 0, alphabet: ""},
		{name: "single character alphabet", length: 8, alphabet: "X"},
		{name: "digits", length: 3, alphabet: DigitAlphabet},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			value, err := RandomString(test.length, test.alphabet)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, value, test.length)
			for _, char := range value {
				assert.True(t, strings.ContainsRune(test.alphabet, char), "unexpected character %q", char)
			}
		})
	}
}

func TestReferenceCode(t *testing.T) {
	t.Parallel()

	code, err := ReferenceCode("RF-", 8)
	require.NoError(t, err)
	require.Len(t, code, 11)
	assert.True(t, strings.HasPrefix(code, "RF-"))
	assert.NotContains(t, code[3:], "0")
	assert.NotContains(t, code[3:], "O")
}
