package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClaims(t *testing.T) {
	claim, err := parseClaims([]string{"email=u@x.com", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": "u@x.com", "note": "a=b"}, claim)

	_, err = parseClaims([]string{"missing-separator"})
	assert.Error(t, err)

	_, err = parseClaims([]string{"=value"})
	assert.Error(t, err)
}
