package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedJSONWriter(t *testing.T) {
	var out bytes.Buffer
	w := &orderedJSONWriter{output: &out}

	line := []byte(`{"path":"/verify","message":"HTTP Request","level":"info","scope":"accessLog","time":"2026-01-01T00:00:00Z"}` + "\n")
	n, err := w.Write(line)
	require.NoError(t, err)
	assert.Equal(t, len(line), n)
	assert.True(t, strings.HasPrefix(out.String(),
		`{"time":"2026-01-01T00:00:00Z","level":"info","scope":"accessLog","message":"HTTP Request",`), out.String())
	assert.Contains(t, out.String(), `"path":"/verify"`)
}

func TestOrderedJSONWriterPassesThroughInvalidJSON(t *testing.T) {
	var out bytes.Buffer
	w := &orderedJSONWriter{output: &out}
	_, err := w.Write([]byte("not json\n"))
	require.NoError(t, err)
	assert.Equal(t, "not json\n", out.String())
}

func TestWithScope(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	l := WithScope("payments")
	l.Info().Str("order_id", "abc").Msg("saved")

	assert.Contains(t, out.String(), `"scope":"payments"`)
	assert.Contains(t, out.String(), `"order_id":"abc"`)
}
