package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureWriterLimit(t *testing.T) {
	t.Run("no limit buffers everything", func(t *testing.T) {
		cw := &captureWriter{ResponseWriter: httptest.NewRecorder()}
		_, err := cw.Write([]byte("abcdef"))
		require.NoError(t, err)
		assert.Equal(t, "abcdef", cw.buf.String())
		assert.Equal(t, int64(6), cw.size)
	})

	t.Run("oversized write is detectable", func(t *testing.T) {
		cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), limit: 10}
		_, _ = cw.Write([]byte("12345678"))
		_, _ = cw.Write([]byte("90AB"))
		assert.Equal(t, "1234567890", cw.buf.String(), "buffer stops at the limit")
		assert.Greater(t, cw.size, cw.limit, "size counts all bytes so the store path can skip")
	})

	t.Run("exact fill followed by more bytes still counts", func(t *testing.T) {
		cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), limit: 10}
		_, _ = cw.Write([]byte("1234567890"))
		_, _ = cw.Write([]byte("XY"))
		assert.Equal(t, int64(12), cw.size)
		assert.Greater(t, cw.size, cw.limit)
	})

	t.Run("within limit stays complete", func(t *testing.T) {
		cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), limit: 10}
		_, _ = cw.Write([]byte("1234567890"))
		assert.Equal(t, "1234567890", cw.buf.String())
		assert.Equal(t, cw.limit, cw.size)
	})
}
