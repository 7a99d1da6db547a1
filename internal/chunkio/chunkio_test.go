package chunkio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	bytes.Buffer
	calls []int
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.calls = append(w.calls, len(p))
	return w.Buffer.Write(p)
}

type shortWriter struct{ limit int }

func (w *shortWriter) Write(p []byte) (int, error) {
	return min(len(p), w.limit), nil
}

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 1, errors.New("broken pipe")
}

func TestWriteChunks(t *testing.T) {
	t.Run("splits into bounded writes", func(t *testing.T) {
		w := &recordingWriter{}
		data := []byte("0123456789")

		n, err := writeChunks(w, data, 4)

		require.NoError(t, err)
		require.Equal(t, 10, n)
		require.Equal(t, []int{4, 4, 2}, w.calls)
		require.Equal(t, data, w.Bytes())
	})

	t.Run("empty input writes nothing", func(t *testing.T) {
		w := &recordingWriter{}

		n, err := writeChunks(w, nil, 4)

		require.NoError(t, err)
		require.Zero(t, n)
		require.Empty(t, w.calls)
	})

	t.Run("short write", func(t *testing.T) {
		n, err := writeChunks(&shortWriter{limit: 3}, []byte("0123456789"), 4)

		require.ErrorIs(t, err, io.ErrShortWrite)
		require.Equal(t, 3, n)
	})

	t.Run("writer error", func(t *testing.T) {
		n, err := writeChunks(brokenWriter{}, []byte("0123"), 4)

		require.EqualError(t, err, "broken pipe")
		require.Equal(t, 1, n)
	})
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	n, err := Write(&buf, []byte("payload"))

	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, "payload", buf.String())
}
