package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/format"
	"github.com/stretchr/testify/require"
)

func TestNewDecoder_Defaults(t *testing.T) {
	d, err := NewDecoder()
	require.NoError(t, err)
	require.Equal(t, ".", d.cfg.outDir)
	require.Equal(t, format.LogFileName, d.LogPath())

	d, err = NewDecoder(WithOutputDir("out"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("out", format.LogFileName), d.LogPath())

	_, err = NewDecoder(WithOutputDir(""))
	require.Error(t, err)
}

func TestDecoder_Extract(t *testing.T) {
	dir := t.TempDir()
	payload := Append(nil, "a", []byte("xyz"))
	payload = Append(payload, "b", []byte("ab"))
	payload = Append(payload, "empty", nil)

	d, err := NewDecoder(WithOutputDir(dir), WithDecoderLogger(nil))
	require.NoError(t, err)

	entries, err := d.Extract(payload)
	require.NoError(t, err)
	require.Equal(t, []Entry{{"a", 3}, {"b", 2}, {"empty", 0}}, entries)

	for name, want := range map[string]string{"a": "xyz", "b": "ab", "empty": ""} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Equal(t, want, string(got))
	}

	log, err := os.ReadFile(filepath.Join(dir, format.LogFileName))
	require.NoError(t, err)
	require.Equal(t, "a\nb\nempty\n", string(log))
}

func TestDecoder_Extract_OverwritesAndTruncatesLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "custom.log")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("old and longer content"), 0o644))
	require.NoError(t, os.WriteFile(logPath, []byte("stale\nlines\n"), 0o644))

	d, err := NewDecoder(WithOutputDir(dir), WithLogPath(logPath))
	require.NoError(t, err)

	_, err = d.Extract(Append(nil, "a", []byte("new")))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "a"))
	require.NoError(t, err)
	require.Equal(t, "new", string(got))

	log, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Equal(t, "a\n", string(log))
}

func TestDecoder_Extract_Errors(t *testing.T) {
	t.Run("unsafe name", func(t *testing.T) {
		dir := t.TempDir()
		d, err := NewDecoder(WithOutputDir(dir))
		require.NoError(t, err)

		_, err = d.Extract(Append(nil, "../escape", []byte("x")))

		require.ErrorIs(t, err, errs.ErrCorruptArchive)
		require.ErrorIs(t, err, errs.ErrInvalidName)
		require.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escape"))
	})

	t.Run("truncated payload keeps earlier files", func(t *testing.T) {
		dir := t.TempDir()
		payload := Append(nil, "first", []byte("1"))
		payload = Append(payload, "second", []byte("22"))

		d, err := NewDecoder(WithOutputDir(dir))
		require.NoError(t, err)

		entries, err := d.Extract(payload[:len(payload)-1])

		require.ErrorIs(t, err, errs.ErrTruncatedRecord)
		require.Equal(t, []Entry{{"first", 1}}, entries)
		require.FileExists(t, filepath.Join(dir, "first"))
		require.NoFileExists(t, filepath.Join(dir, "second"))
	})

	t.Run("missing output directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		d, err := NewDecoder(WithOutputDir(dir))
		require.NoError(t, err)

		_, err = d.Extract(Append(nil, "a", []byte("x")))

		require.ErrorIs(t, err, errs.ErrIO)
	})

	t.Run("output name is a directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))
		d, err := NewDecoder(WithOutputDir(dir))
		require.NoError(t, err)

		_, err = d.Extract(Append(nil, "a", []byte("x")))

		require.ErrorIs(t, err, errs.ErrIO)
	})
}
