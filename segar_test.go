package segar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/segar/archive"
	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/format"
	"github.com/arloliu/segar/record"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string, order ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(order))
	for _, name := range order {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(files[name]), 0o644))
		paths = append(paths, path)
	}

	return paths
}

func TestEncodeDecode_Scenario(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	files := map[string]string{"a": "xyz", "b": "ab"}
	paths := writeFiles(t, inDir, files, "a", "b")
	base := filepath.Join(t.TempDir(), "out")

	m, err := Encode(base, paths, archive.WithMaxSegmentSize(0))
	require.NoError(t, err)
	require.Equal(t, archive.Manifest{SegmentCount: 1, TotalBytes: 39}, m)

	entries, err := Decode(base, nil, record.WithOutputDir(outDir))
	require.NoError(t, err)
	require.Equal(t, []record.Entry{{Name: "a", Size: 3}, {Name: "b", Size: 2}}, entries)

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		require.Equal(t, want, string(got))
	}

	log, err := os.ReadFile(filepath.Join(outDir, format.LogFileName))
	require.NoError(t, err)
	require.Equal(t, "a\nb\n", string(log))
}

func TestEncodeDecode_Split(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	files := map[string]string{
		"first.txt":  "the quick brown fox jumps over the lazy dog",
		"second.txt": "",
		"third.bin":  string([]byte{0, 1, 2, 3, 0xff, 0xfe}),
	}
	paths := writeFiles(t, inDir, files, "first.txt", "second.txt", "third.bin")
	base := filepath.Join(t.TempDir(), "out")

	m, err := Encode(base, paths, archive.WithMaxSegmentSize(7))
	require.NoError(t, err)
	require.Greater(t, m.SegmentCount, uint64(1))

	listed, entries, err := List(base)
	require.NoError(t, err)
	require.Equal(t, m, listed)
	require.Equal(t, []record.Entry{
		{Name: "first.txt", Size: uint64(len(files["first.txt"]))},
		{Name: "second.txt", Size: 0},
		{Name: "third.bin", Size: 6},
	}, entries)

	_, err = Decode(base, nil, record.WithOutputDir(outDir))
	require.NoError(t, err)
	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		require.Equal(t, want, string(got))
	}
}

func TestDecode_MissingSegment(t *testing.T) {
	inDir := t.TempDir()
	paths := writeFiles(t, inDir, map[string]string{"a": "0123456789"}, "a")
	base := filepath.Join(t.TempDir(), "out")

	m, err := Encode(base, paths, archive.WithMaxSegmentSize(9))
	require.NoError(t, err)
	require.Equal(t, uint64(3), m.SegmentCount)
	require.NoError(t, os.Remove(archive.SegmentName(base, 1)))

	_, err = Decode(base, nil, record.WithOutputDir(t.TempDir()))
	require.ErrorIs(t, err, errs.ErrMissingSegment)

	_, _, err = List(base)
	require.ErrorIs(t, err, errs.ErrMissingSegment)
}

func TestDecode_InvalidOption(t *testing.T) {
	_, err := Decode("unused", nil, record.WithOutputDir(""))
	require.Error(t, err)
}
