package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type inputFile struct {
	name    string
	content []byte
}

// writeInputs creates the given files in a fresh "in" directory below dir
// and returns their paths in order.
func writeInputs(t *testing.T, dir string, files ...inputFile) []string {
	t.Helper()

	inDir := filepath.Join(dir, "in")
	require.NoError(t, os.MkdirAll(inDir, 0o755))

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(inDir, f.name)
		require.NoError(t, os.WriteFile(path, f.content, 0o644))
		paths = append(paths, path)
	}

	return paths
}

// segmentSizes returns the on-disk size of each segment of the archive at base.
func segmentSizes(t *testing.T, base string, m Manifest) []int64 {
	t.Helper()

	sizes := make([]int64, 0, m.SegmentCount)
	for i := range m.SegmentCount {
		info, err := os.Stat(SegmentName(base, i))
		require.NoError(t, err)
		sizes = append(sizes, info.Size())
	}

	return sizes
}

func patterned(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i*7 + i/251)
	}

	return buf
}
