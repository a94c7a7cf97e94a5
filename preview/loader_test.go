package preview

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestLoadPreviewMiddle(t *testing.T) {
	path := writeLines(t, 50)

	p, err := LoadPreview(path, 20)

	require.NoError(t, err)
	assert.Equal(t, 15, p.StartLine)
	assert.Len(t, p.Lines, DefaultBefore+DefaultAfter+1)
	assert.Equal(t, 6, p.HitLine)
	assert.Equal(t, "line 20", p.Lines[p.HitLine-1])
	assert.Equal(t, "line 30", p.Lines[len(p.Lines)-1])
}

func TestLoadPreviewClampsAtStartAndEnd(t *testing.T) {
	path := writeLines(t, 4)

	p, err := Load(path, 2, 5, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, p.StartLine)
	assert.Equal(t, []string{"line 1", "line 2", "line 3", "line 4"}, p.Lines)
	assert.Equal(t, 2, p.HitLine)
}

func TestLoadPreviewPastEOF(t *testing.T) {
	path := writeLines(t, 3)

	p, err := Load(path, 40, 2, 2)

	require.NoError(t, err)
	assert.Empty(t, p.Lines)
	assert.Zero(t, p.HitLine)
}

func TestLoadPreviewStripsCarriageReturns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644))

	p, err := Load(path, 1, 0, 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.Lines)
}

func TestLoadPreviewMissingFile(t *testing.T) {
	_, err := LoadPreview(filepath.Join(t.TempDir(), "missing"), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
