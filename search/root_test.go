package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindGitRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok := FindGitRoot(nested)

	require.True(t, ok)
	assert.Equal(t, root, got)
}

func TestFindGitRootWorktreeFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: /elsewhere\n"), 0o644))

	got, ok := FindGitRoot(root)

	require.True(t, ok)
	assert.Equal(t, root, got)
}

func TestResolveRootExplicit(t *testing.T) {
	assert.Equal(t, "/srv/project", ResolveRoot("/srv/project"))
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/root", "a", "b.go"), ResolvePath("/root", "a/b.go"))
	assert.Equal(t, filepath.Join(".", "b.go"), ResolvePath(".", "b.go"))
	assert.Equal(t, "/abs/b.go", ResolvePath("/root", "/abs/b.go"))
}
