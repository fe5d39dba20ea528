package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/source"
	"github.com/quantmind-br/ghget/internal/testutil"
	"github.com/quantmind-br/ghget/internal/utils"
)

func newWorktree(t *testing.T) string {
	t.Helper()

	dir := testutil.TempDir(t)
	testutil.WriteFile(t, dir, "docs/guide.md", "# Guide")
	testutil.WriteFile(t, dir, "docs/api/index.md", "# API")
	testutil.WriteFile(t, dir, "README.md", "# Readme")
	testutil.WriteFile(t, dir, ".git/config", "[core]")

	return dir
}

func TestExtract_File(t *testing.T) {
	scratch := newWorktree(t)
	cwd := testutil.TempDir(t)

	dst, err := source.Extract(scratch, "docs/guide.md", cwd, false)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "guide.md"), dst)
	assert.Equal(t, "# Guide", testutil.ReadFile(t, dst))
	assert.False(t, utils.PathExists(filepath.Join(scratch, "docs", "guide.md")))
}

func TestExtract_Directory(t *testing.T) {
	scratch := newWorktree(t)
	cwd := testutil.TempDir(t)

	dst, err := source.Extract(scratch, "docs", cwd, false)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "docs"), dst)
	assert.Equal(t, "# Guide", testutil.ReadFile(t, filepath.Join(dst, "guide.md")))
	assert.Equal(t, "# API", testutil.ReadFile(t, filepath.Join(dst, "api", "index.md")))
	assert.False(t, utils.PathExists(filepath.Join(scratch, "docs")))
}

func TestExtract_Collision(t *testing.T) {
	scratch := newWorktree(t)
	cwd := testutil.TempDir(t)
	testutil.WriteFile(t, cwd, "README.md", "mine")

	_, err := source.Extract(scratch, "README.md", cwd, false)

	var extractErr *domain.ExtractError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, domain.ExtractDestCollision, extractErr.Kind)
	assert.ErrorIs(t, err, domain.ErrDestCollision)
	assert.Equal(t, "mine", testutil.ReadFile(t, filepath.Join(cwd, "README.md")))
	assert.True(t, utils.PathExists(filepath.Join(scratch, "README.md")))
}

func TestExtract_Overwrite(t *testing.T) {
	scratch := newWorktree(t)
	cwd := testutil.TempDir(t)
	testutil.WriteFile(t, cwd, "docs/stale.md", "old")

	dst, err := source.Extract(scratch, "docs", cwd, true)

	require.NoError(t, err)
	assert.Equal(t, "# Guide", testutil.ReadFile(t, filepath.Join(dst, "guide.md")))
	assert.False(t, utils.PathExists(filepath.Join(dst, "stale.md")))
}

func TestExtract_SymlinkedParentOutsideWorktree(t *testing.T) {
	scratch := newWorktree(t)
	cwd := testutil.TempDir(t)
	outside := testutil.TempDir(t)
	secret := testutil.WriteFile(t, outside, "id_ed25519", "private")
	require.NoError(t, os.Symlink(outside, filepath.Join(scratch, "link")))
	require.NoError(t, os.Symlink(filepath.Join(scratch, ".git"), filepath.Join(scratch, "meta")))

	for _, rel := range []string{"link/id_ed25519", "meta/config"} {
		t.Run(rel, func(t *testing.T) {
			_, err := source.Extract(scratch, rel, cwd, false)

			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}

	assert.Equal(t, "private", testutil.ReadFile(t, secret))
	assert.Equal(t, "[core]", testutil.ReadFile(t, filepath.Join(scratch, ".git", "config")))
	entries, err := os.ReadDir(cwd)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtract_SymlinkInsideWorktree(t *testing.T) {
	scratch := newWorktree(t)
	cwd := testutil.TempDir(t)
	require.NoError(t, os.Symlink("docs", filepath.Join(scratch, "manual")))
	require.NoError(t, os.Symlink("../README.md", filepath.Join(scratch, "docs", "readme-link.md")))

	t.Run("through a symlinked parent", func(t *testing.T) {
		dst, err := source.Extract(scratch, "manual/guide.md", cwd, false)

		require.NoError(t, err)
		assert.Equal(t, "# Guide", testutil.ReadFile(t, dst))
	})

	t.Run("symlink itself is moved as a symlink", func(t *testing.T) {
		dst, err := source.Extract(scratch, "docs/readme-link.md", cwd, false)

		require.NoError(t, err)
		target, err := os.Readlink(dst)
		require.NoError(t, err)
		assert.Equal(t, "../README.md", target)
	})
}

func TestExtract_NotFound(t *testing.T) {
	scratch := newWorktree(t)
	cwd := testutil.TempDir(t)
	outside := testutil.TempDir(t)
	testutil.WriteFile(t, outside, "secret.txt", "s")

	tests := []struct {
		name string
		path string
	}{
		{"missing", "docs/missing.md"},
		{"escapes worktree", "../" + filepath.Base(outside) + "/secret.txt"},
		{"git metadata", ".git/config"},
		{"git dir", ".git"},
		{"worktree root", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := source.Extract(scratch, tt.path, cwd, false)

			var extractErr *domain.ExtractError
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, domain.ExtractNotFound, extractErr.Kind)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}

	entries, err := os.ReadDir(cwd)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
