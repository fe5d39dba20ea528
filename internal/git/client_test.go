package git_test

import (
	"context"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/ghget/internal/git"
	"github.com/quantmind-br/ghget/internal/testutil"
)

func TestRealClient_ListBranches(t *testing.T) {
	testutil.SkipIfNoGit(t)

	remote := testutil.NewRemoteRepo(t,
		testutil.Branch{Name: "main", Files: map[string]string{"README.md": "# main"}},
		testutil.Branch{Name: "release/1.0", Files: map[string]string{"src/app.go": "package app"}},
		testutil.Branch{Name: "feature-x", Files: map[string]string{"readme.md": "x"}},
	)

	branches, err := git.NewClient().ListBranches(context.Background(), remote, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"feature-x", "main", "release/1.0"}, branches)
}

func TestRealClient_ListBranches_MissingRemote(t *testing.T) {
	testutil.SkipIfNoGit(t)

	_, err := git.NewClient().ListBranches(context.Background(), filepath.Join(t.TempDir(), "absent"), nil)

	assert.Error(t, err)
}

func TestRealClient_PlainCloneContext(t *testing.T) {
	testutil.SkipIfNoGit(t)

	remote := testutil.NewRemoteRepo(t, testutil.Branch{Name: "main", Files: map[string]string{"docs/guide.md": "# Guide"}})
	dest := filepath.Join(t.TempDir(), "clone")

	repo, err := git.NewClient().PlainCloneContext(context.Background(), dest, false, &gogit.CloneOptions{URL: remote})

	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, "main", head.Name().Short())
	assert.Equal(t, "# Guide", testutil.ReadFile(t, filepath.Join(dest, "docs", "guide.md")))
}
