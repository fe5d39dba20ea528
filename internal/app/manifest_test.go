package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/git/mocks"
	"github.com/quantmind-br/ghget/internal/manifest"
	"github.com/quantmind-br/ghget/internal/testutil"
	"github.com/quantmind-br/ghget/internal/utils"
)

func TestOrchestrator_RunManifest(t *testing.T) {
	testutil.SkipIfNoGit(t)

	remote := testutil.NewRemoteRepo(t,
		testutil.Branch{Name: "main", Files: map[string]string{
			"docs/guide.md": "# Guide",
			"README.md":     "# main",
		}},
	)
	endpoint := func(*domain.SourceReference) string { return remote }

	sources := func(other string) []manifest.Source {
		return []manifest.Source{
			{URL: "https://github.com/acme/widgets/tree/main/nope"},
			{URL: "https://github.com/acme/widgets/tree/main/docs"},
			{URL: "https://github.com/acme/widgets/blob/main/README.md", Output: other},
		}
	}

	t.Run("continue on error", func(t *testing.T) {
		cfg := newTestConfig(t)
		other := filepath.Join(testutil.TempDir(t), "other")
		orch := newTestOrchestrator(t, OrchestratorOptions{Config: cfg, Endpoint: endpoint})

		results, err := orch.RunManifest(context.Background(), &manifest.Config{
			Sources: sources(other),
			Options: manifest.Options{ContinueOnError: true},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "1 of 3 sources failed")
		require.Len(t, results, 3)

		assert.Error(t, results[0].Error)
		assert.Nil(t, results[0].Result)

		require.NoError(t, results[1].Error)
		assert.Equal(t, "# Guide", testutil.ReadFile(t, filepath.Join(cfg.Output.Directory, "docs", "guide.md")))

		require.NoError(t, results[2].Error)
		assert.Equal(t, filepath.Join(other, "README.md"), results[2].Result.Path)
		assert.Equal(t, "# main", testutil.ReadFile(t, results[2].Result.Path))

		assert.False(t, utils.PathExists(cfg.Scratch.Directory))
	})

	t.Run("stop on first error", func(t *testing.T) {
		cfg := newTestConfig(t)
		orch := newTestOrchestrator(t, OrchestratorOptions{Config: cfg, Endpoint: endpoint})

		results, err := orch.RunManifest(context.Background(), &manifest.Config{
			Sources: sources(filepath.Join(testutil.TempDir(t), "other")),
		})

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "source https://github.com/acme/widgets/tree/main/nope failed")
		assert.Len(t, results, 1)
		assert.False(t, utils.PathExists(filepath.Join(cfg.Output.Directory, "docs")))
	})

	t.Run("per source force", func(t *testing.T) {
		cfg := newTestConfig(t)
		testutil.WriteFile(t, cfg.Output.Directory, "docs/mine.md", "mine")
		force := true
		orch := newTestOrchestrator(t, OrchestratorOptions{Config: cfg, Endpoint: endpoint})

		results, err := orch.RunManifest(context.Background(), &manifest.Config{
			Sources: []manifest.Source{{URL: "https://github.com/acme/widgets/tree/main/docs", Force: &force}},
		})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, utils.PathExists(filepath.Join(cfg.Output.Directory, "docs", "mine.md")))
		assert.Equal(t, "# Guide", testutil.ReadFile(t, filepath.Join(cfg.Output.Directory, "docs", "guide.md")))
	})
}

func TestOrchestrator_RunManifest_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	cfg := newTestConfig(t)
	orch := newTestOrchestrator(t, OrchestratorOptions{Config: cfg, Client: client})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := orch.RunManifest(ctx, &manifest.Config{
		Sources: []manifest.Source{{URL: "https://github.com/acme/widgets/tree/main/docs"}},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
