package source

import (
	"context"
	"errors"
	"io"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/git"
	"github.com/quantmind-br/ghget/internal/utils"
)

// Fetcher talks to the remote: branch listing and full clones
type Fetcher struct {
	client git.Client
	logger *utils.Logger
}

// FetcherOptions contains options for creating a Fetcher
type FetcherOptions struct {
	Client git.Client
	Logger *utils.Logger
}

// NewFetcher creates a new Fetcher
func NewFetcher(opts FetcherOptions) *Fetcher {
	client := opts.Client
	if client == nil {
		client = git.NewClient()
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Fetcher{client: client, logger: logger}
}

// ListBranches returns the branch names advertised by the target's remote
func (f *Fetcher) ListBranches(ctx context.Context, target domain.CloneTarget, auth transport.AuthMethod) ([]string, error) {
	f.logger.Debug().Str("url", target.TransportURL).Msg("Listing remote branches")

	branches, err := f.client.ListBranches(ctx, target.TransportURL, auth)
	if err != nil {
		return nil, git.ClassifyError(target.TransportURL, err)
	}

	f.logger.Debug().Int("count", len(branches)).Msg("Remote branches listed")
	return branches, nil
}

// Fetch clones the full repository into target.ScratchDir. The directory must
// be missing or empty. Clone progress goes to progress when it is non-nil.
func (f *Fetcher) Fetch(ctx context.Context, target domain.CloneTarget, auth transport.AuthMethod, progress io.Writer) (*gogit.Repository, error) {
	empty, err := utils.IsEmptyDir(target.ScratchDir)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchDestExists, URL: target.CloneURL, Dir: target.ScratchDir, Err: err}
	}
	if !empty {
		return nil, &domain.FetchError{
			Kind: domain.FetchDestExists,
			URL:  target.CloneURL,
			Dir:  target.ScratchDir,
			Err:  errors.New("directory is not empty, remove it or pass --scratch-dir"),
		}
	}

	f.logger.Info().Str("url", target.CloneURL).Msg("Cloning repository")

	cloneOpts := &gogit.CloneOptions{
		URL:        target.TransportURL,
		Auth:       auth,
		RemoteName: gogit.DefaultRemoteName,
		Progress:   progress,
	}

	repo, err := f.client.PlainCloneContext(ctx, target.ScratchDir, false, cloneOpts)
	if err != nil {
		return nil, git.ClassifyError(target.TransportURL, err)
	}

	if head, err := repo.Head(); err == nil {
		f.logger.Debug().
			Str("head", head.Name().Short()).
			Str("commit", head.Hash().String()).
			Msg("Clone complete")
	}

	return repo, nil
}
