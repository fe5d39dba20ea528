package git

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

//go:generate mockgen -destination=mocks/client_mock.go -package=mocks github.com/quantmind-br/ghget/internal/git Client

// Client defines the interface for Git operations
type Client interface {
	PlainCloneContext(ctx context.Context, path string, isBare bool, o *git.CloneOptions) (*git.Repository, error)
	// ListBranches returns the short names of the branches advertised by the remote at url
	ListBranches(ctx context.Context, url string, auth transport.AuthMethod) ([]string, error)
}
