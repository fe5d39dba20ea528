package source

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/quantmind-br/ghget/internal/domain"
)

// Checkout moves the working tree of repo onto branch.
//
// The branch is looked up as a remote-tracking ref first. A local branch is
// pointed at it so HEAD ends up attached, matching `git checkout <branch>`.
// Anything else that resolves as a revision is checked out detached.
func Checkout(repo *gogit.Repository, branch string) error {
	wt, err := repo.Worktree()
	if err != nil {
		return &domain.CheckoutError{Kind: domain.CheckoutDirtyOrLocked, Branch: branch, Err: err}
	}

	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName(gogit.DefaultRemoteName, branch), true)
	if err != nil {
		hash, revErr := repo.ResolveRevision(plumbing.Revision(branch))
		if revErr != nil {
			return &domain.CheckoutError{
				Kind:   domain.CheckoutRefNotFound,
				Branch: branch,
				Err:    fmt.Errorf("remote branch: %w; revision: %w", err, revErr),
			}
		}
		if err := wt.Checkout(&gogit.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
			return &domain.CheckoutError{Kind: domain.CheckoutDirtyOrLocked, Branch: branch, Err: err}
		}
		return nil
	}

	local := plumbing.NewBranchReferenceName(branch)
	if err := repo.Storer.SetReference(plumbing.NewHashReference(local, remoteRef.Hash())); err != nil {
		return &domain.CheckoutError{Kind: domain.CheckoutDirtyOrLocked, Branch: branch, Err: err}
	}

	if err := wt.Checkout(&gogit.CheckoutOptions{Branch: local, Force: true}); err != nil {
		return &domain.CheckoutError{Kind: domain.CheckoutDirtyOrLocked, Branch: branch, Err: err}
	}

	return nil
}
