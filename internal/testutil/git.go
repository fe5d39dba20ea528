package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// Branch describes the files committed on one branch of a test repository
type Branch struct {
	Name  string
	Files map[string]string
}

// SkipIfNoGit skips the test if git is not available. go-git serves local
// file:// remotes through the git-upload-pack binary.
func SkipIfNoGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git-upload-pack"); err == nil {
		return
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH, skipping")
	}
}

// NewRemoteRepo creates a repository usable as a clone source. Every branch
// after the first starts from the first branch's commit; the first branch is
// the default branch and HEAD.
func NewRemoteRepo(t *testing.T, branches ...Branch) string {
	t.Helper()
	require.NotEmpty(t, branches)

	dir := TempDir(t)
	defaultBranch := plumbing.NewBranchReferenceName(branches[0].Name)

	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: defaultBranch},
	})
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	var base plumbing.Hash
	for i, b := range branches {
		if i > 0 {
			require.NoError(t, wt.Checkout(&git.CheckoutOptions{
				Branch: plumbing.NewBranchReferenceName(b.Name),
				Hash:   base,
				Create: true,
			}))
		}

		for rel, content := range b.Files {
			WriteFile(t, dir, rel, content)
			_, err := wt.Add(rel)
			require.NoError(t, err)
		}

		hash, err := wt.Commit("commit on "+b.Name, &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Test Author",
				Email: "test@example.com",
				When:  time.Now(),
			},
			AllowEmptyCommits: true,
		})
		require.NoError(t, err)

		if i == 0 {
			base = hash
		}
	}

	if len(branches) > 1 {
		require.NoError(t, wt.Checkout(&git.CheckoutOptions{Branch: defaultBranch}))
	}

	return dir
}

// WriteSSHKey writes a fresh ed25519 private key in OpenSSH format to dir and
// returns its path. An empty passphrase writes an unencrypted key.
func WriteSSHKey(t *testing.T, dir, passphrase string) string {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var block *pem.Block
	if passphrase == "" {
		block, err = ssh.MarshalPrivateKey(priv, "ghget-test")
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, "ghget-test", []byte(passphrase))
	}
	require.NoError(t, err)

	path := filepath.Join(dir, "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

	return path
}
