package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/utils"
)

// Extract moves scratchDir/relativePath into destDir under its base name and
// returns the new path. An existing entry at the destination is an error
// unless overwrite is set.
func Extract(scratchDir, relativePath, destDir string, overwrite bool) (string, error) {
	src := filepath.Join(scratchDir, filepath.FromSlash(relativePath))

	outside := &domain.ExtractError{
		Kind:   domain.ExtractNotFound,
		Source: relativePath,
		Err:    errors.New("path is outside the repository working tree"),
	}
	if !insideWorktree(scratchDir, src) {
		return "", outside
	}

	// Symlinked parents are resolved; the final component is moved as is.
	root, err := filepath.EvalSymlinks(scratchDir)
	if err != nil {
		return "", &domain.ExtractError{Kind: domain.ExtractNotFound, Source: relativePath, Err: err}
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(src))
	if err != nil {
		return "", &domain.ExtractError{Kind: domain.ExtractNotFound, Source: relativePath, Err: err}
	}
	src = filepath.Join(parent, filepath.Base(src))
	if !insideWorktree(root, src) {
		return "", outside
	}

	if _, err := os.Lstat(src); err != nil {
		return "", &domain.ExtractError{Kind: domain.ExtractNotFound, Source: relativePath, Err: err}
	}

	dst := filepath.Join(destDir, filepath.Base(src))

	if utils.PathExists(dst) {
		if !overwrite {
			return "", &domain.ExtractError{Kind: domain.ExtractDestCollision, Source: relativePath, Dest: dst}
		}
		if err := os.RemoveAll(dst); err != nil {
			return "", &domain.ExtractError{Kind: domain.ExtractMoveFailed, Source: relativePath, Dest: dst, Err: err}
		}
	}

	if err := utils.MoveEntry(src, dst); err != nil {
		return "", &domain.ExtractError{Kind: domain.ExtractMoveFailed, Source: relativePath, Dest: dst, Err: err}
	}

	return dst, nil
}

// insideWorktree rejects the clone root itself, anything escaping it and
// anything under .git.
func insideWorktree(root, path string) bool {
	if !utils.IsWithin(root, path) {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(root), path)
	if err != nil || rel == "." {
		return false
	}
	first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
	return first != ".git"
}
