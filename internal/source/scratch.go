package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/utils"
)

// Scratch is an exclusively held scratch directory for one run.
//
// Exclusivity comes from an advisory lock on "<dir>.lock". Release only
// touches the directory if this run claimed it, and only removes the
// directory itself if the claim created it.
type Scratch struct {
	dir     string
	lock    *flock.Flock
	claimed bool
	created bool
	cleanup CleanupOptions
	logger  *utils.Logger
}

// ScratchOptions contains options for AcquireScratch
type ScratchOptions struct {
	LockTimeout time.Duration
	Cleanup     CleanupOptions
	Logger      *utils.Logger
}

// AcquireScratch locks dir for this process. It fails with a DestExists
// FetchError if another process holds the lock past opts.LockTimeout.
func AcquireScratch(ctx context.Context, dir string, opts ScratchOptions) (*Scratch, error) {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = time.Second
	}

	dir = filepath.Clean(dir)
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchDestExists, Dir: dir, Err: err}
	}

	fileLock := flock.New(dir + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, opts.LockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, 100*time.Millisecond)
	if ctxErr := ctx.Err(); ctxErr != nil {
		if locked {
			_ = fileLock.Unlock()
		}
		return nil, fmt.Errorf("waiting for scratch lock %s: %w", fileLock.Path(), ctxErr)
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, &domain.FetchError{Kind: domain.FetchDestExists, Dir: dir, Err: fmt.Errorf("failed to acquire lock: %w", err)}
	}
	if !locked {
		return nil, &domain.FetchError{
			Kind: domain.FetchDestExists,
			Dir:  dir,
			Err:  fmt.Errorf("locked by another run (timeout after %v)", opts.LockTimeout),
		}
	}

	logger.Debug().Str("dir", dir).Str("lock", fileLock.Path()).Msg("Scratch directory locked")

	return &Scratch{
		dir:     dir,
		lock:    fileLock,
		cleanup: opts.Cleanup,
		logger:  logger,
	}, nil
}

// Dir returns the scratch directory path
func (s *Scratch) Dir() string {
	return s.dir
}

// Claimed reports whether this run owns the directory contents
func (s *Scratch) Claimed() bool {
	return s.claimed
}

// Claim takes ownership of the directory for this run. The directory must be
// missing or empty; a leftover populated directory is never claimed, so
// Release will not delete data this run did not write.
func (s *Scratch) Claim() error {
	s.created = !utils.PathExists(s.dir)

	empty, err := utils.IsEmptyDir(s.dir)
	if err != nil {
		return &domain.FetchError{Kind: domain.FetchDestExists, Dir: s.dir, Err: err}
	}
	if !empty {
		return &domain.FetchError{
			Kind: domain.FetchDestExists,
			Dir:  s.dir,
			Err:  errors.New("directory is not empty, remove it or pass --scratch-dir"),
		}
	}

	s.claimed = true
	return nil
}

// Release cleans up a claimed directory and drops the lock. A directory the
// claim created is removed; one that already existed is emptied. The lock
// file itself is left in place for the next run.
func (s *Scratch) Release(ctx context.Context) error {
	var err error
	if s.claimed {
		if s.created {
			err = Cleanup(ctx, s.dir, s.cleanup)
		} else {
			err = s.empty(ctx)
		}
		if err == nil {
			s.claimed = false
		}
	}

	if unlockErr := s.lock.Unlock(); unlockErr != nil {
		s.logger.Debug().Err(unlockErr).Str("lock", s.lock.Path()).Msg("Failed to release scratch lock")
	}

	return err
}

// empty removes everything below the directory and keeps the directory.
func (s *Scratch) empty(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &domain.CleanupError{Dir: s.dir, Err: err}
	}

	for _, entry := range entries {
		if err := Cleanup(ctx, filepath.Join(s.dir, entry.Name()), s.cleanup); err != nil {
			return err
		}
	}
	return nil
}
