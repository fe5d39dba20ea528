package source

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/utils"
)

// CleanupOptions controls how hard Cleanup tries to remove a directory
type CleanupOptions struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultCleanupOptions returns default cleanup options
func DefaultCleanupOptions() CleanupOptions {
	return CleanupOptions{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

func (o CleanupOptions) newBackoff() backoff.BackOff {
	if o.InitialInterval <= 0 {
		o.InitialInterval = 100 * time.Millisecond
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = 2 * time.Second
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.InitialInterval
	b.MaxInterval = o.MaxInterval
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5
	b.Reset()

	return backoff.WithMaxRetries(b, uint64(o.MaxRetries))
}

// Cleanup recursively removes dir, retrying transient failures. A missing dir
// is not an error. Cancellation of ctx does not prevent the first attempt.
func Cleanup(ctx context.Context, dir string, opts CleanupOptions) error {
	b := backoff.WithContext(opts.newBackoff(), context.WithoutCancel(ctx))

	err := backoff.Retry(func() error {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
		if utils.PathExists(dir) {
			return errors.New("directory still present after removal")
		}
		return nil
	}, b)
	if err != nil {
		return &domain.CleanupError{Dir: dir, Err: err}
	}

	return nil
}
