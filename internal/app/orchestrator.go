package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/quantmind-br/ghget/internal/config"
	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/git"
	"github.com/quantmind-br/ghget/internal/source"
	"github.com/quantmind-br/ghget/internal/utils"
)

// Orchestrator runs the fetch pipeline for a single URL
type Orchestrator struct {
	config   *config.Config
	logger   *utils.Logger
	fetcher  *source.Fetcher
	auth     transport.AuthMethod
	endpoint func(*domain.SourceReference) string
	progress io.Writer
	force    bool
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	Logger *utils.Logger
	Client git.Client
	// Auth replaces the auth method built from the configured identity
	Auth transport.AuthMethod
	// Endpoint maps a reference to the URL actually dialed
	Endpoint func(*domain.SourceReference) string
	// ProgressOutput receives the clone spinner, stderr when nil
	ProgressOutput io.Writer
}

// Result describes a successful run
type Result struct {
	Path         string
	Branch       string
	RelativePath string
	Duration     time.Duration
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config

	// Validate config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logLevel := "info"
		logFormat := "pretty"
		if cfg.Logging.Level != "" {
			logLevel = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			logFormat = cfg.Logging.Format
		}
		if opts.Verbose {
			logLevel = "debug"
		}

		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  logFormat,
			Verbose: opts.Verbose,
		})
	}

	endpoint := opts.Endpoint
	if endpoint == nil {
		user := cfg.Identity.User
		endpoint = func(ref *domain.SourceReference) string {
			return ref.SSHURL(user)
		}
	}

	var progress io.Writer
	if !opts.Quiet && !cfg.Output.Quiet {
		progress = opts.ProgressOutput
		if progress == nil {
			progress = os.Stderr
		}
	}

	return &Orchestrator{
		config: cfg,
		logger: logger,
		fetcher: source.NewFetcher(source.FetcherOptions{
			Client: opts.Client,
			Logger: logger.WithComponent("fetcher"),
		}),
		auth:     opts.Auth,
		endpoint: endpoint,
		progress: progress,
		force:    opts.Force || cfg.Output.Overwrite,
	}, nil
}

// Run fetches the file or directory named by rawURL into the output directory
func (o *Orchestrator) Run(ctx context.Context, rawURL string) (*Result, error) {
	return o.run(ctx, rawURL, o.config.Output.Directory, o.force)
}

func (o *Orchestrator) run(ctx context.Context, rawURL, output string, force bool) (*Result, error) {
	startTime := time.Now()

	ref, err := source.Resolve(rawURL)
	if err != nil {
		return nil, err
	}

	logger := o.logger.WithRepo(ref.Owner + "/" + ref.Repo)
	logger.Info().
		Str("url", ref.RawURL).
		Str("kind", string(ref.Kind)).
		Str("ref", ref.Joined()).
		Msg("Resolved source reference")

	auth, err := o.authMethod()
	if err != nil {
		return nil, err
	}

	outputDir, err := filepath.Abs(utils.ExpandPath(output))
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	if err := utils.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	target := domain.CloneTarget{
		CloneURL:     ref.CloneURL(),
		TransportURL: o.endpoint(ref),
		ScratchDir:   utils.ExpandPath(o.config.Scratch.Directory),
	}

	timeout := o.config.Network.Timeout
	if timeout <= 0 {
		timeout = config.DefaultNetworkTimeout
	}
	netCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	branches, err := o.fetcher.ListBranches(netCtx, target, auth)
	if err != nil {
		return nil, o.cancelled(ctx, err)
	}

	loc, err := source.Disambiguate(ref.Remainder, branches)
	if err != nil {
		return nil, err
	}

	logger = logger.WithBranch(loc.Branch)
	logger.Info().Str("path", loc.RelativePath).Msg("Resolved branch and path")

	cleanup := source.DefaultCleanupOptions()
	cleanup.MaxRetries = o.config.Scratch.CleanupRetries

	scratch, err := source.AcquireScratch(ctx, target.ScratchDir, source.ScratchOptions{
		LockTimeout: o.config.Scratch.LockTimeout,
		Cleanup:     cleanup,
		Logger:      logger,
	})
	if err != nil {
		return nil, o.cancelled(ctx, err)
	}
	defer func() {
		if err := scratch.Release(ctx); err != nil {
			logger.Warn().Err(err).Str("dir", scratch.Dir()).Msg("Failed to remove scratch directory")
		}
	}()

	if err := scratch.Claim(); err != nil {
		return nil, err
	}

	repo, err := o.clone(netCtx, target, auth)
	if err != nil {
		return nil, o.cancelled(ctx, err)
	}

	if err := source.Checkout(repo, loc.Branch); err != nil {
		return nil, fmt.Errorf("checkout %s: %w", loc.Branch, err)
	}

	o.checkKind(logger, ref.Kind, filepath.Join(scratch.Dir(), filepath.FromSlash(loc.RelativePath)))

	path, err := source.Extract(scratch.Dir(), loc.RelativePath, outputDir, force)
	if err != nil {
		return nil, err
	}

	duration := time.Since(startTime)
	logger.Info().
		Str("dest", path).
		Dur("duration", duration).
		Msg("Fetch completed")

	return &Result{
		Path:         path,
		Branch:       loc.Branch,
		RelativePath: loc.RelativePath,
		Duration:     duration,
	}, nil
}

// authMethod returns the injected auth or one built from the configured identity
func (o *Orchestrator) authMethod() (transport.AuthMethod, error) {
	if o.auth != nil {
		return o.auth, nil
	}

	id := o.config.ResolveIdentity()
	auth, err := git.AuthFromIdentity(id)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchAuthFailed, URL: id.KeyPath, Err: err}
	}

	return auth, nil
}

func (o *Orchestrator) clone(ctx context.Context, target domain.CloneTarget, auth transport.AuthMethod) (*gogit.Repository, error) {
	if o.progress == nil {
		return o.fetcher.Fetch(ctx, target, auth, nil)
	}

	bar := utils.NewSpinner(o.progress, utils.DescCloning)
	defer func() { _ = bar.Finish() }()

	return o.fetcher.Fetch(ctx, target, auth, bar)
}

// checkKind warns when a blob URL names a directory or a tree URL a file
func (o *Orchestrator) checkKind(logger *utils.Logger, kind domain.Kind, path string) {
	info, err := os.Lstat(path)
	if err != nil {
		return
	}

	if kind == domain.KindBlob && info.IsDir() {
		logger.Warn().Str("path", path).Msg("Blob URL points to a directory")
	}
	if kind == domain.KindTree && !info.IsDir() {
		logger.Warn().Str("path", path).Msg("Tree URL points to a file")
	}
}

func (o *Orchestrator) cancelled(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		o.logger.Warn().Msg("Fetch cancelled")
	}
	return err
}
