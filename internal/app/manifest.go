package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quantmind-br/ghget/internal/manifest"
)

// ManifestResult represents the outcome of one manifest source
type ManifestResult struct {
	Source   manifest.Source
	Result   *Result
	Error    error
	Duration time.Duration
}

// RunManifest fetches every source of the manifest in order. Sources share
// the scratch directory, so they never run in parallel.
//
// Without continue_on_error the first failure stops the run and is
// returned. Otherwise every source is attempted and the failures are
// joined into the returned error.
func (o *Orchestrator) RunManifest(ctx context.Context, manifestCfg *manifest.Config) ([]ManifestResult, error) {
	startTime := time.Now()
	totalSources := len(manifestCfg.Sources)

	o.logger.Info().
		Int("sources", totalSources).
		Bool("continue_on_error", manifestCfg.Options.ContinueOnError).
		Str("output", manifestCfg.Options.Output).
		Msg("Starting manifest execution")

	results := make([]ManifestResult, 0, totalSources)
	var failures []error

	for idx, src := range manifestCfg.Sources {
		if err := ctx.Err(); err != nil {
			o.logger.Warn().Msg("Manifest execution cancelled")
			return results, err
		}

		o.logger.Info().
			Int("source_idx", idx).
			Str("source_url", src.URL).
			Int("total", totalSources).
			Msg("Processing source")

		sourceStart := time.Now()
		output := manifestCfg.OutputFor(src, o.config.Output.Directory)
		res, err := o.run(ctx, src.URL, output, manifestCfg.ForceFor(src, o.force))
		sourceDuration := time.Since(sourceStart)

		results = append(results, ManifestResult{
			Source:   src,
			Result:   res,
			Error:    err,
			Duration: sourceDuration,
		})

		if err != nil {
			o.logger.Error().
				Err(err).
				Int("source_idx", idx).
				Str("source_url", src.URL).
				Dur("duration", sourceDuration).
				Msg("Source fetch failed")

			wrapped := fmt.Errorf("source %s failed: %w", src.URL, err)
			if !manifestCfg.Options.ContinueOnError {
				o.logger.Warn().Msg("Stopping execution (continue_on_error=false)")
				return results, wrapped
			}
			failures = append(failures, wrapped)
			continue
		}

		o.logger.Info().
			Int("source_idx", idx).
			Str("source_url", src.URL).
			Str("dest", res.Path).
			Dur("duration", sourceDuration).
			Msg("Source fetch completed")
	}

	o.logger.Info().
		Dur("total_duration", time.Since(startTime)).
		Int("total", totalSources).
		Int("success", totalSources-len(failures)).
		Int("failed", len(failures)).
		Msg("Manifest execution completed")

	if len(failures) > 0 {
		return results, fmt.Errorf("%d of %d sources failed: %w", len(failures), totalSources, errors.Join(failures...))
	}
	return results, nil
}
