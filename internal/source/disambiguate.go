package source

import (
	"sort"
	"strings"

	"github.com/quantmind-br/ghget/internal/domain"
)

// Disambiguate splits remainder into a branch name and a repo-relative path.
//
// A branch matches when it equals the joined remainder or is a prefix of it
// ending on a segment boundary. The longest match wins; the part after it is
// the path and must not be empty.
func Disambiguate(remainder []string, branches []string) (*domain.ResolvedLocation, error) {
	joined := strings.Join(remainder, "/")

	var best []string
	bestLen := -1
	seen := make(map[string]struct{}, len(branches))

	for _, b := range branches {
		if b == "" {
			continue
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}

		if joined != b && !strings.HasPrefix(joined, b+"/") {
			continue
		}

		switch {
		case len(b) > bestLen:
			best = []string{b}
			bestLen = len(b)
		case len(b) == bestLen:
			best = append(best, b)
		}
	}

	if len(best) == 0 {
		return nil, &domain.ResolutionError{Kind: domain.ResolutionNoBranchMatch, Remainder: joined}
	}
	if len(best) > 1 {
		sort.Strings(best)
		return nil, &domain.ResolutionError{Kind: domain.ResolutionAmbiguous, Remainder: joined, Candidates: best}
	}

	branch := best[0]
	rel := strings.TrimPrefix(strings.TrimPrefix(joined, branch), "/")
	if rel == "" {
		return nil, &domain.ResolutionError{Kind: domain.ResolutionEmptyPath, Remainder: joined, Candidates: best}
	}

	return &domain.ResolvedLocation{Branch: branch, RelativePath: rel}, nil
}
