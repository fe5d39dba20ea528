package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/source"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		owner     string
		repo      string
		kind      domain.Kind
		remainder []string
	}{
		{
			name:      "tree url",
			url:       "https://github.com/acme/widgets/tree/main/docs",
			owner:     "acme",
			repo:      "widgets",
			kind:      domain.KindTree,
			remainder: []string{"main", "docs"},
		},
		{
			name:      "blob url with slashed branch",
			url:       "https://github.com/acme/widgets/blob/release/1.0/src/app.go",
			owner:     "acme",
			repo:      "widgets",
			kind:      domain.KindBlob,
			remainder: []string{"release", "1.0", "src", "app.go"},
		},
		{
			name:      "trailing and doubled slashes",
			url:       "https://github.com/acme//widgets/tree/main/docs/",
			owner:     "acme",
			repo:      "widgets",
			kind:      domain.KindTree,
			remainder: []string{"main", "docs"},
		},
		{
			name:      "percent encoded segment",
			url:       "https://github.com/acme/widgets/tree/main/my%20dir",
			owner:     "acme",
			repo:      "widgets",
			kind:      domain.KindTree,
			remainder: []string{"main", "my dir"},
		},
		{
			name:      "www host and git suffix",
			url:       "https://www.GitHub.com/acme/widgets.git/tree/main/docs",
			owner:     "acme",
			repo:      "widgets",
			kind:      domain.KindTree,
			remainder: []string{"main", "docs"},
		},
		{
			name:      "query and fragment ignored",
			url:       "https://github.com/acme/widgets/blob/main/README.md?plain=1#L3",
			owner:     "acme",
			repo:      "widgets",
			kind:      domain.KindBlob,
			remainder: []string{"main", "README.md"},
		},
		{
			name:      "surrounding whitespace",
			url:       "  https://github.com/acme/widgets/tree/main/docs\n",
			owner:     "acme",
			repo:      "widgets",
			kind:      domain.KindTree,
			remainder: []string{"main", "docs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := source.Resolve(tt.url)

			require.NoError(t, err)
			assert.Equal(t, domain.ForgeHost, ref.Host)
			assert.Equal(t, tt.owner, ref.Owner)
			assert.Equal(t, tt.repo, ref.Repo)
			assert.Equal(t, tt.kind, ref.Kind)
			assert.Equal(t, tt.remainder, ref.Remainder)
			assert.NotEmpty(t, ref.Remainder)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		kind     domain.ParseErrorKind
		sentinel error
	}{
		{"not a url", "not a url", domain.ParseMalformed, domain.ErrMalformedURL},
		{"bad port", "https://github.com:port/acme/widgets/tree/main/x", domain.ParseMalformed, domain.ErrMalformedURL},
		{"scheme only", "https://", domain.ParseMissingHost, domain.ErrUnsupportedHost},
		{"file url", "file:///tmp/acme/widgets/tree/main/x", domain.ParseMissingHost, domain.ErrUnsupportedHost},
		{"other forge", "https://gitlab.com/acme/widgets/tree/main/docs", domain.ParseUnsupportedHost, domain.ErrUnsupportedHost},
		{"lookalike host", "https://github.com.evil.io/acme/widgets/tree/main/docs", domain.ParseUnsupportedHost, domain.ErrUnsupportedHost},
		{"repo root", "https://github.com/acme/widgets", domain.ParseMalformedPath, domain.ErrMalformedPath},
		{"commits view", "https://github.com/acme/widgets/commits/main/docs", domain.ParseMalformedPath, domain.ErrMalformedPath},
		{"tree without branch", "https://github.com/acme/widgets/tree", domain.ParseMalformedPath, domain.ErrMalformedPath},
		{"tree with trailing slash only", "https://github.com/acme/widgets/tree/", domain.ParseMalformedPath, domain.ErrMalformedPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := source.Resolve(tt.url)

			assert.Nil(t, ref)
			var parseErr *domain.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.kind, parseErr.Kind)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestResolve_UnsupportedHostMessage(t *testing.T) {
	_, err := source.Resolve("https://gitlab.com/acme/widgets/tree/main/docs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown domain "gitlab.com"`)
}

func TestResolve_Deterministic(t *testing.T) {
	const url = "https://github.com/acme/widgets/tree/feature/x/docs/guide"

	first, err := source.Resolve(url)
	require.NoError(t, err)
	second, err := source.Resolve(url)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
