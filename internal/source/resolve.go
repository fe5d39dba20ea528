package source

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/quantmind-br/ghget/internal/domain"
)

// Resolve parses a forge tree/blob URL into a SourceReference. It performs no
// I/O.
func Resolve(input string) (*domain.SourceReference, error) {
	raw := strings.TrimSpace(input)

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &domain.ParseError{Kind: domain.ParseMalformed, Input: input, Err: err}
	}
	if u.Scheme == "" {
		return nil, &domain.ParseError{Kind: domain.ParseMalformed, Input: input, Reason: "relative URL without a scheme"}
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, &domain.ParseError{Kind: domain.ParseMissingHost, Input: input}
	}
	if strings.TrimPrefix(host, "www.") != domain.ForgeHost {
		return nil, &domain.ParseError{Kind: domain.ParseUnsupportedHost, Input: input, Host: u.Host}
	}

	segments, err := pathSegments(u)
	if err != nil {
		return nil, &domain.ParseError{Kind: domain.ParseMalformed, Input: input, Err: err}
	}

	if len(segments) < 3 {
		return nil, malformedPath(input, "expected /<owner>/<repo>/tree/<branch>/<path>")
	}

	kind := domain.Kind(segments[2])
	if kind != domain.KindTree && kind != domain.KindBlob {
		return nil, malformedPath(input, fmt.Sprintf("expected tree or blob in path, got %q", segments[2]))
	}

	if len(segments) < 4 {
		return nil, malformedPath(input, fmt.Sprintf("missing branch and path after %s", kind))
	}

	return &domain.SourceReference{
		RawURL:    raw,
		Host:      domain.ForgeHost,
		Owner:     segments[0],
		Repo:      strings.TrimSuffix(segments[1], ".git"),
		Kind:      kind,
		Remainder: segments[3:],
	}, nil
}

// pathSegments splits the URL path into decoded, non-empty segments.
// Splitting happens on the escaped path so an encoded "%2F" stays inside its
// segment.
func pathSegments(u *url.URL) ([]string, error) {
	var segments []string
	for _, part := range strings.Split(u.EscapedPath(), "/") {
		if part == "" {
			continue
		}
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, err
		}
		segments = append(segments, decoded)
	}
	return segments, nil
}

func malformedPath(input, reason string) *domain.ParseError {
	return &domain.ParseError{Kind: domain.ParseMalformedPath, Input: input, Reason: reason}
}
