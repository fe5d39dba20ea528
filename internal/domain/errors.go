package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrMalformedURL indicates the input is not a valid absolute URI
	ErrMalformedURL = errors.New("malformed URL")

	// ErrUnsupportedHost indicates the URL has no host or a host other than the forge
	ErrUnsupportedHost = errors.New("unsupported host")

	// ErrMalformedPath indicates the URL path is not owner/repo/(tree|blob)/...
	ErrMalformedPath = errors.New("malformed path")

	// ErrAuthFailed indicates the SSH identity could not be loaded or was rejected
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNetwork indicates a transport or connectivity failure
	ErrNetwork = errors.New("network error")

	// ErrDestExists indicates the scratch directory is already in use
	ErrDestExists = errors.New("scratch directory already exists")

	// ErrNoBranchMatch indicates no remote branch is a prefix of the URL path
	ErrNoBranchMatch = errors.New("no matching branch")

	// ErrAmbiguousBranch indicates two branches match the URL path equally well
	ErrAmbiguousBranch = errors.New("ambiguous branch")

	// ErrEmptyPath indicates the branch consumed the whole URL path
	ErrEmptyPath = errors.New("empty path")

	// ErrRefNotFound indicates the branch could not be resolved in the clone
	ErrRefNotFound = errors.New("reference not found")

	// ErrWorktree indicates the working tree could not be updated
	ErrWorktree = errors.New("worktree update failed")

	// ErrNotFound indicates the requested path does not exist after checkout
	ErrNotFound = errors.New("not found")

	// ErrDestCollision indicates the destination entry already exists
	ErrDestCollision = errors.New("destination already exists")

	// ErrCleanup indicates the scratch directory could not be removed
	ErrCleanup = errors.New("cleanup failed")
)

// ParseErrorKind classifies a ParseError
type ParseErrorKind int

const (
	ParseMalformed ParseErrorKind = iota
	ParseMissingHost
	ParseUnsupportedHost
	ParseMalformedPath
)

// ParseError represents a failure to interpret the input URL
type ParseError struct {
	Kind   ParseErrorKind
	Input  string
	Host   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseMissingHost:
		return fmt.Sprintf("no domain in url %q", e.Input)
	case ParseUnsupportedHost:
		return fmt.Sprintf("unknown domain %q in url %q", e.Host, e.Input)
	case ParseMalformedPath:
		return fmt.Sprintf("malformed url %q: %s", e.Input, e.Reason)
	default:
		if e.Err != nil {
			return fmt.Sprintf("could not parse url %q: %v", e.Input, e.Err)
		}
		return fmt.Sprintf("could not parse url %q: %s", e.Input, e.Reason)
	}
}

func (e *ParseError) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case ParseMissingHost, ParseUnsupportedHost:
		sentinel = ErrUnsupportedHost
	case ParseMalformedPath:
		sentinel = ErrMalformedPath
	default:
		sentinel = ErrMalformedURL
	}
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}

// FetchErrorKind classifies a FetchError
type FetchErrorKind int

const (
	FetchNetwork FetchErrorKind = iota
	FetchAuthFailed
	FetchDestExists
)

// FetchError represents an error while talking to the remote or preparing the clone
type FetchError struct {
	Kind FetchErrorKind
	URL  string
	Dir  string
	Err  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchAuthFailed:
		return fmt.Sprintf("authentication failed for %s: %v", e.URL, e.Err)
	case FetchDestExists:
		return fmt.Sprintf("scratch directory %s is in use: %v", e.Dir, e.Err)
	default:
		return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case FetchAuthFailed:
		sentinel = ErrAuthFailed
	case FetchDestExists:
		sentinel = ErrDestExists
	default:
		sentinel = ErrNetwork
	}
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}

// NewFetchError creates a new FetchError
func NewFetchError(kind FetchErrorKind, url string, err error) *FetchError {
	return &FetchError{
		Kind: kind,
		URL:  url,
		Err:  err,
	}
}

// ResolutionErrorKind classifies a ResolutionError
type ResolutionErrorKind int

const (
	ResolutionNoBranchMatch ResolutionErrorKind = iota
	ResolutionAmbiguous
	ResolutionEmptyPath
)

// ResolutionError represents a failure to split the URL path into branch and path
type ResolutionError struct {
	Kind       ResolutionErrorKind
	Remainder  string
	Candidates []string
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case ResolutionAmbiguous:
		return fmt.Sprintf("could not determine branch for %q: ambiguous between %s",
			e.Remainder, strings.Join(e.Candidates, ", "))
	case ResolutionEmptyPath:
		return fmt.Sprintf("nothing to extract: %q names branch %s without a path",
			e.Remainder, strings.Join(e.Candidates, ""))
	default:
		return fmt.Sprintf("could not determine branch for %q", e.Remainder)
	}
}

func (e *ResolutionError) Unwrap() error {
	switch e.Kind {
	case ResolutionAmbiguous:
		return ErrAmbiguousBranch
	case ResolutionEmptyPath:
		return ErrEmptyPath
	default:
		return ErrNoBranchMatch
	}
}

// CheckoutErrorKind classifies a CheckoutError
type CheckoutErrorKind int

const (
	CheckoutRefNotFound CheckoutErrorKind = iota
	CheckoutDirtyOrLocked
)

// CheckoutError represents a failure to move the clone onto the resolved branch
type CheckoutError struct {
	Kind   CheckoutErrorKind
	Branch string
	Err    error
}

func (e *CheckoutError) Error() string {
	if e.Kind == CheckoutRefNotFound {
		return fmt.Sprintf("branch %s not found in clone: %v", e.Branch, e.Err)
	}
	return fmt.Sprintf("failed to checkout %s: %v", e.Branch, e.Err)
}

func (e *CheckoutError) Unwrap() []error {
	sentinel := ErrWorktree
	if e.Kind == CheckoutRefNotFound {
		sentinel = ErrRefNotFound
	}
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}

// ExtractErrorKind classifies an ExtractError
type ExtractErrorKind int

const (
	ExtractNotFound ExtractErrorKind = iota
	ExtractDestCollision
	ExtractMoveFailed
)

// ExtractError represents a failure to move the requested entry out of the clone
type ExtractError struct {
	Kind   ExtractErrorKind
	Source string
	Dest   string
	Err    error
}

func (e *ExtractError) Error() string {
	switch e.Kind {
	case ExtractNotFound:
		return fmt.Sprintf("path %s not found in repository", e.Source)
	case ExtractDestCollision:
		return fmt.Sprintf("refusing to overwrite existing %s", e.Dest)
	default:
		return fmt.Sprintf("failed to move %s to %s: %v", e.Source, e.Dest, e.Err)
	}
}

func (e *ExtractError) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case ExtractNotFound:
		sentinel = ErrNotFound
	case ExtractDestCollision:
		sentinel = ErrDestCollision
	}
	var errs []error
	if sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// CleanupError represents a failure to remove the scratch directory
type CleanupError struct {
	Dir string
	Err error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("remove scratch dir %s: %v", e.Dir, e.Err)
}

func (e *CleanupError) Unwrap() []error {
	return []error{ErrCleanup, e.Err}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
