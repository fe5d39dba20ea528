package git

import (
	"context"
	"errors"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/quantmind-br/ghget/internal/domain"
)

// sshAuthMessages are fragments of golang.org/x/crypto/ssh handshake errors
// that mean the server rejected our key.
var sshAuthMessages = []string{
	"unable to authenticate",
	"no supported methods remain",
	"permission denied (publickey)",
}

// ClassifyError maps a go-git transport error to a domain.FetchError.
// A nil err yields nil.
func ClassifyError(url string, err error) error {
	if err == nil {
		return nil
	}

	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		return err
	}

	if IsAuthError(err) {
		return domain.NewFetchError(domain.FetchAuthFailed, url, err)
	}
	return domain.NewFetchError(domain.FetchNetwork, url, err)
}

// IsAuthError reports whether err means the credentials were missing or rejected
func IsAuthError(err error) bool {
	if errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range sshAuthMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
