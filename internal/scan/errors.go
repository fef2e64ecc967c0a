package scan

import (
	"errors"
	"fmt"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/fetch"
)

// ErrNoUsableHomepage is returned when every candidate homepage URL failed
var ErrNoUsableHomepage = errors.New("no candidate homepage could be fetched")

// Error is a scan-level failure whose Message is safe to surface to the
// caller verbatim
type Error struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying error for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// unreachableError builds a user-facing error for a domain whose candidate
// URLs were all exhausted, phrased by the kind of the last failure seen
func unreachableError(domain string, lastErr error) *Error {
	kind := fetch.KindGeneric

	var fetchErr *fetch.Error
	if errors.As(lastErr, &fetchErr) {
		kind = fetchErr.Kind
	}

	var message string

	switch kind {
	case fetch.KindDomainNotFound:
		message = fmt.Sprintf("Domain %q not found. Please check the domain name.", domain)
	case fetch.KindTimeout:
		message = fmt.Sprintf("Connection to %q timed out. The site may be slow or blocking requests.", domain)
	case fetch.KindConnectionRefused:
		message = fmt.Sprintf("Connection refused by %q. The site may be down or blocking requests.", domain)
	case fetch.KindForbidden:
		message = fmt.Sprintf("Access forbidden to %q. The site is blocking automated requests.", domain)
	case fetch.KindPageNotFound:
		message = fmt.Sprintf("Page not found on %q. Please check the URL.", domain)
	default:
		if lastErr != nil {
			message = fmt.Sprintf("Could not fetch %q: %v", domain, lastErr)
		} else {
			message = fmt.Sprintf("Could not fetch %q.", domain)
		}
	}

	if lastErr == nil {
		lastErr = ErrNoUsableHomepage
	}

	return &Error{Message: message, Err: lastErr}
}

// insufficientContentError builds a user-facing error for a reachable site
// whose pages yield no meaningful text
func insufficientContentError(domain string) *Error {
	return &Error{
		Message: fmt.Sprintf("Could not extract meaningful text content from %q. The site may require JavaScript to render content or is blocking automated access.", domain),
		Err:     ErrNoUsableHomepage,
	}
}
