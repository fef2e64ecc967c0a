package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrInvalidBody is returned when a 200-class response carries a body too
// short or non-textual to be a usable page.
var ErrInvalidBody = errors.New("invalid or empty response body")

// Kind classifies a fetch failure. Resolvers recover from any kind by
// advancing to the next candidate URL; the orchestrator maps the last kind
// observed to a user-facing message.
type Kind string

const (
	// KindDomainNotFound marks a DNS resolution failure
	KindDomainNotFound Kind = "domain_not_found"
	// KindTimeout marks a connect or response timeout
	KindTimeout Kind = "timeout"
	// KindConnectionRefused marks a refused TCP connection
	KindConnectionRefused Kind = "connection_refused"
	// KindForbidden marks a 403 response
	KindForbidden Kind = "forbidden"
	// KindPageNotFound marks a 404 response
	KindPageNotFound Kind = "page_not_found"
	// KindGeneric marks any other failure, including 5xx and invalid bodies
	KindGeneric Kind = "generic"
)

// Error is a classified per-URL fetch failure. StatusCode is retained for
// soft (4xx) failures.
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: HTTP %d (%s)", e.URL, e.StatusCode, e.Kind)
	}

	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v (%s)", e.URL, e.Err, e.Kind)
	}

	return fmt.Sprintf("fetch %s failed (%s)", e.URL, e.Kind)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// classify maps a transport-level error to a Kind. Typed checks run first;
// string matching covers errors that libraries flatten into messages.
func classify(err error) Kind {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDomainNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindConnectionRefused
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "no such host"):
		return KindDomainNotFound
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return KindTimeout
	case strings.Contains(msg, "connection refused"):
		return KindConnectionRefused
	default:
		return KindGeneric
	}
}
