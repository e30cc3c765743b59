package search

import (
	"errors"
	"net"
	"net/url"

	"github.com/runger/movie-explorer/internal/omdb"
)

// Kind classifies a failed lookup.
type Kind int

const (
	KindUnknown   Kind = iota // Anything not recognized below
	KindNotFound              // Provider answered Response "False"
	KindTransport             // HTTP status, network or payload failure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	DefaultNotFoundMessage  = "Movie not found."
	TransportFailureMessage = "Failed to fetch movies. Please check your connection."
	UnknownFailureMessage   = "Something went wrong while searching. Please try again."
)

// Error is a classified lookup failure. Message is what the user sees.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt could change the outcome.
// A provider "not found" answer is final.
func (e *Error) Retryable() bool {
	return e.Kind != KindNotFound
}

func notFoundError(providerMessage string) *Error {
	msg := Normalize(providerMessage)
	if msg == "" {
		msg = DefaultNotFoundMessage
	}
	return &Error{Kind: KindNotFound, Message: msg}
}

// Classify maps any lookup error onto the taxonomy. A nil error yields nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		return se
	}

	var statusErr *omdb.StatusError
	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.As(err, &statusErr),
		errors.Is(err, omdb.ErrMalformed),
		errors.As(err, &netErr),
		errors.As(err, &urlErr):
		return &Error{Kind: KindTransport, Message: TransportFailureMessage, Err: err}
	default:
		return &Error{Kind: KindUnknown, Message: UnknownFailureMessage, Err: err}
	}
}
