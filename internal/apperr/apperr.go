// Package apperr defines the classified errors returned by the link station
// finder. Each error carries the HTTP status the transport layer should use
// and a stable, user-facing message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error.
type Kind int

const (
	Internal Kind = iota
	InvalidRequest
	NoCandidates
	ConfigLoadFailure
	InsufficientData
	MalformedBody
	NotFound
)

var kindNames = map[Kind]string{
	Internal:          "internal",
	InvalidRequest:    "invalid_request",
	NoCandidates:      "no_candidates",
	ConfigLoadFailure: "config_load_failure",
	InsufficientData:  "insufficient_data",
	MalformedBody:     "malformed_body",
	NotFound:          "not_found",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified error. It implements huma.StatusError so huma
// serializes it as the response body unchanged.
type Error struct {
	Kind       Kind   `json:"-"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// GetStatus returns the HTTP status code.
func (e *Error) GetStatus() int { return e.StatusCode }

// New returns an error of the given kind and status.
func New(kind Kind, status int, msg string) *Error {
	return &Error{Kind: kind, Status: "error", StatusCode: status, Message: msg}
}

// Wrap is New with an underlying cause.
func Wrap(kind Kind, status int, msg string, err error) *Error {
	e := New(kind, status, msg)
	e.Err = err
	return e
}

// Invalid reports a request payload that failed shape validation.
func Invalid(msg string) *Error {
	return New(InvalidRequest, http.StatusNotFound, msg)
}

// NoCandidatesError is returned when selection runs over an empty station list.
func NoCandidatesError() *Error {
	return New(NoCandidates, http.StatusInternalServerError, "No link station candidates to evaluate")
}

// ConfigLoad reports an unreadable or unparsable static configuration source.
// The status mirrors a numeric code on the cause when one is available.
func ConfigLoad(err error) *Error {
	status := http.StatusBadRequest
	var coded interface{ Code() int }
	if errors.As(err, &coded) && coded.Code() >= 400 && coded.Code() < 600 {
		status = coded.Code()
	}
	msg := "Unable to load link station locations"
	if err != nil {
		msg = err.Error()
	}
	return Wrap(ConfigLoadFailure, status, msg, err)
}

// Insufficient is the legacy 422 response for missing device coordinates.
func Insufficient() *Error {
	return New(InsufficientData, http.StatusUnprocessableEntity, "No/insufficient data for device points")
}

// Malformed reports a body that could not be decoded at all.
func Malformed(err error) *Error {
	return Wrap(MalformedBody, http.StatusBadRequest, "Malformed request body", err)
}

// NotFoundError is returned for unrouted paths.
func NotFoundError() *Error {
	return New(NotFound, http.StatusNotFound, "Not Found")
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// From returns err as a classified error, wrapping unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(Internal, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err)
}

// FromStatus builds an error for a bare status and message, choosing the
// kind from the status class. It backs huma.NewError.
func FromStatus(status int, msg string, errs ...error) *Error {
	kind := Internal
	switch {
	case status == http.StatusNotFound:
		kind = NotFound
	case status == http.StatusUnprocessableEntity:
		kind = InsufficientData
	case status >= 400 && status < 500:
		kind = MalformedBody
	}
	var details []string
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	return New(kind, status, msg)
}
