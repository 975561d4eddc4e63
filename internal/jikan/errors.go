package jikan

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("jikan: not found")
	// ErrRateLimited is returned when the upstream rejects the request with 429.
	ErrRateLimited = errors.New("jikan: rate limited")
	// ErrUpstream is returned for 5xx responses.
	ErrUpstream = errors.New("jikan: upstream unavailable")
)

// APIError is a non-2xx response. It unwraps to one of the sentinel errors
// when the status maps to one.
type APIError struct {
	Status  int    `json:"status"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Path    string `json:"-"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("jikan: %s: %d %s", e.Path, e.Status, msg)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.Status >= 500:
		return ErrUpstream
	default:
		return nil
	}
}
