package linkedin

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// ErrorTransient covers timeouts, connection resets, 5xx and 429
	// responses. Retried with backoff inside the client.
	ErrorTransient ErrorKind = "transient"
	// ErrorBlocked means the source detected automated access (challenge
	// page or authwall redirect). Never retried; terminal for the run.
	ErrorBlocked ErrorKind = "blocked"
	// ErrorPermanent covers other 4xx and malformed responses.
	ErrorPermanent ErrorKind = "permanent"
)

type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch failed (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func IsBlocked(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == ErrorBlocked
}

func IsTransient(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == ErrorTransient
}
