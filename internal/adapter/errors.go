package adapter

import "errors"

var (
	// ErrBadRequest is returned when the server rejects a request as
	// malformed.
	ErrBadRequest = errors.New("bad request")

	// ErrUnexpectedResponse is returned for any status or error code the
	// adapter has no mapping for, internal server errors included.
	ErrUnexpectedResponse = errors.New("unexpected server response")
)
