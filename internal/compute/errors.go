package compute

import "errors"

var (
	ErrMalformedInput  = errors.New("malformed kernel input")
	ErrMalformedResult = errors.New("malformed kernel result")
	ErrUnknownBackend  = errors.New("unknown compute backend")
	ErrUnavailable     = errors.New("compute backend not available")
)
