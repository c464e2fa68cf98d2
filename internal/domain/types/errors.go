package types

import "errors"

// Failure kinds the service reports to its callers.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or player id")
	ErrNotStarted         = errors.New("service not started")
)

type taggedError struct {
	kind error
	err  error
}

func (e *taggedError) Error() string   { return e.err.Error() }
func (e *taggedError) Unwrap() []error { return []error{e.kind, e.err} }

// Tag marks err with kind. The message stays err's own.
func Tag(kind, err error) error {
	if err == nil {
		return nil
	}
	return &taggedError{kind: kind, err: err}
}
