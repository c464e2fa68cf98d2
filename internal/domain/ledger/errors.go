package ledger

import "errors"

// ErrInvalidInput is the only failure class of the ledger: a missing or
// malformed field on write.
var ErrInvalidInput = errors.New("invalid input")
