package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNetwork indicates a (simulated) network failure while talking to the
// transaction store. Surfaced as a generic failure message; the caller
// retries manually, there is no automatic retry.
var ErrNetwork = errors.New("network error")
