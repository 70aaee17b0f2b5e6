package domain

import "errors"

var (
	ErrInvalidInput = errors.New("no query provided")
	ErrNoChoices    = errors.New("no choices in completion response")
	ErrMissingKey   = errors.New("provider API key is not set")
)

// ProviderError is returned for any failure of the completion provider call.
// Its message is relayed to the caller unchanged.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }
