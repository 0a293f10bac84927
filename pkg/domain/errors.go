package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")

	// ErrMissingCredential marks a provider call attempted without an API key.
	// Together with ErrQuotaExceeded it is the only failure class that moves
	// the dispatcher on to the fallback provider.
	ErrMissingCredential = errors.New("missing provider credential")
	ErrQuotaExceeded     = errors.New("provider quota exceeded")
)
