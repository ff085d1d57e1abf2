package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrBackendUnavailable is the single kind every backend failure matches.
var ErrBackendUnavailable = errors.New("generation backend unavailable")

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

func (e *ErrRateLimit) Is(target error) bool { return target == ErrBackendUnavailable }

// ErrProviderUnavailable indicates the provider is down, unreachable, timed
// out or returned nothing usable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation backend unavailable: %v", e.Err)
	}
	return "generation backend unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

func (e *ErrProviderUnavailable) Is(target error) bool { return target == ErrBackendUnavailable }

// unavailable wraps any non-typed failure so callers only see one kind.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrBackendUnavailable) {
		return err
	}
	return &ErrProviderUnavailable{Err: err}
}
