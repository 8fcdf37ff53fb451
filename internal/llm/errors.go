package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrUnavailable indicates the upstream service could not serve the call:
// network failure, 5xx, or a provider that was never configured with a key.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream unavailable: %v", e.Err)
	}
	return "upstream unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrRateLimited indicates a 429 from the upstream.
type ErrRateLimited struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimited) Unwrap() error { return e.Err }

// ErrBadOutput indicates the model produced content that violates the
// schema it was asked to follow.
type ErrBadOutput struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrBadOutput) Error() string {
	return fmt.Sprintf("model output violates requested schema: %v", e.Err)
}

func (e *ErrBadOutput) Unwrap() error { return e.Err }

// ErrTruncated indicates the output was cut off at the MaxTokens limit.
type ErrTruncated struct {
	Content json.RawMessage
}

func (e *ErrTruncated) Error() string {
	return "model output truncated at max tokens"
}
