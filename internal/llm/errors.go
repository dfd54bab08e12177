package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrRateLimit means the provider answered 429. RetryAfter is the server's
// hint when one was sent, zero otherwise.
type ErrRateLimit struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	msg := "rate limited"
	if e.Provider != "" {
		msg = e.Provider + " " + msg
	}
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model answered but the content is unusable:
// empty, not JSON, or not matching the question schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx answers and transport failures.
type ErrProviderUnavailable struct {
	Provider string
	Status   int
	Err      error
}

func (e *ErrProviderUnavailable) Error() string {
	name := "LLM provider"
	if e.Provider != "" {
		name = e.Provider
	}
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s unavailable (status %d): %v", name, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s unavailable: %v", name, e.Err)
	}
	return name + " unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRequestRejected means the provider refused the request itself: a bad
// key, an unknown model or malformed parameters. Sending it again gives the
// same answer, so the retry layer gives up immediately.
type ErrRequestRejected struct {
	Provider string
	Status   int
	Err      error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("%s rejected the request (status %d): %v", e.Provider, e.Status, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means generation stopped at MaxTokens, so the JSON
// is most likely cut short.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// classifyStatus turns an SDK failure into one of the errors above. status
// is the HTTP status the SDK reported, 0 when the request never got an
// answer. header may be nil when the SDK does not expose the response.
func classifyStatus(provider string, status int, header http.Header, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Provider: provider, RetryAfter: retryAfter(header), Err: err}
	case status == 0, status >= 500:
		return &ErrProviderUnavailable{Provider: provider, Status: status, Err: err}
	case status == http.StatusRequestTimeout, status == http.StatusConflict:
		// Request timeout and lock conflict clear on their own.
		return &ErrProviderUnavailable{Provider: provider, Status: status, Err: err}
	case status >= 400:
		return &ErrRequestRejected{Provider: provider, Status: status, Err: err}
	}
	return &ErrProviderUnavailable{Provider: provider, Status: status, Err: err}
}

// retryAfter reads retry-after-ms, then Retry-After as seconds or an HTTP
// date.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	if ms, err := strconv.ParseFloat(h.Get("retry-after-ms"), 64); err == nil && ms > 0 {
		return time.Duration(ms * float64(time.Millisecond))
	}
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs * float64(time.Second))
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
