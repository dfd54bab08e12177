package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	sdkErr := errors.New("sdk said no")

	tests := []struct {
		status int
		want   any
	}{
		{0, &ErrProviderUnavailable{}},
		{http.StatusRequestTimeout, &ErrProviderUnavailable{}},
		{http.StatusConflict, &ErrProviderUnavailable{}},
		{http.StatusTooManyRequests, &ErrRateLimit{}},
		{http.StatusInternalServerError, &ErrProviderUnavailable{}},
		{529, &ErrProviderUnavailable{}},
		{http.StatusBadRequest, &ErrRequestRejected{}},
		{http.StatusUnauthorized, &ErrRequestRejected{}},
		{http.StatusNotFound, &ErrRequestRejected{}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := classifyStatus(ProviderOpenAI, tt.status, nil, sdkErr)
			assert.IsType(t, tt.want, err)
			assert.ErrorIs(t, err, sdkErr)
			assert.Contains(t, err.Error(), ProviderOpenAI)
		})
	}
}

func TestClassifyStatus_ContextErrorsPassThrough(t *testing.T) {
	err := fmt.Errorf("post: %w", context.DeadlineExceeded)
	assert.Same(t, err, classifyStatus(ProviderGemini, 0, nil, err))
}

func TestRetryAfter(t *testing.T) {
	header := func(kv ...string) http.Header {
		h := http.Header{}
		for i := 0; i < len(kv); i += 2 {
			h.Set(kv[i], kv[i+1])
		}
		return h
	}

	assert.Zero(t, retryAfter(nil))
	assert.Zero(t, retryAfter(header()))
	assert.Equal(t, 3*time.Second, retryAfter(header("Retry-After", "3")))
	assert.Equal(t, 1500*time.Millisecond, retryAfter(header("Retry-After", "1.5")))
	assert.Equal(t, 250*time.Millisecond, retryAfter(header("retry-after-ms", "250", "Retry-After", "9")))
	assert.Zero(t, retryAfter(header("Retry-After", "-4")))
	assert.Zero(t, retryAfter(header("Retry-After", "soon")))

	at := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	d := retryAfter(header("Retry-After", at))
	assert.Greater(t, d, 50*time.Second)
	assert.LessOrEqual(t, d, time.Minute)

	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	assert.Zero(t, retryAfter(header("Retry-After", past)))
}

func TestRateLimitCarriesRetryAfterIntoBackoff(t *testing.T) {
	err := classifyStatus(ProviderAnthropic, http.StatusTooManyRequests, http.Header{"Retry-After": {"4"}}, errors.New("429"))
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)

	r := &RetryProvider{config: RetryConfig{InitialWait: time.Second, Multiplier: 2}}
	assert.Equal(t, 4*time.Second, r.backoff(0, err))
}
