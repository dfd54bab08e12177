package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/abhisek/practicekit/internal/store"
)

func noSleep(context.Context, time.Duration) error { return nil }

func newTestRetry(p Provider, attempts int) *RetryProvider {
	r := WithRetry(p, RetryConfig{MaxAttempts: attempts, InitialWait: time.Millisecond, Multiplier: 2}, nil).(*RetryProvider)
	r.sleep = noSleep
	return r
}

func TestRetryProvider_RecoversFromTransientError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	r := newTestRetry(mock, 3)

	resp, err := r.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetryProvider_GivesUp(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	r := newTestRetry(mock, 2)

	_, err := r.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetryProvider_NonRetryable(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
	}{
		{"max tokens", []error{&ErrMaxTokensExceeded{}}, 1},
		{"canceled", []error{context.Canceled}, 1},
		{"rejected", []error{&ErrRequestRejected{Provider: ProviderOpenAI, Status: 401, Err: errors.New("bad key")}}, 1},
		{"invalid retried once", []error{&ErrInvalidResponse{Err: errors.New("a")}, &ErrInvalidResponse{Err: errors.New("b")}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider()
			for _, e := range tt.errs {
				mock.AddResponse(MockResponse{Err: e})
			}
			mock.AddResponse(MockResponse{Content: json.RawMessage(`{}`)})

			r := newTestRetry(mock, 5)
			if _, err := r.Generate(context.Background(), Request{}); err == nil {
				t.Fatal("expected error")
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetryProvider_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: time.Second, MaxWait: 3 * time.Second, Multiplier: 2}}

	if got := r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}); got != 7*time.Second {
		t.Fatalf("expected RetryAfter to be honored, got %s", got)
	}
	for attempt, want := range []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second} {
		got := r.backoff(attempt, errors.New("x"))
		lo, hi := time.Duration(float64(want)*0.8), time.Duration(float64(want)*1.2)
		if got < lo || got > hi {
			t.Errorf("attempt %d: backoff %s outside [%s, %s]", attempt, got, lo, hi)
		}
	}
}

type fakeSink struct {
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeSink) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.events = append(f.events, data)
	return f.err
}

func TestLoggingProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 12, OutputTokens: 5}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	sink := &fakeSink{}
	log, hook := test.NewNullLogger()
	p := WithLogging(mock, sink, log)

	ctx := WithPurpose(context.Background(), PurposeQuestionGen)
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(sink.events))
	}
	ok := sink.events[0]
	if ok.Provider != ProviderMock || ok.Model != "mock" || ok.Purpose != PurposeQuestionGen {
		t.Fatalf("unexpected event labels: %+v", ok)
	}
	if !ok.Success || ok.InputTokens != 12 || ok.OutputTokens != 5 {
		t.Fatalf("unexpected success event: %+v", ok)
	}
	failed := sink.events[1]
	if failed.Success || failed.ErrorMessage == "" {
		t.Fatalf("expected failure event with message, got %+v", failed)
	}

	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Fatalf("expected failed request to be logged at warn level")
	}
}

func TestLoggingProvider_SinkErrorDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	log, hook := test.NewNullLogger()
	p := WithLogging(mock, &fakeSink{err: errors.New("disk full")}, log)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hook.AllEntries()) == 0 {
		t.Fatal("expected sink failure to be logged")
	}
	if PurposeFrom(context.Background()) != "unknown" {
		t.Fatal("expected default purpose")
	}
}
