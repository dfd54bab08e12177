package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func() Config
		wantErr bool
	}{
		{"no provider", func() Config { return DefaultConfig() }, true},
		{"mock", func() Config { c := DefaultConfig(); c.Provider = ProviderMock; return c }, false},
		{"missing key", func() Config { c := DefaultConfig(); c.Provider = ProviderOpenAI; return c }, true},
		{"with key", func() Config {
			c := DefaultConfig()
			c.Provider = ProviderAnthropic
			c.Anthropic.APIKey = "k"
			return c
		}, false},
		{"unknown", func() Config { c := DefaultConfig(); c.Provider = "llama"; return c }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg().Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigDiscover(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg := DefaultConfig()
	require.True(t, cfg.Discover())
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)

	// An explicit selection is kept.
	cfg = DefaultConfig()
	cfg.Provider = ProviderMock
	cfg.Discover()
	assert.Equal(t, ProviderMock, cfg.Provider)

	t.Setenv("ANTHROPIC_API_KEY", "")
	cfg = DefaultConfig()
	assert.False(t, cfg.Discover())
	assert.False(t, cfg.Enabled())
}

func TestNewBuildsEachProvider(t *testing.T) {
	for _, name := range []string{ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderGemini, ProviderMock} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Provider = name
			if pc := cfg.provider(name); pc != nil {
				pc.APIKey = "test-key"
			}
			p, err := New(context.Background(), cfg, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name())
			assert.NotEmpty(t, p.ModelID())
		})
	}
}

func TestWrapChain(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"question":"2+2"}`)},
		MockResponse{Content: json.RawMessage(`{"question":"2+2","answer":"4"}`)},
	)
	sink := &fakeSink{}
	cfg := Config{Retry: RetryConfig{MaxAttempts: 3}, Timeout: time.Minute}
	p := Wrap(mock, cfg, sink, nil)

	// The invalid first response is retried once and both attempts logged.
	resp, err := p.Generate(context.Background(), Request{Schema: testSchema})
	require.NoError(t, err)
	assert.JSONEq(t, `{"question":"2+2","answer":"4"}`, string(resp.Content))
	assert.Len(t, sink.events, 2)
	assert.False(t, sink.events[0].Success)
	assert.True(t, sink.events[1].Success)
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.15+0.6, c.Cost(1_000_000, 1_000_000), 1e-9)

	require.NotNil(t, LookupCost("claude-haiku"))
	assert.Nil(t, LookupCost("no-such-model"))
}
