package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/practicekit/internal/llm"
)

// isolate points config lookup at empty temp dirs and clears provider keys.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 50, cfg.Server.MaxCount)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10*time.Minute, cfg.Quiz.DefaultTimeLimit)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Empty(t, cfg.Backend.URL)
	assert.False(t, cfg.LLM.Enabled())
	assert.Equal(t, llm.DefaultConfig().Retry, cfg.LLM.Retry)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
}

func TestLoad_WorkingDirFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "practicekit.yaml"), `
server:
  addr: ":9000"
  max_count: 20
  cors_origins: ["https://example.org"]
db:
  path: /tmp/pk.db
quiz:
  default_time_limit: 90s
llm:
  provider: openai
  openai:
    api_key: sk-test
    model: gpt-4o
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 20, cfg.Server.MaxCount)
	assert.Equal(t, []string{"https://example.org"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/tmp/pk.db", cfg.DB.Path)
	assert.Equal(t, 90*time.Second, cfg.Quiz.DefaultTimeLimit)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	// Untouched sections keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_XDGFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "practicekit", "practicekit.yaml"), "log:\n  level: debug\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PRACTICEKIT_SERVER_ADDR", "127.0.0.1:7000")
	t.Setenv("PRACTICEKIT_BACKEND_URL", "http://localhost:7000")
	t.Setenv("PRACTICEKIT_LOG_FORMAT", "json")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:7000", cfg.Backend.URL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "log:\n  format: xml\n")
	_, err = Load(bad)
	assert.Error(t, err)

	badCount := filepath.Join(dir, "count.yaml")
	writeFile(t, badCount, "server:\n  max_count: 0\n")
	_, err = Load(badCount)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("grade", "3").Info("hello")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "3", entry["grade"])

	_, err = NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
	_, err = NewLogger(LogConfig{Format: "xml"})
	assert.Error(t, err)
}
