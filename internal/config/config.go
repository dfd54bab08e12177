// Package config loads application settings from a YAML file, PRACTICEKIT_
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/practicekit/internal/llm"
)

// EnvPrefix prefixes environment overrides, e.g. PRACTICEKIT_SERVER_ADDR.
const EnvPrefix = "PRACTICEKIT"

// Config is the typed application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	LLM     llm.Config    `mapstructure:"llm"`
	Backend BackendConfig `mapstructure:"backend"`
	Quiz    QuizConfig    `mapstructure:"quiz"`
	Papers  PapersConfig  `mapstructure:"papers"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr" validate:"required"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	// MaxCount caps the count parameter of generate requests.
	MaxCount int `mapstructure:"max_count" validate:"gte=1,lte=500"`
}

type DBConfig struct {
	// Path is the SQLite file. Empty means the default data directory.
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type BackendConfig struct {
	// URL of the practice API. Empty means generate locally.
	URL     string        `mapstructure:"url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type QuizConfig struct {
	DefaultTimeLimit time.Duration `mapstructure:"default_time_limit" validate:"gte=0"`
}

type PapersConfig struct {
	// Dir holds extra paper blueprints (*.yaml).
	Dir string `mapstructure:"dir"`
}

// Load reads configuration. When path is empty, practicekit.yaml is looked
// up in the working directory and $XDG_CONFIG_HOME/practicekit; a missing
// file is not an error. API keys missing from the file are discovered from
// the standard provider variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("practicekit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := configHome(); dir != "" {
			v.AddConfigPath(filepath.Join(dir, "practicekit"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LLM.Discover()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_count", 50)

	v.SetDefault("db.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	for name, pc := range map[string]llm.ProviderConfig{
		llm.ProviderAnthropic:  d.Anthropic,
		llm.ProviderOpenAI:     d.OpenAI,
		llm.ProviderGemini:     d.Gemini,
		llm.ProviderOpenRouter: d.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", pc.APIKey)
		v.SetDefault("llm."+name+".model", pc.Model)
		v.SetDefault("llm."+name+".base_url", pc.BaseURL)
	}

	v.SetDefault("backend.url", "")
	v.SetDefault("backend.timeout", 10*time.Second)

	v.SetDefault("quiz.default_time_limit", 10*time.Minute)

	v.SetDefault("papers.dir", "")
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return ""
}
