package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/speaknative/verbgen/internal/assemble"
	"github.com/speaknative/verbgen/internal/lookup"
)

const (
	// DefaultOutputPath is where the app expects the generated manifest.
	DefaultOutputPath = "src/data/verbs-manifest.json"

	// DefaultIndent is the number of spaces per JSON indentation level.
	DefaultIndent = 4
)

// Config holds all configuration for verbgen.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Locales LocalesConfig `mapstructure:"locales"`
	Logging LoggingConfig `mapstructure:"logging"`
	API     APIConfig     `mapstructure:"api"`
}

// OutputConfig controls where and how the manifest is written.
type OutputConfig struct {
	Path   string `mapstructure:"path"`
	Indent int    `mapstructure:"indent"`
}

// LocalesConfig lists the locale tags carried by each language and the
// aggregate locales accepted by the read side.
type LocalesConfig struct {
	Source     []string            `mapstructure:"source"`
	Target     []string            `mapstructure:"target"`
	Aggregates map[string][]string `mapstructure:"aggregates"`
}

// Dialects returns the locale layout used by the assembler.
func (l LocalesConfig) Dialects() assemble.Dialects {
	return assemble.Dialects{Source: l.Source, Target: l.Target}
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr     string   `mapstructure:"listen_addr"`
	AuthToken      string   `mapstructure:"auth_token"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// String returns a safe representation of APIConfig with the token masked.
func (c APIConfig) String() string {
	return fmt.Sprintf("APIConfig{ListenAddr:%s, AuthToken:%s, AllowedOrigins:%v}", c.ListenAddr, maskToken(c.AuthToken), c.AllowedOrigins)
}

// maskToken shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskToken(token string) string {
	const visible = 4
	if token == "" {
		return ""
	}
	if len(token) <= visible*2 {
		return "***"
	}
	return token[:visible] + "****" + token[len(token)-visible:]
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from a .env file, a config file and environment
// variables, in increasing order of precedence.
func Load() (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()

	dialects := assemble.DefaultDialects()
	v.SetDefault("output.path", DefaultOutputPath)
	v.SetDefault("output.indent", DefaultIndent)

	v.SetDefault("locales.source", dialects.Source)
	v.SetDefault("locales.target", dialects.Target)
	v.SetDefault("locales.aggregates", lookup.DefaultAggregates())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")
	v.SetDefault("api.allowed_origins", []string{"http://localhost:5173"})

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".verbgen"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("VERBGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		return fmt.Errorf("output.indent must be between 0 and 8")
	}
	if err := c.Locales.Dialects().Validate(); err != nil {
		return fmt.Errorf("locales: %w", err)
	}
	for name, tags := range c.Locales.Aggregates {
		if len(tags) == 0 {
			return fmt.Errorf("locales.aggregates.%s must list at least one locale", name)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	// rs/cors treats an empty origin list as "*".
	if len(c.API.AllowedOrigins) == 0 {
		return fmt.Errorf("api.allowed_origins must list at least one origin (use \"*\" to allow all)")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
