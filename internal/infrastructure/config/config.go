// Package config provides configuration loading for the commitcraft application.
// Defaults for the ticket pattern, the templates, and logging come from
// environment variables so a team can set them once (e.g. in CI or a
// direnv file) without repeating flags in every hook line.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/ndcoders/commitcraft/internal/domain"
)

// EnvPrefix is the prefix for all commitcraft environment variables.
// Double underscore (__) separates nesting levels:
// COMMITCRAFT_LOGGING__LEVEL -> logging.level.
const EnvPrefix = "COMMITCRAFT_"

// Default logging values. Warn keeps ordinary hook runs silent apart
// from the one-line rewrite status.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "console"
)

// Settings holds all application configuration.
type Settings struct {
	// Regex is the default ticket-extraction pattern.
	Regex string `koanf:"regex"`

	// Format is the default subject template.
	Format string `koanf:"format"`

	// Body is the default body template (empty means none).
	Body string `koanf:"body"`

	// Logging configures the zap logger.
	Logging LoggingSettings `koanf:"logging"`
}

// LoggingSettings configures log output.
type LoggingSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Defaults returns Settings with built-in default values.
func Defaults() *Settings {
	return &Settings{
		Regex:  domain.DefaultTicketPattern,
		Format: domain.DefaultSubjectFormat,
		Logging: LoggingSettings{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads configuration from environment variables over the built-in
// defaults. Command-line flags override the result at the cmd layer.
func Load() (*Settings, error) {
	k := koanf.New(".")

	cfg := Defaults()

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		// Double underscore separates nesting levels; single underscores
		// within a level are preserved.
		s = strings.ReplaceAll(s, "__", ".")
		return s
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Settings) error {
	if cfg.Regex == "" {
		return fmt.Errorf("config: regex must not be empty (set %sREGEX)", EnvPrefix)
	}
	if cfg.Format == "" {
		return fmt.Errorf("config: format must not be empty (set %sFORMAT)", EnvPrefix)
	}
	if _, err := regexp.Compile("(?i)" + cfg.Regex); err != nil {
		return fmt.Errorf("config: %w: %q: %w", domain.ErrInvalidPattern, cfg.Regex, err)
	}
	return nil
}
