package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (WEBER_*). A .env file in the working
// directory is loaded first, if present. Nested keys use a double
// underscore in the environment: WEBER_NLU__TOKEN -> nlu.token.
func Load(path string) (*Config, error) {
	// Populate the environment from .env before reading overrides.
	_ = godotenv.Load()

	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: WEBER_VERIFY_TOKEN -> verify_token,
	// WEBER_SEARCH__TOKEN -> search.token, etc.
	if err := k.Load(env.Provider("WEBER_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "WEBER_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validHelpStyles is the set of recognized help_style values.
var validHelpStyles = map[HelpStyle]bool{
	HelpMenu: true,
	HelpText: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}

	if c.VerifyToken == "" {
		return fmt.Errorf("verify_token is required")
	}

	if c.PageAccessToken == "" {
		return fmt.Errorf("page_access_token is required")
	}

	if c.NLU.Token == "" {
		return fmt.Errorf("nlu.token is required")
	}

	if c.Search.Token == "" {
		return fmt.Errorf("search.token is required")
	}

	if c.Weather.APIKey == "" {
		return fmt.Errorf("weather.api_key is required")
	}

	if c.Bot.HelpStyle != "" && !validHelpStyles[c.Bot.HelpStyle] {
		return fmt.Errorf("invalid bot.help_style %q: must be one of menu, text", c.Bot.HelpStyle)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	if c.Dispatch.Workers <= 0 {
		return fmt.Errorf("dispatch.workers must be positive")
	}

	if c.Dispatch.QueueSize <= 0 {
		return fmt.Errorf("dispatch.queue_size must be positive")
	}

	if c.Dispatch.MaxAttempts <= 0 {
		return fmt.Errorf("dispatch.max_attempts must be positive")
	}

	return nil
}
