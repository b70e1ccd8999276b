package config

// HelpStyle selects what the "help" command returns.
type HelpStyle string

const (
	// HelpMenu replies with the three-button demo menu.
	HelpMenu HelpStyle = "menu"
	// HelpText replies with a plain-text blurb only.
	HelpText HelpStyle = "text"
)

// Config is the top-level weber configuration, corresponding to weber.yml.
type Config struct {
	ListenAddr      string `yaml:"listen_addr" koanf:"listen_addr"`
	VerifyToken     string `yaml:"verify_token" koanf:"verify_token"`
	PageAccessToken string `yaml:"page_access_token" koanf:"page_access_token"`
	GraphAPIURL     string `yaml:"graph_api_url" koanf:"graph_api_url"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequestTimeout  int    `yaml:"request_timeout" koanf:"request_timeout"` // seconds, outbound HTTP

	Bot      BotConfig      `yaml:"bot" koanf:"bot"`
	NLU      NLUConfig      `yaml:"nlu" koanf:"nlu"`
	Search   SearchConfig   `yaml:"search" koanf:"search"`
	Weather  WeatherConfig  `yaml:"weather" koanf:"weather"`
	Dispatch DispatchConfig `yaml:"dispatch" koanf:"dispatch"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// BotConfig holds conversation behaviour settings.
type BotConfig struct {
	HelpStyle HelpStyle `yaml:"help_style" koanf:"help_style"`
}

// NLUConfig configures the small-talk NLU service.
type NLUConfig struct {
	Token   string `yaml:"token" koanf:"token"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// SearchConfig configures the business-search provider.
type SearchConfig struct {
	Token   string `yaml:"token" koanf:"token"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// WeatherConfig configures the weather provider.
type WeatherConfig struct {
	APIKey  string `yaml:"api_key" koanf:"api_key"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// DispatchConfig sizes the outbound delivery pool.
type DispatchConfig struct {
	Workers     int `yaml:"workers" koanf:"workers"`
	QueueSize   int `yaml:"queue_size" koanf:"queue_size"`
	MaxAttempts int `yaml:"max_attempts" koanf:"max_attempts"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"` // json or console
}
