package config

// DefaultConfig returns a Config with sensible defaults. Tokens and keys
// have no defaults and must come from the config file or environment.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":1337",
		GraphAPIURL:    "https://graph.facebook.com/v2.6",
		RequestTimeout: 10,
		Bot: BotConfig{
			HelpStyle: HelpMenu,
		},
		NLU: NLUConfig{
			BaseURL: "https://api.api.ai",
		},
		Search: SearchConfig{
			BaseURL: "https://api.yelp.com",
		},
		Weather: WeatherConfig{
			BaseURL: "http://api.openweathermap.org",
		},
		Dispatch: DispatchConfig{
			Workers:     4,
			QueueSize:   64,
			MaxAttempts: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
