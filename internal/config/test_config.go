package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:0",
			HTTPTimeout:    5 * time.Second,
			SummaryTimeout: 5 * time.Second,
			UserAgent:      "brief-test/1.0",
		},
		Auth: AuthConfig{
			URL:         "http://localhost:0",
			SessionPath: "", // tests point this at a temp dir
		},
		UI:      defaultConfig().UI,
		Keys:    defaultConfig().Keys,
		Log:     LogConfig{Level: "off"},
		Browser: defaultConfig().Browser,
	}
}
