package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	UI      UIConfig      `mapstructure:"ui"`
	Keys    KeyConfig     `mapstructure:"keys"`
	Log     LogConfig     `mapstructure:"log"`
	Browser BrowserConfig `mapstructure:"browser"`
}

// APIConfig points the client at the article webhook.
type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	SummaryTimeout time.Duration `mapstructure:"summary_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// AuthConfig points at the identity provider and names the local session
// file the auth client owns.
type AuthConfig struct {
	URL         string `mapstructure:"url"`
	SessionPath string `mapstructure:"session_path"`
}

type UIConfig struct {
	Colors  UIColors      `mapstructure:"colors"`
	Article ArticleConfig `mapstructure:"article"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

type ArticleConfig struct {
	MaxDescriptionLength int `mapstructure:"max_description_length"`
	WordWrapMaxWidth     int `mapstructure:"word_wrap_max_width"`
	WordWrapMinWidth     int `mapstructure:"word_wrap_min_width"`
	FetchLimit           int `mapstructure:"fetch_limit"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit         string `mapstructure:"quit"`
	Search       string `mapstructure:"search"`
	Refresh      string `mapstructure:"refresh"`
	ToggleRead   string `mapstructure:"toggle_read"`
	ToggleSaved  string `mapstructure:"toggle_saved"`
	Summarize    string `mapstructure:"summarize"`
	NextCategory string `mapstructure:"next_category"`
	PrevCategory string `mapstructure:"prev_category"`
	SavedView    string `mapstructure:"saved_view"`
	Preferences  string `mapstructure:"preferences"`
	OpenLink     string `mapstructure:"open_link"`
	SignOut      string `mapstructure:"sign_out"`
	Back         string `mapstructure:"back"`
	Help         string `mapstructure:"help"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// BrowserConfig controls how article links are handed off to the OS.
type BrowserConfig struct {
	Opener string `mapstructure:"opener"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	sessionPath := filepath.Join(homeDir, ".brief", "session.db")
	logPath := filepath.Join(homeDir, ".brief", "brief.log")

	return &Config{
		API: APIConfig{
			BaseURL:        "https://webhook.brieflabs.dev",
			HTTPTimeout:    30 * time.Second,
			SummaryTimeout: 90 * time.Second,
			UserAgent:      "brief/1.0 (github.com/brieflabs/brief)",
		},
		Auth: AuthConfig{
			URL:         "https://auth.brieflabs.dev",
			SessionPath: sessionPath,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#FF6B6B",
				Secondary:  "#4ECDC4",
				Accent:     "#95E1D3",
				Background: "#1A1A2E",
				Surface:    "#16213E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
			Article: ArticleConfig{
				MaxDescriptionLength: 150,
				WordWrapMaxWidth:     120,
				WordWrapMinWidth:     40,
				FetchLimit:           50,
			},
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:         "q",
				Search:       "/",
				Refresh:      "r",
				ToggleRead:   "m",
				ToggleSaved:  "s",
				Summarize:    "y",
				NextCategory: "tab",
				PrevCategory: "shift+tab",
				SavedView:    "v",
				Preferences:  "p",
				OpenLink:     "o",
				SignOut:      "D",
				Back:         "esc",
				Help:         "?",
			},
		},
		Log: LogConfig{
			Level: "off",
			Path:  logPath,
		},
		Browser: BrowserConfig{
			Opener: getDefaultOpener(),
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("auth", cfg.Auth)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)
	v.SetDefault("log", cfg.Log)
	v.SetDefault("browser", cfg.Browser)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "brief")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BRIEF")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Auth.SessionPath = expandPath(cfg.Auth.SessionPath)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations become strings so the TOML stays hand-editable.
	apiCfg := map[string]interface{}{
		"base_url":        config.API.BaseURL,
		"http_timeout":    config.API.HTTPTimeout.String(),
		"summary_timeout": config.API.SummaryTimeout.String(),
		"user_agent":      config.API.UserAgent,
	}

	v.Set("api", apiCfg)
	v.Set("auth", config.Auth)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)
	v.Set("log", config.Log)
	v.Set("browser", config.Browser)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
