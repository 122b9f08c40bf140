package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/brieflabs/brief/internal/auth"
	"github.com/brieflabs/brief/internal/config"
	"github.com/brieflabs/brief/internal/debuglog"
	"github.com/brieflabs/brief/internal/news"
	"github.com/brieflabs/brief/internal/prefs"
	"github.com/brieflabs/brief/internal/search"
	"github.com/brieflabs/brief/internal/summary"
	"github.com/brieflabs/brief/internal/tui"
	"github.com/brieflabs/brief/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath  string
	apiURL      string
	authURL     string
	sessionPath string
	logLevel    string
	quiet       bool
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "brief",
	Short: "A personalized news-reading terminal client",
	Long:  `brief fetches your articles from the configured webhook, classifies their tone, and summarizes them on demand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("%s %s\n", tui.AppName, Version)
			fmt.Println("github.com/brieflabs/brief")
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyOverrides(cfg)

		// Localhost and private addresses stay valid so a local proxy or
		// staging webhook can be pointed at directly.
		validator := validation.NewPermissiveAPIURLValidator()
		if cfg.API.BaseURL, err = validator.ValidateAndNormalize(cfg.API.BaseURL); err != nil {
			return fmt.Errorf("invalid API URL: %w", err)
		}
		if cfg.Auth.URL, err = validator.ValidateAndNormalize(cfg.Auth.URL); err != nil {
			return fmt.Errorf("invalid auth URL: %w", err)
		}

		if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		defer debuglog.Close()

		if !quiet {
			tui.ShowBanner(Version)
		}

		sessionStore, err := auth.NewSessionStore(cfg.Auth.SessionPath)
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer sessionStore.Close()

		authClient, err := auth.NewClient(cfg, sessionStore)
		if err != nil {
			return fmt.Errorf("initializing auth: %w", err)
		}

		engine, err := search.NewBleveEngine()
		if err != nil {
			return fmt.Errorf("initializing search: %w", err)
		}

		tui.ApplyTheme(cfg)
		app := tui.NewApp(
			cfg,
			authClient,
			news.NewClient(cfg),
			summary.NewClient(cfg, authClient),
			prefs.NewService(cfg),
			engine,
		)

		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := configPath
		if target == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			target = filepath.Join(home, ".config", "brief", "config.toml")
		}

		if err := config.GenerateDefaultConfig(target); err != nil {
			return fmt.Errorf("generating config: %w", err)
		}
		fmt.Printf("Generated default configuration at: %s\n", target)
		return nil
	},
}

func applyOverrides(cfg *config.Config) {
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if authURL != "" {
		cfg.Auth.URL = authURL
	}
	if sessionPath != "" {
		cfg.Auth.SessionPath = sessionPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "Article webhook base URL (overrides config)")
	rootCmd.Flags().StringVar(&authURL, "auth-url", "", "Identity provider URL (overrides config)")
	rootCmd.Flags().StringVar(&sessionPath, "session", "", "Path to session file (overrides config)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Skip startup banner")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
