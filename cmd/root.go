// Package cmd implements the command-line interface for the SEO audit tool.
// It provides the root command and the audit subcommand, which is also the
// default operation when no subcommand is given.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joho/godotenv"
	cmdaudit "github.com/jonesrussell/seoaudit/cmd/audit"
	"github.com/jonesrussell/seoaudit/internal/prober"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the seoaudit CLI.
	rootCmd = &cobra.Command{
		Use:   "seoaudit",
		Short: "A structural SEO auditor for generated HTML trees",
		Long: `Audits a tree of generated HTML pages for structural SEO health:
dead links, orphan pages, missing headings and structured data, and broken
external references, aggregated into a deducted 0-100 score.`,
		// Running without a subcommand performs an audit of the configured root.
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdaudit.Run(cmd.Context())
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	// Initialize configuration
	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	// Execute the root command with a fresh context
	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("seoaudit version %s\n", viper.GetString("app.version"))
		},
	})

	// Add subcommands
	rootCmd.AddCommand(cmdaudit.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	// Set config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Enable automatic environment variable reading BEFORE setting defaults
	// so environment variables take precedence over defaults
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults (only used if environment variables or config file don't provide values)
	setDefaults()

	// Read config file
	// Note: Config file is optional - if not found, we'll use defaults and environment variables
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	// Bind command-line flags to Viper
	if err := bindCommandLineFlags(); err != nil {
		return err
	}

	// Map environment variables to config keys
	if err := bindEnvVars(); err != nil {
		return err
	}

	// Set development logging settings
	setupDevelopmentLogging()

	return nil
}

// bindCommandLineFlags binds command-line flags to Viper.
func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	return nil
}

// bindEnvVars binds application environment variables to config keys.
func bindEnvVars() error {
	if err := viper.BindEnv("app.environment", "APP_ENV"); err != nil {
		return fmt.Errorf("failed to bind APP_ENV: %w", err)
	}
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	if err := viper.BindEnv("audit.root", "AUDIT_ROOT"); err != nil {
		return fmt.Errorf("failed to bind AUDIT_ROOT: %w", err)
	}
	if err := viper.BindEnv("audit.base_url", "AUDIT_BASE_URL"); err != nil {
		return fmt.Errorf("failed to bind AUDIT_BASE_URL: %w", err)
	}
	if err := viper.BindEnv("probe.workers", "PROBE_WORKERS"); err != nil {
		return fmt.Errorf("failed to bind PROBE_WORKERS: %w", err)
	}
	if err := viper.BindEnv("probe.timeout", "PROBE_TIMEOUT"); err != nil {
		return fmt.Errorf("failed to bind PROBE_TIMEOUT: %w", err)
	}
	return nil
}

// setupDevelopmentLogging configures development logging settings based on environment and debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults - production safe
	viper.SetDefault("app", map[string]any{
		"name":        "seoaudit",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	// Logger defaults - production safe
	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "console",
	})

	// Audit defaults: current directory, base URL detected from the home page
	viper.SetDefault("audit", map[string]any{
		"root":     ".",
		"base_url": "",
	})

	// External probe defaults
	viper.SetDefault("probe", map[string]any{
		"enabled": true,
		"workers": prober.DefaultWorkers,
		"timeout": prober.DefaultTimeout.String(),
	})
}
