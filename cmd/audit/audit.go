// Package audit implements the audit command: a single read-only pass over
// the configured HTML tree, producing the textual report on stdout. The
// process exits zero even when issues are found; the score is the
// machine-consumable outcome.
package audit

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	auditpkg "github.com/jonesrussell/seoaudit/internal/audit"
	"github.com/jonesrussell/seoaudit/internal/config"
	"github.com/jonesrussell/seoaudit/internal/logger"
	"github.com/jonesrussell/seoaudit/internal/page"
	"github.com/jonesrussell/seoaudit/internal/report"
)

// Command returns the audit command for use in the root command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit the HTML tree for structural SEO health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context())
		},
	}

	cmd.Flags().String("root", "", "directory tree to audit (default: current directory)")
	cmd.Flags().String("base-url", "", "site base URL (default: detected from the home page)")
	cmd.Flags().Bool("skip-external", false, "skip external link liveness checks")

	// Flags override config file and environment values.
	_ = viper.BindPFlag("audit.root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("audit.base_url", cmd.Flags().Lookup("base-url"))
	_ = viper.BindPFlag("probe.skip_external", cmd.Flags().Lookup("skip-external"))

	return cmd
}

// Run executes an audit with the current configuration. It is also invoked
// by the root command when no subcommand is given.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:       logger.Level(cfg.Logger.Level),
		Encoding:    cfg.Logger.Encoding,
		Development: cfg.Logger.Development,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	runner := auditpkg.NewRunner(auditpkg.Options{
		Root:         cfg.Audit.Root,
		BaseURL:      cfg.Audit.BaseURL,
		ProbeWorkers: cfg.Probe.Workers,
		ProbeTimeout: cfg.Probe.Timeout,
		SkipExternal: !cfg.Probe.Enabled || viper.GetBool("probe.skip_external"),
	}, log)

	result, err := runner.Run(ctx)
	if err != nil {
		// An empty tree is reported, not treated as a process failure.
		if errors.Is(err, page.ErrNoPages) {
			log.Error("no HTML files found to scan", "root", cfg.Audit.Root)
			return nil
		}
		return fmt.Errorf("audit failed: %w", err)
	}

	report.New(os.Stdout).Render(result)

	return nil
}
