// Package main is the entry point for the Operations KPI Dashboard TUI.
// It loads configuration, generates the dataset and runs the Bubble Tea program.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/app"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/config"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/logger"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/services"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/tabs/data"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/tabs/filter"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/tabs/operations"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/tabs/overview"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/version"
)

var (
	seed    uint64
	records int
	dir     string
)

var rootCmd = &cobra.Command{
	Use:   "opskpi",
	Short: "Operations KPI dashboard for the terminal",
	Long: `Operations KPI Dashboard - sales and team metrics over seeded mock data.

Keyboard Shortcuts:
  1-5             Switch tabs (Overview, Data, Filter, Operations, Info)
  Tab/Shift+Tab   Navigate between tabs
  r               Reload the current snapshot
  g               Regenerate with the next seed
  e               Export charts and workbook
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  KPI_SEED, KPI_RECORDS, KPI_START_DATE, KPI_END_DATE, KPI_TEAM,
  KPI_HISTOGRAM_BINS, KPI_WATCH_CONFIG, EXPORT_DIR, LOG_PATH, LOG_LEVEL

The application looks for .env files in the current directory,
~/.config/opskpi/.env, ~/.opskpi/.env and the parent directory.`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the charts and workbook without starting the TUI",
	Long: `Generate the dataset and write sales_trend.png, revenue_distribution.png
and operations_kpis.xlsx into the export directory.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed (overrides KPI_SEED)")
	rootCmd.PersistentFlags().IntVar(&records, "records", 0, "Number of sales records (overrides KPI_RECORDS)")
	exportCmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory (default: EXPORT_DIR)")

	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("seed") {
		v := seed
		o.Seed = &v
	}
	if flags.Changed("records") {
		if records < 0 {
			return nil, fmt.Errorf("--records must not be negative, got %d", records)
		}
		v := records
		o.Records = &v
	}
	cfg.Apply(o)
	return cfg, nil
}

// runTUI contains the interactive application logic.
func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	if cfg.LogPath != "" {
		closer, err := logger.Init(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer closer.Close()
	} else {
		logger.SetOutput(io.Discard, cfg.LogLevel)
	}
	logger.Info("starting", "version", version.GetVersion(), "seed", cfg.Seed, "records", cfg.Records)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	state := model.GetState()
	model.SetTabs([]app.Tab{
		overview.New(state),
		data.New(state),
		filter.New(state),
		operations.New(state),
		info.New(state, svcManager),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.Quit())
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// runExport generates the dataset and writes the export files headless.
func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.WatchConfig = false
	logger.SetOutput(os.Stderr, cfg.LogLevel)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svcManager.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, app.ExportTimeout)
	defer cancel()

	result, err := svcManager.Export(ctx, dir)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", result.Summary())
	for _, f := range result.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f.Path)
	}
	return nil
}
