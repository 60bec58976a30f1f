package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tonicapp/tonic/internal/config"
	"github.com/tonicapp/tonic/internal/fileops"
	"github.com/tonicapp/tonic/internal/fixer"
	"github.com/tonicapp/tonic/internal/history"
	"github.com/tonicapp/tonic/internal/orchestrator"
	"github.com/tonicapp/tonic/internal/platform"
	"github.com/tonicapp/tonic/internal/recommend"
	"github.com/tonicapp/tonic/internal/scan"
	"github.com/tonicapp/tonic/internal/scanner"
	"github.com/tonicapp/tonic/internal/score"
	"github.com/tonicapp/tonic/internal/sysmetrics"
	"github.com/tonicapp/tonic/internal/ui"
)

var (
	Version = "1.0.0"
)

var (
	configPath string
	verbose    bool
	dryRun     bool
	plain      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "tonic",
	Short:   "System health scanner and cleanup tool",
	Long:    "Tonic scans your system for junk files, cache bulk and app issues,\nscores its health, and recommends safe cleanups.",
	Version: Version,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a smart scan and show the health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.close()

		result, err := app.runScan(ctx)
		if err != nil {
			if errors.Is(err, orchestrator.ErrCancelled) {
				fmt.Println("Scan cancelled.")
				return nil
			}
			return err
		}

		fmt.Println(ui.RenderResult(result, app.orch.Recommendations()))

		if err := app.saveHistory(result); err != nil {
			app.logger.Warn("could not save scan to history", zap.Error(err))
		}
		return nil
	},
}

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Scan, then apply every safe recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.close()

		result, err := app.runScan(ctx)
		if err != nil {
			if errors.Is(err, orchestrator.ErrCancelled) {
				fmt.Println("Scan cancelled.")
				return nil
			}
			return err
		}
		fmt.Println(ui.RenderResult(result, app.orch.Recommendations()))

		fixResult, err := app.orch.FixRecommendations(ctx, app.orch.Recommendations())
		fmt.Println(ui.RenderFixResult(fixResult))
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the live system health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		provider := sysmetrics.NewProvider(logger)
		metrics, err := provider.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("failed to sample system metrics: %w", err)
		}

		sysScore, message := score.SystemScore(metrics)
		fmt.Println(ui.RenderSystemScore(metrics, sysScore, message))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past scan results",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := history.DefaultDir()
		if err != nil {
			return err
		}
		store, err := history.NewStore(dir, 0)
		if err != nil {
			return err
		}
		results, err := store.List()
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No saved scans yet.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s  score %3d  reclaimable %d bytes  %s\n",
				r.Timestamp.Format("2006-01-02 15:04"), r.HealthScore,
				r.TotalReclaimableSpace, r.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "validate fixes without deleting anything")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable the interactive progress view")

	rootCmd.AddCommand(scanCmd, fixCmd, statusCmd, historyCmd)
}

// app bundles the wired pipeline for one command invocation.
type app struct {
	cfg    *config.Config
	orch   *orchestrator.Orchestrator
	logger *zap.Logger
}

func newApp() (*app, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		if path, err = config.GetConfigPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dryRun {
		cfg.DryRun = true
	}

	info, err := platform.GetInfo()
	if err != nil {
		return nil, err
	}

	catScanner := scanner.New(info, cfg, logger)
	calc := score.NewCalculator()
	gen := recommend.NewGenerator(calc)
	ops := fileops.NewManager(fileops.Options{
		ProtectedPaths: append(info.ProtectedPaths, cfg.ProtectedPaths...),
		MinFileAge:     time.Duration(cfg.MinFileAge) * time.Hour,
		DryRun:         cfg.DryRun,
	}, logger)
	exec := fixer.New(ops, logger)

	return &app{
		cfg:    cfg,
		orch:   orchestrator.New(catScanner, calc, gen, exec, logger),
		logger: logger,
	}, nil
}

func (a *app) close() {
	a.logger.Sync()
}

// runScan drives all stages to a finalized result, interactively unless
// --plain was given or stdout is not a terminal.
func (a *app) runScan(ctx context.Context) (*scan.Result, error) {
	if plain {
		return a.runScanPlain(ctx)
	}

	model := ui.NewScanModel(ctx, a.orch)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return nil, err
	}
	if model.Err() != nil {
		return nil, model.Err()
	}
	return model.Result(), nil
}

func (a *app) runScanPlain(ctx context.Context) (*scan.Result, error) {
	stages := []orchestrator.Stage{
		orchestrator.StagePreparing,
		orchestrator.StageScanningDisk,
		orchestrator.StageCheckingApps,
		orchestrator.StageAnalyzingSystem,
	}
	for _, stage := range stages {
		progress, err := a.orch.RunStage(ctx, stage)
		if err != nil {
			return nil, err
		}
		fmt.Printf("%-18s %3.0f%%\n", stage.String(), progress*100)
	}
	return a.orch.Finalize()
}

func (a *app) saveHistory(result *scan.Result) error {
	dir, err := history.DefaultDir()
	if err != nil {
		return err
	}
	store, err := history.NewStore(dir, a.cfg.History.Keep)
	if err != nil {
		return err
	}
	return store.Save(result)
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
