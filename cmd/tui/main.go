package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/config"
	"github.com/rovshanmuradov/token-monitor/internal/export"
	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/history"
	"github.com/rovshanmuradov/token-monitor/internal/lifecycle"
	"github.com/rovshanmuradov/token-monitor/internal/logger"
	"github.com/rovshanmuradov/token-monitor/internal/poller"
	"github.com/rovshanmuradov/token-monitor/internal/tokenapi"
	"github.com/rovshanmuradov/token-monitor/internal/ui"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/config.json", "Path to config file")
	flag.Parse()

	// Create context with signal handling
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(rootCtx, *configPath); err != nil {
		log.Fatalf("token monitor: %v", err)
	}
}

func run(ctx context.Context, configPath string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The alt screen owns the terminal, so logs go to the ring buffer and
	// spill into the log file. The buffer's own logger must not write back
	// into itself.
	logBuffer, err := logger.NewLogBuffer(cfg.LogBufferSize, cfg.LogFile, zap.NewNop())
	if err != nil {
		return fmt.Errorf("failed to create log buffer: %w", err)
	}

	appLogger, err := logger.CreateTUILogger(cfg.DebugLogging, logBuffer)
	if err != nil {
		_ = logBuffer.Close()
		return fmt.Errorf("failed to init logger: %w", err)
	}

	// Closed in reverse order: the log buffer goes last so the other
	// services can still log while closing.
	shutdown := lifecycle.NewShutdownHandler(appLogger, lifecycle.DefaultTimeout)
	shutdown.Add("log buffer", logBuffer)
	shutdown.AddFunc("logger", func() error {
		_ = appLogger.Sync()
		return nil
	})
	defer func() {
		if err := shutdown.Shutdown(context.Background()); err != nil {
			log.Printf("token monitor: shutdown: %v", err)
		}
	}()

	client, err := tokenapi.NewClient(tokenapi.Options{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.RequestTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
	}, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	formatter := format.NewFormatter(cfg.PriceDecimals, cfg.Location())
	services := ui.Services{
		Poller:    poller.New(client, cfg.RefreshInterval, appLogger),
		Tokens:    client,
		Formatter: formatter,
		Exporter:  export.NewSnapshotExporter(formatter, appLogger),
		Logs:      logBuffer,
	}

	if cfg.HistoryFile != "" {
		recorder, err := history.NewRecorder(cfg.HistoryFile, formatter, appLogger)
		if err != nil {
			return err
		}
		shutdown.Add("history recorder", recorder)
		services.Recorder = recorder
	}

	provider := ui.NewRealServiceProvider(ctx, cfg, appLogger, services)

	appLogger.Info("Starting token monitor",
		zap.String("api", client.BaseURL()),
		zap.Duration("refresh_interval", cfg.RefreshInterval))

	var handler *ui.RecoveryHandler
	handler = ui.NewRecoveryHandler(appLogger, func() (tea.Model, []tea.ProgramOption) {
		provider.GetSession().Restarts = handler.GetRestartCount()
		return ui.NewSafeUIWrapper(NewAppModel(provider), appLogger), []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
	})

	err = handler.RunWithRecovery(ctx)
	appLogger.Info("Shutting down token monitor")
	return err
}
