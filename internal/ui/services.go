package ui

import (
	"context"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/config"
	"github.com/rovshanmuradov/token-monitor/internal/export"
	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/history"
	"github.com/rovshanmuradov/token-monitor/internal/poller"
	"github.com/rovshanmuradov/token-monitor/internal/ui/component"
)

// TokenService changes the remote token list. tokenapi.Client satisfies it.
type TokenService interface {
	AddToken(ctx context.Context, name, address string) error
	DeleteToken(ctx context.Context, address string) error
	SetActive(ctx context.Context, address string, active bool) error
}

// ServiceProvider provides access to the dashboard services for UI screens
type ServiceProvider interface {
	GetContext() context.Context
	GetLogger() *zap.Logger
	GetConfig() *config.Config

	GetPoller() *poller.Poller
	GetTokenService() TokenService
	GetFormatter() format.Formatter
	GetExporter() *export.SnapshotExporter
	// GetRecorder returns nil when history recording is off.
	GetRecorder() *history.Recorder
	GetLogSource() component.LogSource

	GetSession() *Session
}

// Services groups the dependencies handed to NewRealServiceProvider.
type Services struct {
	Poller    *poller.Poller
	Tokens    TokenService
	Formatter format.Formatter
	Exporter  *export.SnapshotExporter
	Recorder  *history.Recorder
	Logs      component.LogSource
}

// RealServiceProvider implements ServiceProvider with real services
type RealServiceProvider struct {
	context  context.Context
	config   *config.Config
	logger   *zap.Logger
	services Services
	session  *Session
}

// NewRealServiceProvider creates a new real service provider. The session
// lives as long as the provider, so it survives a UI restart.
func NewRealServiceProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger, services Services) *RealServiceProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RealServiceProvider{
		context:  ctx,
		config:   cfg,
		logger:   logger.Named("ui"),
		services: services,
		session:  NewSession(),
	}
}

// GetContext returns the context
func (p *RealServiceProvider) GetContext() context.Context {
	return p.context
}

// GetLogger returns the logger
func (p *RealServiceProvider) GetLogger() *zap.Logger {
	return p.logger
}

// GetConfig returns the config
func (p *RealServiceProvider) GetConfig() *config.Config {
	return p.config
}

// GetPoller returns the snapshot poller
func (p *RealServiceProvider) GetPoller() *poller.Poller {
	return p.services.Poller
}

// GetTokenService returns the service used for add, delete and toggle
func (p *RealServiceProvider) GetTokenService() TokenService {
	return p.services.Tokens
}

// GetFormatter returns the cell formatter
func (p *RealServiceProvider) GetFormatter() format.Formatter {
	return p.services.Formatter
}

// GetExporter returns the snapshot exporter
func (p *RealServiceProvider) GetExporter() *export.SnapshotExporter {
	return p.services.Exporter
}

// GetRecorder returns the history recorder or nil
func (p *RealServiceProvider) GetRecorder() *history.Recorder {
	return p.services.Recorder
}

// GetLogSource returns the in-memory log buffer
func (p *RealServiceProvider) GetLogSource() component.LogSource {
	return p.services.Logs
}

// GetSession returns the shared dashboard session
func (p *RealServiceProvider) GetSession() *Session {
	return p.session
}
