package main

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/config"
	"github.com/rovshanmuradov/token-monitor/internal/ui"
	"github.com/rovshanmuradov/token-monitor/internal/ui/router"
	"github.com/rovshanmuradov/token-monitor/internal/ui/screen"
)

// AppModel represents the main TUI application model. It owns the poll
// loop so fetching continues whichever screen is on top.
type AppModel struct {
	services ui.ServiceProvider
	session  *ui.Session
	router   *router.Router
	keyMap   ui.KeyMap
	logger   *zap.Logger
	tick     time.Duration

	// refetch is set when a mutation lands while a fetch is in flight;
	// that fetch may predate the change.
	refetch bool

	width  int
	height int
}

// NewAppModel creates a new application model
func NewAppModel(services ui.ServiceProvider) *AppModel {
	tick := config.DefaultTickInterval
	if cfg := services.GetConfig(); cfg != nil && cfg.TickInterval > 0 {
		tick = cfg.TickInterval
	}

	// The session outlives a crashed program. A poll that program dispatched
	// never reports back, so its in-flight mark is dropped here.
	session := services.GetSession()
	session.InFlight = false

	return &AppModel{
		services: services,
		session:  session,
		router:   router.New(screen.NewDashboardScreen(services)),
		keyMap:   ui.DefaultKeyMap(),
		logger:   services.GetLogger().Named("app"),
		tick:     tick,
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		ui.TickCmd(m.tick),
		m.startPoll(false),
	)
}

// startPoll dispatches a poll unless one is already running.
func (m *AppModel) startPoll(forced bool) tea.Cmd {
	if m.session.InFlight {
		return nil
	}
	m.session.InFlight = true
	return ui.PollCmd(m.services.GetContext(), m.services.GetPoller(), forced)
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Quit) {
			return m, tea.Quit
		}

	case ui.RouterMsg:
		// Handle navigation requests
		return m, m.handleNavigation(msg.To)

	case ui.TickMsg:
		cmds = append(cmds, ui.TickCmd(m.tick))
		if m.services.GetPoller().Due() {
			cmds = append(cmds, m.startPoll(false))
		}

	case ui.RefreshRequestMsg:
		return m, m.startPoll(true)

	case ui.PollResultMsg:
		m.session.Apply(msg.Result)
		if msg.Result.Refreshed {
			m.record(msg)
		}
		if m.refetch {
			m.refetch = false
			m.services.GetPoller().Invalidate()
			cmds = append(cmds, m.startPoll(false))
		}

	case ui.MutationResultMsg:
		if msg.Err == nil {
			if m.session.InFlight {
				m.refetch = true
			} else {
				m.services.GetPoller().Invalidate()
				cmds = append(cmds, m.startPoll(false))
			}
		}
	}

	// Forward to the router
	updatedRouter, cmd := m.router.Update(msg)
	m.router = updatedRouter.(*router.Router)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *AppModel) record(msg ui.PollResultMsg) {
	recorder := m.services.GetRecorder()
	if recorder == nil {
		return
	}
	if _, err := recorder.Record(msg.Result.Snapshot); err != nil {
		m.logger.Warn("Failed to record history", zap.Error(err))
	}
}

// handleNavigation handles navigation to different screens
func (m *AppModel) handleNavigation(route ui.Route) tea.Cmd {
	var newScreen router.Screen

	switch route {
	case ui.RouteDashboard:
		return m.router.Clear()
	case ui.RouteAddToken:
		newScreen = screen.NewAddTokenScreen(m.services)
	case ui.RouteManage:
		newScreen = screen.NewManageScreen(m.services)
	case ui.RouteQuickRef:
		newScreen = screen.NewQuickRefScreen(m.services)
	case ui.RouteLogs:
		newScreen = screen.NewLogsScreen(m.services)
	default:
		m.logger.Debug("Unknown route", zap.Stringer("route", route))
		return nil
	}

	return m.router.Push(route, newScreen)
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	return m.router.View()
}
