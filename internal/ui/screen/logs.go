package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/token-monitor/internal/ui"
	"github.com/rovshanmuradov/token-monitor/internal/ui/component"
	"github.com/rovshanmuradov/token-monitor/internal/ui/router"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// logTail is how many buffered entries the screen loads.
const logTail = 500

// LogsScreen shows the in-memory log buffer, refreshed every tick.
type LogsScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	viewer  *component.LogViewer
	helpBar *component.HelpBar
}

// NewLogsScreen creates the logs screen
func NewLogsScreen(services ui.ServiceProvider) *LogsScreen {
	keyMap := ui.DefaultKeyMap()
	return &LogsScreen{
		keyMap: keyMap,
		viewer: component.NewLogViewer(services.GetLogSource(), logTail),
		helpBar: component.NewHelpBar().
			SetKeyBindings(keyMap.ContextualHelp(ui.RouteLogs)),
	}
}

// Init loads the current buffer
func (s *LogsScreen) Init() tea.Cmd {
	s.viewer.Refresh()
	return nil
}

// Update handles screen updates
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.TickMsg:
		s.viewer.Refresh()
		return s, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.FilterDebug):
			s.viewer.ToggleLogLevel("debug")
			return s, nil
		case key.Matches(msg, s.keyMap.FilterInfo):
			s.viewer.ToggleLogLevel("info")
			return s, nil
		case key.Matches(msg, s.keyMap.FilterWarn):
			s.viewer.ToggleLogLevel("warn")
			return s, nil
		case key.Matches(msg, s.keyMap.FilterError):
			s.viewer.ToggleLogLevel("error")
			return s, nil
		}
	}
	return s, s.viewer.Update(msg)
}

// SetSize updates the screen dimensions
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewer.SetSize(width-4, clampHeight(height-9, 3))
	s.helpBar.SetWidth(width)
}

// View renders the screen
func (s *LogsScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("📜 Logs"))
	b.WriteString("\n")
	status := s.viewer.GetFilterStatus()
	if totals := s.viewer.Totals(); totals != "" {
		status += " | " + totals
	}
	b.WriteString(style.MutedStyle.Render(status))
	b.WriteString("\n\n")
	b.WriteString(s.viewer.View())
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())
	return style.ContainerStyle.Render(b.String())
}
