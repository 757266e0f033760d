package screen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/export"
	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/token"
	"github.com/rovshanmuradov/token-monitor/internal/ui"
	"github.com/rovshanmuradov/token-monitor/internal/ui/component"
	"github.com/rovshanmuradov/token-monitor/internal/ui/router"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// narrowWidth is the terminal width below which addresses are shortened.
const narrowWidth = 140

// DashboardScreen is the root screen: status header, token table and an
// optional details pane for the selected token.
type DashboardScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	services  ui.ServiceProvider
	session   *ui.Session
	formatter format.Formatter
	tones     style.ToneStyles
	logger    *zap.Logger

	// UI components
	header  *component.StatusHeader
	table   *component.Table
	details *component.TokenDetails
	helpBar *component.HelpBar

	// State
	columns     []format.Column
	tokens      []token.Token
	showDetails bool
	notice      notice

	titleStyle   lipgloss.Style
	warningStyle lipgloss.Style
}

// NewDashboardScreen creates the dashboard
func NewDashboardScreen(services ui.ServiceProvider) *DashboardScreen {
	keyMap := ui.DefaultKeyMap()
	cfg := services.GetConfig()

	s := &DashboardScreen{
		keyMap:    keyMap,
		services:  services,
		session:   services.GetSession(),
		formatter: services.GetFormatter(),
		tones:     style.NewToneStyles(style.DefaultPalette()),
		logger:    services.GetLogger().Named("dashboard"),

		header: component.NewStatusHeader(cfg.Location()),
		table: component.NewTable().
			SetShowBorder(true).
			SetSelectable(true).
			SetEmptyText("Loading tokens..."),
		details: component.NewTokenDetails(services.GetFormatter()),
		helpBar: component.NewHelpBar().
			SetKeyBindings(keyMap.ContextualHelp(ui.RouteDashboard)),

		titleStyle:   style.TitleStyle,
		warningStyle: style.WarningStyle,
	}
	s.sync()
	return s
}

// Init refreshes the view from the session; the dashboard is
// re-initialised whenever a screen above it is popped.
func (s *DashboardScreen) Init() tea.Cmd {
	s.sync()
	return nil
}

// Update handles screen updates
func (s *DashboardScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.TickMsg:
		s.notice.expire(msg.Time)
		s.syncHeader()

	case ui.PollResultMsg:
		s.sync()
		if msg.Forced && msg.Result.Err == nil {
			s.notice.set(fmt.Sprintf("Refreshed %d tokens", msg.Result.Snapshot.Len()), false)
		}

	case ui.ExportResultMsg:
		if msg.Err != nil {
			s.notice.set("Export failed: "+describeExportError(msg.Err), true)
		} else {
			s.notice.set("Exported to "+msg.Path, false)
		}

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *DashboardScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.Up):
		s.table.MoveUp()
		s.syncDetails()
	case key.Matches(msg, s.keyMap.Down):
		s.table.MoveDown()
		s.syncDetails()
	case key.Matches(msg, s.keyMap.Details):
		s.showDetails = !s.showDetails
		s.syncDetails()
		s.resize()
	case key.Matches(msg, s.keyMap.AddToken):
		return ui.Navigate(ui.RouteAddToken)
	case key.Matches(msg, s.keyMap.Manage):
		return ui.Navigate(ui.RouteManage)
	case key.Matches(msg, s.keyMap.QuickRef):
		return ui.Navigate(ui.RouteQuickRef)
	case key.Matches(msg, s.keyMap.Logs):
		return ui.Navigate(ui.RouteLogs)
	case key.Matches(msg, s.keyMap.Refresh):
		return func() tea.Msg { return ui.RefreshRequestMsg{} }
	case key.Matches(msg, s.keyMap.Export):
		return s.export(export.FormatCSV)
	case key.Matches(msg, s.keyMap.ExportJSON):
		return s.export(export.FormatJSON)
	}
	return nil
}

func (s *DashboardScreen) export(f export.ExportFormat) tea.Cmd {
	if !s.session.HasData {
		s.notice.set("Nothing to export yet", true)
		return nil
	}
	exporter := s.services.GetExporter()
	if exporter == nil {
		s.notice.set("Export is not configured", true)
		return nil
	}
	s.logger.Debug("Exporting snapshot", zap.String("format", string(f)))
	return ui.ExportCmd(exporter, s.session.Snapshot, export.ExportOptions{
		Format:    f,
		OutputDir: s.services.GetConfig().ExportDir,
	})
}

// sync rebuilds the table from the session, keeping the cursor on the
// same token when it is still listed.
func (s *DashboardScreen) sync() {
	selected := ""
	if row := s.table.GetSelectedRow(); row >= 0 && row < len(s.tokens) {
		selected = s.tokens[row].Address
	}

	snap := s.session.Snapshot
	s.tokens = snap.Tokens
	s.columns = format.Columns(snap.Columns)

	f := s.formatter
	f.ShortAddress = s.narrow()
	s.table.SetColumns(component.TokenColumns(s.columns))
	s.table.SetRows(component.TokenRows(s.tokens, s.columns, f, s.tones))
	if s.session.HasData {
		s.table.SetEmptyText("No tokens are being monitored. Press a to add one.")
	}
	if i := indexOf(s.tokens, selected); i >= 0 {
		s.table.SetSelectedRow(i)
	}

	s.syncHeader()
	s.syncDetails()
}

func (s *DashboardScreen) syncHeader() {
	snap := s.session.Snapshot
	status := component.FetchStatus{
		Tokens:      snap.Len(),
		Active:      snap.ActiveCount(),
		LastRefresh: s.session.LastRefresh,
		InFlight:    s.session.InFlight,
		Failures:    s.session.Failures,
		Restarts:    s.session.Restarts,
	}
	if p := s.services.GetPoller(); p != nil {
		status.NextRefresh = p.NextRefresh()
	}
	if cfg := s.services.GetConfig(); cfg != nil {
		status.Source = cfg.APIBaseURL
	}
	s.header.SetStatus(status)
}

func (s *DashboardScreen) syncDetails() {
	if !s.showDetails {
		return
	}
	row := s.table.GetSelectedRow()
	if row < 0 || row >= len(s.tokens) {
		s.details.SetToken(nil, nil, nil)
		return
	}
	t := s.tokens[row]
	s.details.SetToken(&t, s.columns, s.session.Trend(t.Address))
}

// SetSize updates the screen dimensions
func (s *DashboardScreen) SetSize(width, height int) {
	wasNarrow := s.narrow()
	s.width = width
	s.height = height
	s.resize()
	if wasNarrow != s.narrow() {
		s.sync()
	}
}

func (s *DashboardScreen) narrow() bool {
	return s.width > 0 && s.width < narrowWidth
}

func (s *DashboardScreen) resize() {
	s.header.SetWidth(s.width)
	s.helpBar.SetWidth(s.width)

	tableWidth := s.width - 2
	if s.showDetails && s.width >= 80 {
		tableWidth = s.width * 3 / 5
		s.details.SetWidth(s.width - tableWidth - 2)
	} else {
		s.details.SetWidth(s.width - 2)
	}
	// title, header, notice and help bar
	s.table.SetSize(tableWidth, clampHeight(s.height-12, 5))
}

// View renders the dashboard
func (s *DashboardScreen) View() string {
	var b strings.Builder

	b.WriteString(s.titleStyle.Render("📈 Token Monitor"))
	b.WriteString("\n")
	b.WriteString(s.header.View())
	b.WriteString("\n")

	if line := s.statusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	body := s.table.View()
	if s.showDetails {
		body = style.AdaptiveJoinHorizontal(s.width, body, s.details.View())
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())

	return b.String()
}

// statusLine prefers the latest user-facing notice over a fetch error.
func (s *DashboardScreen) statusLine() string {
	if s.notice.text != "" {
		return s.notice.view()
	}
	if err := s.session.LastErr; err != nil {
		msg := "Fetch failed: " + err.Error()
		if s.session.HasData {
			msg += " (showing last data)"
		}
		return s.warningStyle.Render("⚠ " + msg)
	}
	return ""
}

func describeExportError(err error) string {
	if errors.Is(err, export.ErrNothingToExport) {
		return "no tokens match"
	}
	return err.Error()
}
