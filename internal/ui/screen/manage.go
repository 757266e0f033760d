package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/token"
	"github.com/rovshanmuradov/token-monitor/internal/ui"
	"github.com/rovshanmuradov/token-monitor/internal/ui/component"
	"github.com/rovshanmuradov/token-monitor/internal/ui/router"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

var manageColumns = []format.Column{
	{Key: format.ColName, Header: "Token"},
	{Key: format.ColAddress, Header: "Address"},
	{Key: format.ColActive, Header: "Active"},
}

// ManageScreen lists the monitored tokens for deletion and toggling.
// Deletion asks for confirmation first.
type ManageScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	services  ui.ServiceProvider
	session   *ui.Session
	formatter format.Formatter
	tones     style.ToneStyles

	table   *component.Table
	helpBar *component.HelpBar

	tokens  []token.Token
	confirm *token.Token
	pending bool
	notice  notice

	titleStyle   lipgloss.Style
	confirmStyle lipgloss.Style
}

// NewManageScreen creates the token management screen
func NewManageScreen(services ui.ServiceProvider) *ManageScreen {
	keyMap := ui.DefaultKeyMap()
	palette := style.DefaultPalette()

	formatter := services.GetFormatter()
	formatter.ShortAddress = false

	s := &ManageScreen{
		keyMap:    keyMap,
		services:  services,
		session:   services.GetSession(),
		formatter: formatter,
		tones:     style.NewToneStyles(palette),
		table: component.NewTable().
			SetColumns(component.TokenColumns(manageColumns)).
			SetEmptyText("No tokens to manage"),
		helpBar: component.NewHelpBar().
			SetKeyBindings(keyMap.ContextualHelp(ui.RouteManage)),
		titleStyle: style.TitleStyle,
		confirmStyle: lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Warning).
			Padding(0, 1),
	}
	s.sync()
	return s
}

// Init initializes the screen
func (s *ManageScreen) Init() tea.Cmd {
	s.sync()
	return nil
}

// Update handles screen updates
func (s *ManageScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.TickMsg:
		s.notice.expire(msg.Time)

	case ui.PollResultMsg:
		s.sync()

	case ui.MutationResultMsg:
		if msg.Kind == ui.MutationAdd {
			return s, nil
		}
		s.pending = false
		s.notice.set(msg.Describe(), msg.Err != nil)

	case tea.KeyMsg:
		if s.confirm != nil {
			return s, s.handleConfirm(msg)
		}
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *ManageScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.Up):
		s.table.MoveUp()
	case key.Matches(msg, s.keyMap.Down):
		s.table.MoveDown()
	case key.Matches(msg, s.keyMap.Toggle):
		t, ok := s.selected()
		if !ok || s.pending {
			return nil
		}
		s.pending = true
		return ui.SetActiveCmd(s.services.GetContext(), s.services.GetTokenService(), t.Name, t.Address, !t.Active)
	case key.Matches(msg, s.keyMap.Delete):
		t, ok := s.selected()
		if !ok || s.pending {
			return nil
		}
		s.confirm = &t
	}
	return nil
}

func (s *ManageScreen) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.Confirm):
		t := *s.confirm
		s.confirm = nil
		s.pending = true
		return ui.DeleteTokenCmd(s.services.GetContext(), s.services.GetTokenService(), t.Name, t.Address)
	case key.Matches(msg, s.keyMap.Cancel):
		s.confirm = nil
	}
	return nil
}

func (s *ManageScreen) selected() (token.Token, bool) {
	row := s.table.GetSelectedRow()
	if row < 0 || row >= len(s.tokens) {
		return token.Token{}, false
	}
	return s.tokens[row], true
}

func (s *ManageScreen) sync() {
	selected := ""
	if t, ok := s.selected(); ok {
		selected = t.Address
	}
	s.tokens = s.session.Snapshot.Tokens
	s.table.SetRows(component.TokenRows(s.tokens, manageColumns, s.formatter, s.tones))
	if i := indexOf(s.tokens, selected); i >= 0 {
		s.table.SetSelectedRow(i)
	}
}

// SetSize updates the screen dimensions
func (s *ManageScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetSize(width-4, clampHeight(height-10, 5))
	s.helpBar.SetWidth(width)
}

// View renders the screen
func (s *ManageScreen) View() string {
	var b strings.Builder
	b.WriteString(s.titleStyle.Render("⚙ Manage Tokens"))
	b.WriteString("\n")
	b.WriteString(s.table.View())
	b.WriteString("\n")

	switch {
	case s.confirm != nil:
		label := s.confirm.Name
		if label == "" {
			label = s.confirm.Address
		}
		b.WriteString(s.confirmStyle.Render(fmt.Sprintf("Delete %s? (y/n)", label)))
	case s.pending:
		b.WriteString(style.InfoStyle.Render("Working..."))
	case s.notice.text != "":
		b.WriteString(s.notice.view())
	}
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())

	return style.ContainerStyle.Render(b.String())
}
