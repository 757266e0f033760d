package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/token-monitor/internal/ui"
	"github.com/rovshanmuradov/token-monitor/internal/ui/component"
	"github.com/rovshanmuradov/token-monitor/internal/ui/router"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// QuickRefScreen lists name and full address pairs for copy-paste.
type QuickRefScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	session *ui.Session
	table   *component.Table
	helpBar *component.HelpBar
}

// NewQuickRefScreen creates the quick reference screen
func NewQuickRefScreen(services ui.ServiceProvider) *QuickRefScreen {
	keyMap := ui.DefaultKeyMap()
	s := &QuickRefScreen{
		keyMap:  keyMap,
		session: services.GetSession(),
		table: component.NewTable().
			SetColumns([]component.TableColumn{{Header: "Token"}, {Header: "Address"}}).
			SetShowBorder(false).
			SetEmptyText("No tokens yet"),
		helpBar: component.NewHelpBar().
			SetKeyBindings(keyMap.ContextualHelp(ui.RouteQuickRef)),
	}
	s.sync()
	return s
}

// Init initializes the screen
func (s *QuickRefScreen) Init() tea.Cmd {
	s.sync()
	return nil
}

// Update handles screen updates
func (s *QuickRefScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.PollResultMsg:
		s.sync()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Up):
			s.table.MoveUp()
		case key.Matches(msg, s.keyMap.Down):
			s.table.MoveDown()
		}
	}
	return s, nil
}

func (s *QuickRefScreen) sync() {
	tokens := s.session.Snapshot.Tokens
	rows := make([][]string, len(tokens))
	for i, t := range tokens {
		rows[i] = []string{t.Name, t.Address}
	}
	s.table.SetTextRows(rows)
}

// SetSize updates the screen dimensions
func (s *QuickRefScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetSize(width-4, clampHeight(height-8, 5))
	s.helpBar.SetWidth(width)
}

// View renders the screen
func (s *QuickRefScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("📋 Quick Reference"))
	b.WriteString("\n")
	b.WriteString(style.MutedStyle.Render(fmt.Sprintf("%d tokens", s.table.GetRowCount())))
	b.WriteString("\n\n")
	b.WriteString(s.table.View())
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())
	return style.ContainerStyle.Render(b.String())
}
