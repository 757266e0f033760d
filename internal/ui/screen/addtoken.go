package screen

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-monitor/internal/token"
	"github.com/rovshanmuradov/token-monitor/internal/ui"
	"github.com/rovshanmuradov/token-monitor/internal/ui/component"
	"github.com/rovshanmuradov/token-monitor/internal/ui/router"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

const (
	fieldName    = "name"
	fieldAddress = "address"
)

// AddTokenScreen submits a new token to the service. The form clears on
// success and keeps its values on failure so the user can correct them.
type AddTokenScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	services ui.ServiceProvider
	format   token.AddressFormat

	form    *component.Form
	helpBar *component.HelpBar

	submitting bool
	notice     notice

	titleStyle lipgloss.Style
	infoStyle  lipgloss.Style
}

// NewAddTokenScreen creates the add token form
func NewAddTokenScreen(services ui.ServiceProvider) *AddTokenScreen {
	keyMap := ui.DefaultKeyMap()
	addrFormat := services.GetConfig().Addresses()

	form := component.NewForm().
		AddField(fieldName, "Token name", true, "e.g. BONK").
		AddField(fieldAddress, "Token address", true, "mint address").
		SetFieldValidation(fieldAddress, func(v string) error {
			return token.ValidateAddress(addrFormat, v)
		})

	return &AddTokenScreen{
		keyMap:   keyMap,
		services: services,
		format:   addrFormat,
		form:     form,
		helpBar: component.NewHelpBar().
			SetKeyBindings(keyMap.ContextualHelp(ui.RouteAddToken)),
		titleStyle: style.TitleStyle,
		infoStyle:  style.MutedStyle,
	}
}

// Init starts the cursor blink
func (s *AddTokenScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update handles screen updates
func (s *AddTokenScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.TickMsg:
		s.notice.expire(msg.Time)
		return s, nil

	case component.FormSubmitMsg:
		return s, s.submit()

	case ui.MutationResultMsg:
		if msg.Kind != ui.MutationAdd {
			return s, nil
		}
		s.submitting = false
		s.form.SetDisabled(false)
		if msg.Err != nil {
			s.notice.set(msg.Describe(), true)
			return s, nil
		}
		s.form.Reset()
		s.notice.set(msg.Describe(), false)
		return s, s.form.Init()
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *AddTokenScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.notice.clear()
	if !s.form.Validate() {
		return nil
	}

	name := s.form.GetValue(fieldName)
	address := s.form.GetValue(fieldAddress)
	if err := token.ValidateNew(s.format, name, address); err != nil {
		s.notice.set(err.Error(), true)
		return nil
	}

	s.submitting = true
	s.form.SetDisabled(true)
	return ui.AddTokenCmd(s.services.GetContext(), s.services.GetTokenService(), name, address)
}

// SetSize updates the screen dimensions
func (s *AddTokenScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetSize(width, height)
	s.helpBar.SetWidth(width)
}

// View renders the form
func (s *AddTokenScreen) View() string {
	var b strings.Builder
	b.WriteString(s.titleStyle.Render("➕ Add Token"))
	b.WriteString("\n")
	if s.format == token.AddressSolana {
		b.WriteString(s.infoStyle.Render("Addresses must be base58 Solana public keys."))
		b.WriteString("\n\n")
	}

	b.WriteString(s.form.View())
	b.WriteString("\n")

	switch {
	case s.submitting:
		b.WriteString(style.InfoStyle.Render("Submitting..."))
	case s.notice.text != "":
		b.WriteString(s.notice.view())
	}
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())

	return style.ContainerStyle.Render(b.String())
}
