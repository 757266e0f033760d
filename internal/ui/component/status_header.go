package component

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// FetchStatus is what the header knows about the polling loop.
type FetchStatus struct {
	Tokens      int
	Active      int
	LastRefresh time.Time // zero until the first successful fetch
	NextRefresh time.Duration
	InFlight    bool
	Failures    uint64
	Restarts    int
	Source      string
}

// StatusHeader is the one-line summary above the token table
type StatusHeader struct {
	status   FetchStatus
	location *time.Location
	styles   style.HeaderStyles
	width    int
}

// NewStatusHeader creates a new status header component
func NewStatusHeader(loc *time.Location) *StatusHeader {
	if loc == nil {
		loc = time.UTC
	}
	return &StatusHeader{
		location: loc,
		styles:   style.NewHeaderStyles(style.DefaultPalette()),
	}
}

// SetStatus updates the displayed fetch status
func (sh *StatusHeader) SetStatus(status FetchStatus) {
	sh.status = status
}

// SetWidth sets the component width for responsive layout
func (sh *StatusHeader) SetWidth(width int) {
	sh.width = width
}

// View renders the status header
func (sh *StatusHeader) View() string {
	s := sh.styles
	sep := s.Label.Render(" | ")

	parts := []string{
		s.Title.Render("Token Monitor"),
		s.Label.Render("tokens ") + s.Value.Render(fmt.Sprintf("%d (%d active)", sh.status.Tokens, sh.status.Active)),
		s.Label.Render("updated ") + s.Value.Render(sh.lastRefresh()),
		sh.renderFetchState(),
	}
	if sh.status.Restarts > 0 {
		parts = append(parts, s.FetchBad.Render(fmt.Sprintf("UI restarted %dx", sh.status.Restarts)))
	}
	if sh.status.Source != "" && sh.width >= 100 {
		parts = append(parts, s.Label.Render(sh.status.Source))
	}

	content := parts[0]
	for _, p := range parts[1:] {
		content = lipgloss.JoinHorizontal(lipgloss.Left, content, sep, p)
	}

	container := s.Container
	if sh.width > 4 {
		container = container.Width(sh.width - 2)
	}
	return container.Render(content)
}

func (sh *StatusHeader) lastRefresh() string {
	if sh.status.LastRefresh.IsZero() {
		return "never"
	}
	return sh.status.LastRefresh.In(sh.location).Format(format.TimestampLayout)
}

func (sh *StatusHeader) renderFetchState() string {
	s := sh.styles
	switch {
	case sh.status.InFlight:
		return s.Fetching.Render("● fetching...")
	case sh.status.Failures > 0:
		return s.FetchBad.Render(fmt.Sprintf("● fetch failed (%d), retrying", sh.status.Failures))
	default:
		return s.FetchOK.Render("● next refresh in " + countdown(sh.status.NextRefresh))
	}
}

func countdown(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}
