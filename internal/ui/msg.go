package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/token-monitor/internal/poller"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// BackMsg asks the router to pop the current screen.
type BackMsg struct{}

// TickMsg re-enters the render cycle.
type TickMsg struct {
	Time time.Time
}

// RefreshRequestMsg asks for a fetch regardless of staleness.
type RefreshRequestMsg struct{}

// PollResultMsg carries the outcome of one poll cycle.
type PollResultMsg struct {
	Result poller.Result
	Forced bool
}

// MutationKind names a change sent to the token service.
type MutationKind int

const (
	MutationAdd MutationKind = iota
	MutationDelete
	MutationToggle
)

func (k MutationKind) String() string {
	switch k {
	case MutationAdd:
		return "add"
	case MutationDelete:
		return "delete"
	case MutationToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// MutationResultMsg reports an add, delete or toggle.
type MutationResultMsg struct {
	Kind    MutationKind
	Name    string
	Address string
	Active  bool // requested state for toggles
	Err     error
}

// Describe renders the inline message shown after the mutation.
func (m MutationResultMsg) Describe() string {
	label := m.Name
	if label == "" {
		label = m.Address
	}
	if m.Err != nil {
		return "Failed to " + m.Kind.String() + " " + label + ": " + m.Err.Error()
	}
	switch m.Kind {
	case MutationAdd:
		return "Added " + label
	case MutationDelete:
		return "Deleted " + label
	default:
		if m.Active {
			return "Activated " + label
		}
		return "Deactivated " + label
	}
}

// ExportResultMsg reports where the snapshot was written.
type ExportResultMsg struct {
	Path string
	Err  error
}

// Navigate returns a command that switches to route.
func Navigate(route Route) tea.Cmd {
	return func() tea.Msg {
		return RouterMsg{To: route}
	}
}

// Back returns a command that pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg {
		return BackMsg{}
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteDashboard Route = iota
	RouteAddToken
	RouteManage
	RouteQuickRef
	RouteLogs
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteDashboard:
		return "dashboard"
	case RouteAddToken:
		return "add_token"
	case RouteManage:
		return "manage"
	case RouteQuickRef:
		return "quick_reference"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
