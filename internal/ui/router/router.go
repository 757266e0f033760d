package router

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/token-monitor/internal/ui"
)

// Screen represents a screen that can be navigated to
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

type entry struct {
	route  ui.Route
	screen Screen
}

// Router keeps a stack of screens. Only the top screen receives messages;
// the root screen (the dashboard) is never popped.
type Router struct {
	stack  []entry
	width  int
	height int
}

// New creates a router whose root is the dashboard.
func New(root Screen) *Router {
	return &Router{
		stack: []entry{{route: ui.RouteDashboard, screen: root}},
	}
}

func (r *Router) top() Screen {
	return r.stack[len(r.stack)-1].screen
}

// Init initializes the top screen
func (r *Router) Init() tea.Cmd {
	return r.top().Init()
}

// Update handles back navigation and resizes, and hands everything else to
// the top screen. Route changes are resolved by the application model,
// which knows how to build screens.
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.BackMsg:
		return r, r.Pop()

	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && len(r.stack) > 1 {
			return r, r.Pop()
		}
	}

	updated, cmd := r.top().Update(msg)
	r.stack[len(r.stack)-1].screen = updated
	return r, cmd
}

// View renders the top screen
func (r *Router) View() string {
	return r.top().View()
}

// SetSize records the terminal size and passes it to the top screen.
// Screens further down get it when they are revealed.
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.top().SetSize(width, height)
}

// Push opens screen for route on top of the stack. If route is already
// open the stack is unwound to it instead, so a repeated key press does
// not stack duplicate screens.
func (r *Router) Push(route ui.Route, screen Screen) tea.Cmd {
	if i := r.find(route); i >= 0 {
		return r.unwind(i + 1)
	}
	screen.SetSize(r.width, r.height)
	r.stack = append(r.stack, entry{route: route, screen: screen})
	return screen.Init()
}

// Pop closes the top screen and re-initialises the one below it.
func (r *Router) Pop() tea.Cmd {
	return r.unwind(len(r.stack) - 1)
}

// Clear returns to the root screen.
func (r *Router) Clear() tea.Cmd {
	return r.unwind(1)
}

// Current returns the top screen
func (r *Router) Current() Screen {
	return r.top()
}

// Route returns the route of the top screen.
func (r *Router) Route() ui.Route {
	return r.stack[len(r.stack)-1].route
}

// Depth returns the current navigation depth
func (r *Router) Depth() int {
	return len(r.stack)
}

func (r *Router) find(route ui.Route) int {
	for i, e := range r.stack {
		if e.route == route {
			return i
		}
	}
	return -1
}

// unwind truncates the stack to depth screens. The revealed screen is
// resized and re-initialised so it picks up changes made while covered.
func (r *Router) unwind(depth int) tea.Cmd {
	if depth < 1 || depth >= len(r.stack) {
		return nil
	}
	r.stack = r.stack[:depth]
	revealed := r.top()
	revealed.SetSize(r.width, r.height)
	return revealed.Init()
}
