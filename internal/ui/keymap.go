package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// Dashboard
	AddToken   key.Binding
	Manage     key.Binding
	QuickRef   key.Binding
	Refresh    key.Binding
	Export     key.Binding
	ExportJSON key.Binding
	Logs       key.Binding
	Details    key.Binding

	// Form
	Submit key.Binding

	// Token management
	Delete  key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// Logs
	FilterDebug key.Binding
	FilterInfo  key.Binding
	FilterWarn  key.Binding
	FilterError key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),

		AddToken: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add token"),
		),
		Manage: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manage"),
		),
		QuickRef: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quick reference"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "refresh"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export json"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L", "f12"),
			key.WithHelp("L", "logs"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "submit"),
		),

		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle active"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "cancel"),
		),

		FilterDebug: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "debug"),
		),
		FilterInfo: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "info"),
		),
		FilterWarn: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "warn"),
		),
		FilterError: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "error"),
		),
	}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteDashboard:
		return []key.Binding{k.Up, k.Down, k.Details, k.AddToken, k.Manage, k.QuickRef, k.Refresh, k.Export, k.ExportJSON, k.Logs, k.Quit}
	case RouteAddToken:
		return []key.Binding{k.Tab, k.ShiftTab, k.Submit, k.Back, k.Quit}
	case RouteManage:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Delete, k.Back, k.Quit}
	case RouteQuickRef:
		return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
	case RouteLogs:
		return []key.Binding{k.FilterDebug, k.FilterInfo, k.FilterWarn, k.FilterError, k.Up, k.Down, k.Back, k.Quit}
	default:
		return []key.Binding{k.Back, k.Quit}
	}
}
