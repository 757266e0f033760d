package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/token-monitor/internal/export"
	"github.com/rovshanmuradov/token-monitor/internal/poller"
	"github.com/rovshanmuradov/token-monitor/internal/token"
)

// TickCmd schedules the next render cycle.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// PollCmd runs one poll cycle off the update loop. forced skips the
// staleness check.
func PollCmd(ctx context.Context, p *poller.Poller, forced bool) tea.Cmd {
	return func() tea.Msg {
		var res poller.Result
		if forced {
			res = p.Refresh(ctx)
		} else {
			res = p.Poll(ctx)
		}
		return PollResultMsg{Result: res, Forced: forced}
	}
}

// AddTokenCmd submits a new token.
func AddTokenCmd(ctx context.Context, svc TokenService, name, address string) tea.Cmd {
	return func() tea.Msg {
		err := svc.AddToken(ctx, name, address)
		return MutationResultMsg{Kind: MutationAdd, Name: name, Address: address, Err: err}
	}
}

// DeleteTokenCmd removes a token. name is only used for the result message.
func DeleteTokenCmd(ctx context.Context, svc TokenService, name, address string) tea.Cmd {
	return func() tea.Msg {
		err := svc.DeleteToken(ctx, address)
		return MutationResultMsg{Kind: MutationDelete, Name: name, Address: address, Err: err}
	}
}

// SetActiveCmd switches a token on or off.
func SetActiveCmd(ctx context.Context, svc TokenService, name, address string, active bool) tea.Cmd {
	return func() tea.Msg {
		err := svc.SetActive(ctx, address, active)
		return MutationResultMsg{Kind: MutationToggle, Name: name, Address: address, Active: active, Err: err}
	}
}

// ExportCmd writes snap to the export directory.
func ExportCmd(exporter *export.SnapshotExporter, snap token.Snapshot, opts export.ExportOptions) tea.Cmd {
	return func() tea.Msg {
		path, err := exporter.Export(snap, opts)
		return ExportResultMsg{Path: path, Err: err}
	}
}
