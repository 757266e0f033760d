package screen

import (
	"errors"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/token-monitor/internal/ui"
)

func TestDashboardRendersSnapshot(t *testing.T) {
	env := newTestEnv(t)
	s := NewDashboardScreen(env.services)
	s.SetSize(200, 50)

	assert.Contains(t, s.View(), "Loading tokens")

	msg := env.poll(false)
	s.Update(msg)

	view := s.View()
	assert.Contains(t, view, "Bonk")
	assert.Contains(t, view, "EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm")
	assert.Contains(t, view, "$1.5000")
	assert.Contains(t, view, "+4.25%")
	assert.Contains(t, view, "RSI 1m")
	assert.NotContains(t, view, "RSI 1h")
	assert.Contains(t, view, "2 (1 active)")
}

func TestDashboardShortensAddressesWhenNarrow(t *testing.T) {
	env := newTestEnv(t)
	env.poll(false)
	s := NewDashboardScreen(env.services)
	s.SetSize(100, 40)

	assert.NotContains(t, s.View(), "EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm")
}

func TestDashboardShowsFetchErrorAndKeepsData(t *testing.T) {
	env := newTestEnv(t)
	env.poll(false)
	s := NewDashboardScreen(env.services)
	s.SetSize(200, 50)

	env.fetcher.err = errors.New("connection refused")
	s.Update(env.poll(true))

	view := s.View()
	assert.Contains(t, view, "Fetch failed: connection refused")
	assert.Contains(t, view, "showing last data")
	assert.Contains(t, view, "Bonk")
	assert.Contains(t, view, "retrying")
}

func TestDashboardNavigationKeys(t *testing.T) {
	env := newTestEnv(t)
	s := NewDashboardScreen(env.services)

	cases := map[string]ui.Route{
		"a": ui.RouteAddToken,
		"m": ui.RouteManage,
		"q": ui.RouteQuickRef,
		"L": ui.RouteLogs,
	}
	for k, route := range cases {
		_, cmd := s.Update(keyRunes(k))
		require.NotNil(t, cmd, k)
		assert.Equal(t, ui.RouterMsg{To: route}, cmd(), k)
	}

	_, cmd := s.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RefreshRequestMsg{}, cmd())
}

func TestDashboardExport(t *testing.T) {
	env := newTestEnv(t)
	s := NewDashboardScreen(env.services)
	s.SetSize(200, 50)

	_, cmd := s.Update(keyRunes("e"))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(), "Nothing to export yet")

	s.Update(env.poll(false))
	_, cmd = s.Update(keyRunes("E"))
	require.NotNil(t, cmd)

	res, ok := cmd().(ui.ExportResultMsg)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.FileExists(t, res.Path)
	assert.Contains(t, res.Path, env.cfg.ExportDir)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Bonk"`)

	s.Update(res)
	assert.Contains(t, s.View(), "Exported to")
}

func TestDashboardNoticeExpires(t *testing.T) {
	env := newTestEnv(t)
	s := NewDashboardScreen(env.services)
	s.SetSize(200, 50)

	s.Update(env.poll(true))
	assert.Contains(t, s.View(), "Refreshed 2 tokens")

	s.Update(ui.TickMsg{Time: time.Now().Add(noticeTTL + time.Second)})
	assert.NotContains(t, s.View(), "Refreshed 2 tokens")
}

func TestDashboardDetailsPane(t *testing.T) {
	env := newTestEnv(t)
	env.poll(false)
	s := NewDashboardScreen(env.services)
	s.SetSize(200, 50)

	s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := s.View()
	assert.Contains(t, view, "Trend")
	assert.Contains(t, view, "builds up with each refresh")

	// The cursor follows the token across refreshes.
	s.Update(env.poll(true))
	assert.Equal(t, 1, s.table.GetSelectedRow())
}

func TestDashboardShowsRestartCount(t *testing.T) {
	env := newTestEnv(t)
	s := NewDashboardScreen(env.services)
	s.SetSize(200, 50)
	s.Update(env.poll(false))
	assert.NotContains(t, s.View(), "UI restarted")

	env.services.GetSession().Restarts = 2
	s.Update(ui.TickMsg{Time: time.Now()})
	assert.Contains(t, s.View(), "UI restarted 2x")
}
