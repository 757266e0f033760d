package screen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/token-monitor/internal/ui"
)

func TestLogsScreenFollowsBuffer(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.logs.Add("info", "Tokens fetched", map[string]interface{}{"count": 2}))

	s := NewLogsScreen(env.services)
	s.SetSize(120, 40)
	s.Init()
	assert.Contains(t, s.View(), "Tokens fetched")

	require.NoError(t, env.logs.Add("error", "Fetch failed", nil))
	assert.NotContains(t, s.View(), "Fetch failed")
	s.Update(ui.TickMsg{Time: time.Now()})
	assert.Contains(t, s.View(), "Fetch failed")
	assert.Equal(t, 2, s.viewer.Shown())
	assert.Contains(t, s.View(), "2 logged")

	// 2 toggles info off.
	s.Update(keyRunes("2"))
	assert.Equal(t, 1, s.viewer.Shown())
	assert.Contains(t, s.View(), "showing error, warn")
}
