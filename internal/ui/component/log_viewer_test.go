package component

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/logger"
)

type staticLogs []logger.LogEntry

func (s staticLogs) GetRecentLogs(int) []logger.LogEntry { return s }

func TestLogViewerTotals(t *testing.T) {
	buffer, err := logger.NewLogBuffer(2, filepath.Join(t.TempDir(), "tui.log"), zap.NewNop())
	require.NoError(t, err)
	defer buffer.Close()

	viewer := NewLogViewer(buffer, 10)
	assert.Equal(t, "0 logged", viewer.Totals())

	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, buffer.Add("info", msg, nil))
	}
	assert.Equal(t, "3 logged, 1 older in the log file", viewer.Totals())

	viewer.Refresh()
	assert.Equal(t, 2, viewer.Shown())
}

func TestLogViewerTotalsWithoutCounts(t *testing.T) {
	viewer := NewLogViewer(staticLogs{{Level: "info", Message: "hello"}}, 10)
	assert.Empty(t, viewer.Totals())

	viewer.Refresh()
	assert.Equal(t, 1, viewer.Shown())
}
