package ui

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockModel is a test UI model
type mockModel struct {
	quitOnInit  bool
	panicOnView bool
	updateCount int32
}

func (m *mockModel) Init() tea.Cmd {
	if m.quitOnInit {
		return tea.Quit
	}
	return nil
}

func (m *mockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	atomic.AddInt32(&m.updateCount, 1)
	if _, ok := msg.(string); ok {
		panic("update panic test")
	}
	return m, nil
}

func (m *mockModel) View() string {
	if m.panicOnView {
		panic("view panic test")
	}
	return "Test UI"
}

func headlessOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	}
}

func TestRecoveryHandlerRestartsAfterPanic(t *testing.T) {
	var calls int32
	var handler *RecoveryHandler
	seen := -1
	createUI := func() (tea.Model, []tea.ProgramOption) {
		if atomic.AddInt32(&calls, 1) == 1 {
			panic("create panic test")
		}
		seen = handler.GetRestartCount()
		return &mockModel{quitOnInit: true}, headlessOptions()
	}

	handler = NewRecoveryHandler(zap.NewNop(), createUI).SetRestartPolicy(3, time.Millisecond)

	err := handler.RunWithRecovery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, handler.GetRestartCount())
	assert.Equal(t, 1, seen, "the rebuilt UI sees the restart count")
}

func TestRecoveryHandlerGivesUp(t *testing.T) {
	var calls int32
	createUI := func() (tea.Model, []tea.ProgramOption) {
		atomic.AddInt32(&calls, 1)
		panic("always")
	}

	handler := NewRecoveryHandler(nil, createUI).SetRestartPolicy(2, time.Millisecond)

	err := handler.RunWithRecovery(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many times")
	assert.Equal(t, 2, handler.GetRestartCount())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRecoveryHandlerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	createUI := func() (tea.Model, []tea.ProgramOption) {
		return &mockModel{}, headlessOptions()
	}
	handler := NewRecoveryHandler(zap.NewNop(), createUI).SetRestartPolicy(5, time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- handler.RunWithRecovery(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Equal(t, 0, handler.GetRestartCount())
	case <-time.After(5 * time.Second):
		t.Fatal("RunWithRecovery did not return after the context ended")
	}
}

func TestSafeUIWrapper(t *testing.T) {
	inner := &mockModel{}
	wrapper := NewSafeUIWrapper(inner, zap.NewNop())

	model, cmd := wrapper.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Same(t, wrapper, model)
	assert.Nil(t, cmd)
	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.updateCount))

	assert.NotPanics(t, func() {
		_, cmd = wrapper.Update("boom")
	})
	assert.Nil(t, cmd)

	assert.Equal(t, "Test UI", wrapper.View())
	inner.panicOnView = true
	assert.Contains(t, wrapper.View(), "View crashed")
}
