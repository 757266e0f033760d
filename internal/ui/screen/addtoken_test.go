package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/token-monitor/internal/token"
	"github.com/rovshanmuradov/token-monitor/internal/ui"
	"github.com/rovshanmuradov/token-monitor/internal/ui/component"
)

func fillAddForm(s *AddTokenScreen, name, address string) {
	update := func(msg tea.Msg) { s.Update(msg) }
	typeText(update, name)
	s.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(update, address)
}

func submitAddForm(t *testing.T, s *AddTokenScreen) tea.Cmd {
	t.Helper()
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, component.FormSubmitMsg{}, cmd())
	_, cmd = s.Update(component.FormSubmitMsg{})
	return cmd
}

func TestAddTokenSuccessClearsForm(t *testing.T) {
	env := newTestEnv(t)
	s := NewAddTokenScreen(env.services)
	s.SetSize(120, 40)

	fillAddForm(s, "Bonk", "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")
	cmd := submitAddForm(t, s)
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(), "Submitting")

	res := cmd().(ui.MutationResultMsg)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"Bonk=DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"}, env.tokens.added)

	s.Update(res)
	assert.Empty(t, s.form.GetValue(fieldName))
	assert.Empty(t, s.form.GetValue(fieldAddress))
	assert.Equal(t, fieldName, s.form.FocusedField())
	assert.Contains(t, s.View(), "Added Bonk")
}

func TestAddTokenFailureKeepsValues(t *testing.T) {
	env := newTestEnv(t)
	env.tokens.err = errRejected
	s := NewAddTokenScreen(env.services)
	s.SetSize(120, 40)

	fillAddForm(s, "Bonk", "AAA111")
	cmd := submitAddForm(t, s)
	require.NotNil(t, cmd)

	s.Update(cmd())
	assert.Equal(t, "Bonk", s.form.GetValue(fieldName))
	assert.Equal(t, "AAA111", s.form.GetValue(fieldAddress))
	assert.False(t, s.form.Disabled())
	assert.Contains(t, s.View(), "Failed to add Bonk")
}

func TestAddTokenRequiresFields(t *testing.T) {
	env := newTestEnv(t)
	s := NewAddTokenScreen(env.services)
	s.SetSize(120, 40)

	_, cmd := s.Update(component.FormSubmitMsg{})
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(), "This field is required")
	assert.Empty(t, env.tokens.added)
}

func TestAddTokenSolanaAddressFormat(t *testing.T) {
	env := newTestEnv(t)
	s := NewAddTokenScreen(env.services)
	// The field validator and the submit check share one format.
	s.format = token.AddressSolana
	s.form.SetFieldValidation(fieldAddress, nil)

	fillAddForm(s, "Bad", "not-base58!")
	_, cmd := s.Update(component.FormSubmitMsg{})
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(), "invalid solana address")
}
