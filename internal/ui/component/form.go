package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// FormSubmitMsg is emitted when enter is pressed on the last field.
type FormSubmitMsg struct{}

// FormField represents a single text field
type FormField struct {
	Name        string
	Label       string
	Placeholder string
	Required    bool
	Validation  func(string) error
	Error       string

	textInput textinput.Model
}

// Value returns the trimmed input.
func (ff FormField) Value() string {
	return strings.TrimSpace(ff.textInput.Value())
}

// Form is a vertical list of text fields with tab focus cycling.
type Form struct {
	fields     []FormField
	focusIndex int
	width      int
	disabled   bool

	labelStyle   lipgloss.Style
	inputStyle   lipgloss.Style
	focusedStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewForm creates a new form component
func NewForm() *Form {
	return &Form{
		labelStyle:   style.FormLabelStyle,
		inputStyle:   style.FormInputStyle,
		focusedStyle: style.FormInputFocusedStyle,
		errorStyle:   style.FormErrorStyle,
	}
}

// AddField adds a text field to the form
func (f *Form) AddField(name, label string, required bool, placeholder string) *Form {
	ti := textinput.New()
	ti.Width = 48
	ti.Placeholder = placeholder
	ti.Prompt = ""

	f.fields = append(f.fields, FormField{
		Name:        name,
		Label:       label,
		Placeholder: placeholder,
		Required:    required,
		textInput:   ti,
	})

	if len(f.fields) == 1 {
		f.fields[0].textInput.Focus()
	}
	return f
}

// SetFieldValidation sets a validation function for a field
func (f *Form) SetFieldValidation(name string, validation func(string) error) *Form {
	if field := f.field(name); field != nil {
		field.Validation = validation
	}
	return f
}

// SetDisabled ignores key input while a submission is in flight.
func (f *Form) SetDisabled(disabled bool) *Form {
	f.disabled = disabled
	return f
}

// Disabled reports whether input is ignored.
func (f *Form) Disabled() bool {
	return f.disabled
}

func (f *Form) field(name string) *FormField {
	for i := range f.fields {
		if f.fields[i].Name == name {
			return &f.fields[i]
		}
	}
	return nil
}

// Init starts the cursor blink of the focused field.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles form input and updates
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.fields) == 0 || f.disabled {
		return f, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			f.focus((f.focusIndex + 1) % len(f.fields))
			return f, nil
		case "shift+tab", "up":
			f.focus((f.focusIndex - 1 + len(f.fields)) % len(f.fields))
			return f, nil
		case "enter":
			if f.focusIndex == len(f.fields)-1 {
				return f, func() tea.Msg { return FormSubmitMsg{} }
			}
			f.focus(f.focusIndex + 1)
			return f, nil
		case "ctrl+s":
			return f, func() tea.Msg { return FormSubmitMsg{} }
		}
	}

	field := &f.fields[f.focusIndex]
	var cmd tea.Cmd
	before := field.textInput.Value()
	field.textInput, cmd = field.textInput.Update(msg)
	if field.textInput.Value() != before {
		field.Error = ""
	}
	return f, cmd
}

func (f *Form) focus(index int) {
	f.fields[f.focusIndex].textInput.Blur()
	f.focusIndex = index
	f.fields[f.focusIndex].textInput.Focus()
}

// FocusedField returns the name of the focused field.
func (f *Form) FocusedField() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focusIndex].Name
}

// View renders the form
func (f *Form) View() string {
	if len(f.fields) == 0 {
		return "No fields defined"
	}

	var content strings.Builder
	for i, field := range f.fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		content.WriteString(f.labelStyle.Render(label))
		content.WriteString("\n")

		fieldStyle := f.inputStyle
		if i == f.focusIndex && !f.disabled {
			fieldStyle = f.focusedStyle
		}
		content.WriteString(fieldStyle.Render(field.textInput.View()))
		content.WriteString("\n")

		if field.Error != "" {
			content.WriteString(f.errorStyle.Render("⚠ " + field.Error))
			content.WriteString("\n")
		}
		if i < len(f.fields)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}

// Validate validates all form fields
func (f *Form) Validate() bool {
	valid := true
	for i := range f.fields {
		field := &f.fields[i]
		field.Error = ""

		value := field.Value()
		if field.Required && value == "" {
			field.Error = "This field is required"
			valid = false
			continue
		}
		if field.Validation != nil && value != "" {
			if err := field.Validation(value); err != nil {
				field.Error = err.Error()
				valid = false
			}
		}
	}
	return valid
}

// GetValue returns the value of a specific field
func (f *Form) GetValue(name string) string {
	if field := f.field(name); field != nil {
		return field.Value()
	}
	return ""
}

// Reset clears all form fields and focuses the first one.
func (f *Form) Reset() *Form {
	for i := range f.fields {
		f.fields[i].Error = ""
		f.fields[i].textInput.SetValue("")
		f.fields[i].textInput.Blur()
	}
	f.focusIndex = 0
	f.disabled = false
	if len(f.fields) > 0 {
		f.fields[0].textInput.Focus()
	}
	return f
}

// SetSize sets the form width
func (f *Form) SetSize(width, height int) *Form {
	f.width = width
	inputWidth := width - 8
	if inputWidth > 64 {
		inputWidth = 64
	}
	if inputWidth > 10 {
		for i := range f.fields {
			f.fields[i].textInput.Width = inputWidth
		}
	}
	return f
}
