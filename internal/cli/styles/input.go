package styles

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledInput creates a themed text input.
func NewStyledInput(theme *Theme, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.Prompt = "› "
	return ti
}

// NewKeyInput creates an input for cache keys.
func NewKeyInput(theme *Theme, placeholder string) textinput.Model {
	ti := NewStyledInput(theme, placeholder)
	ti.CharLimit = 512
	return ti
}

// NewExpirationInput creates an input for the expiration in seconds.
func NewExpirationInput(theme *Theme) textinput.Model {
	ti := NewStyledInput(theme, "Expiration (seconds)")
	ti.CharLimit = 19
	return ti
}

// IsExpirationRune reports whether r may be typed into an expiration input.
// A minus is accepted so negative values reach validation.
func IsExpirationRune(r rune) bool {
	return r == '-' || (r >= '0' && r <= '9')
}

// InputBox wraps a text input in a styled box.
func (t *Theme) InputBox(input string, focused bool) string {
	style := t.Input
	if focused {
		style = t.InputFocused
	}
	return style.Render(input)
}
