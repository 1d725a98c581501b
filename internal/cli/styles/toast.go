package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lruconsole/internal/application/port"
)

// ToastStyle returns the foreground style and icon for a notification type.
func (t *Theme) ToastStyle(kind port.NotificationType) (lipgloss.Style, string) {
	switch kind {
	case port.NotificationSuccess:
		return t.SuccessStyle, IconCheck
	case port.NotificationError:
		return t.ErrorStyle, IconX
	case port.NotificationWarning:
		return t.WarningStyle, IconWarning
	default:
		return t.Highlight, IconInfo
	}
}

// RenderToast renders a single notification line.
func (t *Theme) RenderToast(kind port.NotificationType, message string) string {
	style, icon := t.ToastStyle(kind)
	return style.Render(icon + " " + message)
}

// RenderToastBox renders a notification inside a bordered box colored by kind.
func (t *Theme) RenderToastBox(kind port.NotificationType, message string) string {
	style, _ := t.ToastStyle(kind)
	return t.Panel.
		BorderForeground(style.GetForeground()).
		Render(t.RenderToast(kind, message))
}
