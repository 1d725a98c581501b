package model

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/cli/styles"
)

const (
	toastTTL  = 4 * time.Second
	maxToasts = 3
)

type toast struct {
	id      int
	kind    port.NotificationType
	message string
}

type toastExpiredMsg struct {
	id int
}

// toastStack holds the visible notifications, newest last.
type toastStack struct {
	items  []toast
	nextID int
	ttl    time.Duration
}

func newToastStack() toastStack {
	return toastStack{ttl: toastTTL}
}

// push adds a toast, evicting the oldest beyond maxToasts, and returns the
// command that expires it.
func (s toastStack) push(kind port.NotificationType, message string) (toastStack, tea.Cmd) {
	s.nextID++
	id := s.nextID
	items := append(make([]toast, 0, len(s.items)+1), s.items...)
	items = append(items, toast{id: id, kind: kind, message: message})
	if len(items) > maxToasts {
		items = items[len(items)-maxToasts:]
	}
	s.items = items

	return s, tea.Tick(s.ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (s toastStack) expire(id int) toastStack {
	items := make([]toast, 0, len(s.items))
	for _, t := range s.items {
		if t.id != id {
			items = append(items, t)
		}
	}
	s.items = items
	return s
}

func (s toastStack) view(theme *styles.Theme) string {
	if len(s.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.items))
	for _, t := range s.items {
		lines = append(lines, theme.RenderToastBox(t.kind, t.message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, strings.Join(lines, "\n"))
}
