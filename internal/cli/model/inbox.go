// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/domain/entity"
	"github.com/bnema/lruconsole/internal/logging"
)

const inboxSize = 32

// ToastMsg is a notification delivered to the console.
type ToastMsg struct {
	Kind    port.NotificationType
	Message string
}

// SnapshotMsg signals that the store accepted a new snapshot.
type SnapshotMsg struct {
	Snapshot *entity.Snapshot
}

// Inbox carries notifications and snapshot updates from worker goroutines
// into the Bubble Tea loop. Posting never blocks.
type Inbox struct {
	toasts    chan ToastMsg
	snapshots chan *entity.Snapshot
}

var _ port.Notifier = (*Inbox)(nil)

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{
		toasts:    make(chan ToastMsg, inboxSize),
		snapshots: make(chan *entity.Snapshot, 1),
	}
}

// Notify implements port.Notifier. Toasts beyond the buffer are dropped.
func (i *Inbox) Notify(ctx context.Context, notifType port.NotificationType, message string) {
	select {
	case i.toasts <- ToastMsg{Kind: notifType, Message: message}:
	default:
		logging.FromContext(ctx).Warn().Str("message", message).Msg("toast dropped, inbox full")
	}
}

// PublishSnapshot is a usecase.SnapshotListener. Only the newest pending
// snapshot is kept.
func (i *Inbox) PublishSnapshot(snap *entity.Snapshot) {
	for {
		select {
		case i.snapshots <- snap:
			return
		default:
		}
		select {
		case <-i.snapshots:
		default:
		}
	}
}

// Listen returns a command that waits for the next inbox message.
// The model re-issues it after handling each message.
func (i *Inbox) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-i.toasts:
			return t
		case s := <-i.snapshots:
			return SnapshotMsg{Snapshot: s}
		}
	}
}
