package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/cli/styles"
	"github.com/bnema/lruconsole/internal/logging"
)

// WriterNotifier prints notifications as styled lines. One-shot commands use it
// with stderr so stdout stays clean for results.
type WriterNotifier struct {
	mu    sync.Mutex
	w     io.Writer
	theme *styles.Theme
	quiet bool
}

var _ port.Notifier = (*WriterNotifier)(nil)

// NewWriterNotifier creates a notifier writing to w. When quiet is set only
// errors and warnings are printed.
func NewWriterNotifier(w io.Writer, theme *styles.Theme, quiet bool) *WriterNotifier {
	return &WriterNotifier{w: w, theme: theme, quiet: quiet}
}

// Notify implements port.Notifier.
func (n *WriterNotifier) Notify(ctx context.Context, notifType port.NotificationType, message string) {
	if n.quiet && (notifType == port.NotificationSuccess || notifType == port.NotificationInfo) {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintln(n.w, n.theme.RenderToast(notifType, message)); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("failed to write notification")
	}
}
