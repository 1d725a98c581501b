package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/domain/entity"
	"github.com/bnema/lruconsole/internal/logging"
)

// Operator-facing messages.
const (
	MessageValueFound  = "Value found"
	MessageKeyNotFound = "Key not found in the cache"
	MessageValueSet    = "Value set successfully"
	MessageSetFailed   = "Error setting value"
	MessageKeyDeleted  = "Cache deleted successfully"
)

// ErrKeyNotFound is returned by Lookup when the service has no such key.
var ErrKeyNotFound = errors.New("key not found")

// CommandDispatcher runs operator commands against the cache service and
// re-syncs the snapshot afterwards. It never patches the snapshot itself.
//
// Notifications are asymmetric: a failed set is reported to the operator,
// while failed lookups and deletes are only logged.
type CommandDispatcher struct {
	service  port.CacheService
	store    *SnapshotStore
	state    *SessionState
	notifier port.Notifier
	metrics  port.SyncMetrics
}

// NewCommandDispatcher wires a dispatcher. metrics may be nil.
func NewCommandDispatcher(
	service port.CacheService,
	store *SnapshotStore,
	state *SessionState,
	notifier port.Notifier,
	metrics port.SyncMetrics,
) *CommandDispatcher {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &CommandDispatcher{
		service:  service,
		store:    store,
		state:    state,
		notifier: notifier,
		metrics:  metrics,
	}
}

// Lookup queries a single key. A hit is stored in the session state and
// triggers a snapshot refresh; a miss clears the stored result and returns
// ErrKeyNotFound.
func (d *CommandDispatcher) Lookup(ctx context.Context, key string) (entity.LookupResult, error) {
	log := logging.FromContext(logging.WithKey(ctx, key))

	resp, err := d.service.Get(ctx, key)
	if err != nil {
		d.metrics.CommandCompleted(port.CommandLookup, port.OutcomeFailed)
		log.Error().Err(err).Msg("lookup failed")
		return entity.LookupResult{Key: key}, fmt.Errorf("lookup %q: %w", key, err)
	}

	if !resp.Found {
		d.state.clearLookup()
		d.metrics.CommandCompleted(port.CommandLookup, port.OutcomeMiss)
		d.notifier.Notify(ctx, port.NotificationError, MessageKeyNotFound)
		return entity.LookupResult{Key: key}, ErrKeyNotFound
	}

	result := entity.LookupResult{Key: key, Value: resp.Value, Found: true}
	d.state.setLookup(result)
	d.metrics.CommandCompleted(port.CommandLookup, port.OutcomeOK)
	_, _ = d.store.Refresh(ctx)
	d.notifier.Notify(ctx, port.NotificationSuccess, MessageValueFound)
	return result, nil
}

// Set validates draft and upserts it. The draft is kept in the session state
// until a submission succeeds. Validation errors wrap entity.ErrInvalidDraft
// and never reach the network.
func (d *CommandDispatcher) Set(ctx context.Context, draft entity.EntryDraft) error {
	log := logging.FromContext(logging.WithKey(ctx, draft.Key))
	d.state.SetDraft(draft)

	if err := draft.Validate(); err != nil {
		d.metrics.CommandCompleted(port.CommandSet, port.OutcomeInvalid)
		d.notifier.Notify(ctx, port.NotificationError, err.Error())
		return err
	}

	req := port.SetRequest{Key: draft.Key, Value: draft.Value, Expiration: *draft.Expiration}
	if err := d.service.Set(ctx, req); err != nil {
		d.metrics.CommandCompleted(port.CommandSet, port.OutcomeFailed)
		log.Debug().Err(err).Msg("set failed")
		d.notifier.Notify(ctx, port.NotificationError, MessageSetFailed)
		return fmt.Errorf("set %q: %w", draft.Key, err)
	}

	d.state.clearDraft()
	d.metrics.CommandCompleted(port.CommandSet, port.OutcomeOK)
	_, _ = d.store.Refresh(ctx)
	d.notifier.Notify(ctx, port.NotificationSuccess, MessageValueSet)
	return nil
}

// Delete removes key and refreshes the snapshot. Failures are logged only.
func (d *CommandDispatcher) Delete(ctx context.Context, key string) error {
	log := logging.FromContext(logging.WithKey(ctx, key))

	if err := d.service.Delete(ctx, key); err != nil {
		d.metrics.CommandCompleted(port.CommandDelete, port.OutcomeFailed)
		log.Error().Err(err).Msg("delete failed")
		return fmt.Errorf("delete %q: %w", key, err)
	}

	d.metrics.CommandCompleted(port.CommandDelete, port.OutcomeOK)
	_, _ = d.store.Refresh(ctx)
	d.notifier.Notify(ctx, port.NotificationSuccess, MessageKeyDeleted)
	return nil
}
