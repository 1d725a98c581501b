// Package snapshot keeps the cached snapshot fresh while it has entries.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/domain/entity"
	"github.com/bnema/lruconsole/internal/logging"
)

// DefaultInterval is the delay between two polls of a non-empty snapshot.
const DefaultInterval = 10 * time.Second

// State is the poll loop state.
type State int

const (
	// StateDormant means no timer is armed: nothing fetched yet, or the cache is empty.
	StateDormant State = iota
	// StateArmed means a refresh is scheduled.
	StateArmed
	// StateRefreshing means a poll-initiated fetch is in flight.
	StateRefreshing
	// StateStopped is terminal.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateDormant:
		return "dormant"
	case StateArmed:
		return "armed"
	case StateRefreshing:
		return "refreshing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Store is the snapshot owner the poller drives.
type Store interface {
	Refresh(ctx context.Context) (*entity.Snapshot, error)
	Subscribe(fn usecase.SnapshotListener) func()
}

type timer interface {
	Stop() bool
}

type afterFuncFactory func(d time.Duration, f func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// Poller re-fetches the snapshot on a fixed delay after every accepted
// replacement, as long as the snapshot is non-empty. An empty snapshot leaves
// it dormant until some other refresh (a command) brings entries back.
type Poller struct {
	store     Store
	afterFunc afterFuncFactory

	mu          sync.Mutex
	interval    time.Duration
	state       State
	started     bool
	timer       timer
	armSeq      uint64
	lastGen     uint64
	ctx         context.Context
	unsubscribe func()
}

// NewPoller creates a dormant poller. interval <= 0 uses DefaultInterval.
func NewPoller(store Store, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		store:     store,
		afterFunc: realAfterFunc,
		interval:  interval,
		state:     StateDormant,
	}
}

// Start subscribes to the store and performs the initial fetch.
// The fetch error, if any, is returned for display; the poller stays dormant.
func (p *Poller) Start(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "poller")

	p.mu.Lock()
	if p.started || p.state == StateStopped {
		p.mu.Unlock()
		return nil
	}
	p.started = true
	p.ctx = ctx
	p.state = StateRefreshing
	p.mu.Unlock()

	unsubscribe := p.store.Subscribe(p.onSnapshot)
	p.mu.Lock()
	if p.state == StateStopped {
		p.mu.Unlock()
		unsubscribe()
		return nil
	}
	p.unsubscribe = unsubscribe
	p.mu.Unlock()

	logging.FromContext(ctx).Debug().Dur("interval", p.Interval()).Msg("poller started")

	_, err := p.store.Refresh(ctx)

	p.mu.Lock()
	if p.state == StateRefreshing {
		p.state = StateDormant
	}
	p.mu.Unlock()
	return err
}

// Stop cancels any armed timer. Snapshots accepted afterwards are ignored.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.state == StateStopped {
		p.mu.Unlock()
		return
	}
	p.disarmLocked()
	p.state = StateStopped
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	ctx := p.ctx
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if ctx != nil {
		logging.FromContext(ctx).Debug().Msg("poller stopped")
	}
}

// SetInterval changes the delay used the next time the timer is armed.
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interval = d
}

// Interval returns the configured delay.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// State returns the current loop state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) onSnapshot(snap *entity.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateStopped {
		return
	}
	// Listeners run outside the store lock, so deliveries can arrive out of order.
	if snap.Generation <= p.lastGen {
		return
	}
	p.lastGen = snap.Generation
	p.disarmLocked()
	if snap.IsEmpty() {
		p.state = StateDormant
		return
	}
	p.armLocked()
}

func (p *Poller) armLocked() {
	p.armSeq++
	seq := p.armSeq
	p.state = StateArmed
	p.timer = p.afterFunc(p.interval, func() { p.fire(seq) })
}

func (p *Poller) disarmLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	// Invalidates a callback that already started before Stop took effect.
	p.armSeq++
}

func (p *Poller) fire(seq uint64) {
	p.mu.Lock()
	if p.state != StateArmed || seq != p.armSeq {
		p.mu.Unlock()
		return
	}
	p.state = StateRefreshing
	p.timer = nil
	ctx := p.ctx
	p.mu.Unlock()

	if _, err := p.store.Refresh(ctx); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("poll failed, retrying on next tick")
	}

	// Nothing was accepted (failure or stale response): keep the cadence.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateRefreshing {
		p.armLocked()
	}
}
