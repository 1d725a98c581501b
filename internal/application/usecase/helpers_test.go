package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/lruconsole/internal/domain/entity"
	"github.com/bnema/lruconsole/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func entries(keys ...string) []entity.CacheEntry {
	exp := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	out := make([]entity.CacheEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, entity.CacheEntry{Key: k, Value: "v-" + k, Expiration: exp})
	}
	return out
}

type recordingMetrics struct {
	mu         sync.Mutex
	refreshes  int
	failures   int
	stale      int
	changes    int
	violations []string
	commands   []string
}

func (m *recordingMetrics) RefreshSucceeded(int, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
}

func (m *recordingMetrics) RefreshFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func (m *recordingMetrics) StaleResponseDiscarded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale++
}

func (m *recordingMetrics) SnapshotContentChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changes++
}

func (m *recordingMetrics) ContractViolation(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.violations = append(m.violations, kind)
}

func (m *recordingMetrics) CommandCompleted(command, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, command+":"+outcome)
}
