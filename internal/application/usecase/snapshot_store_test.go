package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lruconsole/internal/application/port/mocks"
	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/domain/entity"
)

func TestSnapshotStore_CurrentBeforeFirstFetch(t *testing.T) {
	store := usecase.NewSnapshotStore(mocks.NewMockCacheService(t), nil)

	snap := store.Current()
	require.NotNil(t, snap)
	assert.True(t, snap.IsEmpty())
	assert.Equal(t, uint64(0), snap.Generation)
}

func TestSnapshotStore_Refresh_ReplacesSnapshot(t *testing.T) {
	ctx := testContext()
	svc := mocks.NewMockCacheService(t)
	metrics := &recordingMetrics{}

	svc.EXPECT().GetAll(mock.Anything).Return(entries("a", "b"), nil).Once()
	svc.EXPECT().GetAll(mock.Anything).Return(entries("a", "b"), nil).Once()

	store := usecase.NewSnapshotStore(svc, metrics)

	first, err := store.Refresh(ctx)
	require.NoError(t, err)
	second, err := store.Refresh(ctx)
	require.NoError(t, err)

	assert.NotSame(t, first, second, "every accepted fetch is a new identity")
	assert.Equal(t, uint64(1), first.Generation)
	assert.Equal(t, uint64(2), second.Generation)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Same(t, second, store.Current())
	assert.Equal(t, 2, metrics.refreshes)
	assert.Equal(t, 1, metrics.changes, "an identical refetch is not a content change")
}

func TestSnapshotStore_Refresh_CountsContentChanges(t *testing.T) {
	ctx := testContext()
	svc := mocks.NewMockCacheService(t)
	metrics := &recordingMetrics{}

	svc.EXPECT().GetAll(mock.Anything).Return(nil, nil).Once()
	svc.EXPECT().GetAll(mock.Anything).Return(entries("a"), nil).Once()
	svc.EXPECT().GetAll(mock.Anything).Return(entries("a"), nil).Once()
	svc.EXPECT().GetAll(mock.Anything).Return(entries("a", "b"), nil).Once()

	store := usecase.NewSnapshotStore(svc, metrics)
	for range 4 {
		_, err := store.Refresh(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, 4, metrics.refreshes)
	assert.Equal(t, 2, metrics.changes, "empty to [a], then [a] to [a b]")
}

func TestSnapshotStore_Refresh_NullIsEmpty(t *testing.T) {
	ctx := testContext()
	svc := mocks.NewMockCacheService(t)
	svc.EXPECT().GetAll(mock.Anything).Return(nil, nil).Once()

	store := usecase.NewSnapshotStore(svc, nil)
	snap, err := store.Refresh(ctx)

	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
	assert.NotNil(t, snap.Entries)
	assert.Equal(t, uint64(1), snap.Generation)
}

func TestSnapshotStore_Refresh_FailureKeepsPrevious(t *testing.T) {
	ctx := testContext()
	svc := mocks.NewMockCacheService(t)
	metrics := &recordingMetrics{}
	boom := errors.New("connection refused")

	svc.EXPECT().GetAll(mock.Anything).Return(entries("a"), nil).Once()
	svc.EXPECT().GetAll(mock.Anything).Return(nil, boom).Once()

	store := usecase.NewSnapshotStore(svc, metrics)

	var notified []*entity.Snapshot
	store.Subscribe(func(s *entity.Snapshot) { notified = append(notified, s) })

	good, err := store.Refresh(ctx)
	require.NoError(t, err)

	kept, err := store.Refresh(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Same(t, good, kept)
	assert.Same(t, good, store.Current())
	assert.Len(t, notified, 1, "failed fetches do not notify listeners")
	assert.Equal(t, 1, metrics.failures)
}

func TestSnapshotStore_Refresh_DiscardsOutOfOrderResponse(t *testing.T) {
	ctx := testContext()
	svc := mocks.NewMockCacheService(t)
	metrics := &recordingMetrics{}

	entered := make(chan struct{})
	release := make(chan struct{})

	svc.EXPECT().GetAll(mock.Anything).RunAndReturn(func(context.Context) ([]entity.CacheEntry, error) {
		close(entered)
		<-release
		return entries("old"), nil
	}).Once()
	svc.EXPECT().GetAll(mock.Anything).Return(entries("new"), nil).Once()

	store := usecase.NewSnapshotStore(svc, metrics)

	type result struct {
		snap *entity.Snapshot
		err  error
	}
	slow := make(chan result, 1)
	go func() {
		s, err := store.Refresh(ctx)
		slow <- result{s, err}
	}()
	<-entered

	fresh, err := store.Refresh(ctx)
	require.NoError(t, err)
	require.True(t, fresh.Contains("new"))

	close(release)
	late := <-slow

	require.NoError(t, late.err)
	assert.Same(t, fresh, late.snap, "late response returns the newer snapshot")
	assert.Same(t, fresh, store.Current())
	assert.False(t, store.Current().Contains("old"))
	assert.Equal(t, 1, metrics.stale)
}

func TestSnapshotStore_Refresh_DuplicateKeysAreReported(t *testing.T) {
	ctx := testContext()
	svc := mocks.NewMockCacheService(t)
	metrics := &recordingMetrics{}

	svc.EXPECT().GetAll(mock.Anything).Return(entries("a", "a", "b"), nil).Once()

	store := usecase.NewSnapshotStore(svc, metrics)
	snap, err := store.Refresh(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len(), "duplicates are reported, not repaired")
	assert.Equal(t, []string{usecase.ViolationDuplicateKey}, metrics.violations)
}

func TestSnapshotStore_Subscribe_Unsubscribe(t *testing.T) {
	ctx := testContext()
	svc := mocks.NewMockCacheService(t)
	svc.EXPECT().GetAll(mock.Anything).Return(entries("a"), nil).Times(2)

	store := usecase.NewSnapshotStore(svc, nil)

	calls := 0
	unsubscribe := store.Subscribe(func(*entity.Snapshot) { calls++ })

	_, err := store.Refresh(ctx)
	require.NoError(t, err)
	unsubscribe()
	_, err = store.Refresh(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}
