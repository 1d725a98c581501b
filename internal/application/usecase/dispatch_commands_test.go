package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/application/port/mocks"
	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/domain/entity"
)

type dispatcherFixture struct {
	svc      *mocks.MockCacheService
	notifier *mocks.MockNotifier
	store    *usecase.SnapshotStore
	state    *usecase.SessionState
	metrics  *recordingMetrics
	d        *usecase.CommandDispatcher
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &dispatcherFixture{
		svc:      mocks.NewMockCacheService(t),
		notifier: mocks.NewMockNotifier(ctrl),
		state:    usecase.NewSessionState(5),
		metrics:  &recordingMetrics{},
	}
	f.store = usecase.NewSnapshotStore(f.svc, f.metrics)
	f.d = usecase.NewCommandDispatcher(f.svc, f.store, f.state, f.notifier, f.metrics)
	return f
}

func TestCommandDispatcher_Lookup_FoundThenNotFound(t *testing.T) {
	ctx := testContext()
	f := newDispatcherFixture(t)

	f.svc.EXPECT().Get(mock.Anything, "a").Return(port.LookupResponse{Found: true, Value: "1"}, nil).Once()
	f.svc.EXPECT().GetAll(mock.Anything).Return(entries("a"), nil).Once()
	f.svc.EXPECT().Get(mock.Anything, "b").Return(port.LookupResponse{Found: false}, nil).Once()

	gomock.InOrder(
		f.notifier.EXPECT().Notify(gomock.Any(), port.NotificationSuccess, usecase.MessageValueFound),
		f.notifier.EXPECT().Notify(gomock.Any(), port.NotificationError, usecase.MessageKeyNotFound),
	)

	res, err := f.d.Lookup(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entity.LookupResult{Key: "a", Value: "1", Found: true}, res)

	stored, ok := f.state.Lookup()
	require.True(t, ok)
	assert.Equal(t, "1", stored.Value)
	assert.Equal(t, uint64(1), f.store.Current().Generation, "a hit refreshes the snapshot")

	res, err = f.d.Lookup(ctx, "b")
	require.ErrorIs(t, err, usecase.ErrKeyNotFound)
	assert.False(t, res.Found)

	_, ok = f.state.Lookup()
	assert.False(t, ok, "a miss clears the stored result")
	assert.Equal(t, []string{"lookup:ok", "lookup:miss"}, f.metrics.commands)
}

func TestCommandDispatcher_Lookup_TransportErrorIsSilent(t *testing.T) {
	ctx := testContext()
	f := newDispatcherFixture(t)
	boom := errors.New("dial tcp: refused")

	f.svc.EXPECT().Get(mock.Anything, "a").Return(port.LookupResponse{Found: true, Value: "1"}, nil).Once()
	f.svc.EXPECT().GetAll(mock.Anything).Return(entries("a"), nil).Once()
	f.svc.EXPECT().Get(mock.Anything, "a").Return(port.LookupResponse{}, boom).Once()
	f.notifier.EXPECT().Notify(gomock.Any(), port.NotificationSuccess, usecase.MessageValueFound).Times(1)

	_, err := f.d.Lookup(ctx, "a")
	require.NoError(t, err)

	_, err = f.d.Lookup(ctx, "a")
	require.ErrorIs(t, err, boom)

	stored, ok := f.state.Lookup()
	require.True(t, ok, "a failed lookup leaves the previous result")
	assert.Equal(t, "1", stored.Value)
}

func TestCommandDispatcher_Set_Valid(t *testing.T) {
	ctx := testContext()
	f := newDispatcherFixture(t)

	f.svc.EXPECT().Set(mock.Anything, port.SetRequest{Key: "x", Value: "y", Expiration: 60}).Return(nil).Once()
	f.svc.EXPECT().GetAll(mock.Anything).Return(entries("x"), nil).Once()
	f.notifier.EXPECT().Notify(gomock.Any(), port.NotificationSuccess, usecase.MessageValueSet).Times(1)

	err := f.d.Set(ctx, entity.NewEntryDraft("x", "y", 60))
	require.NoError(t, err)

	assert.True(t, f.state.Draft().IsZero(), "draft cleared after success")
	assert.True(t, f.store.Current().Contains("x"))
}

func TestCommandDispatcher_Set_InvalidDraftsNeverReachTheNetwork(t *testing.T) {
	negative := int64(-5)

	tests := []struct {
		name    string
		draft   entity.EntryDraft
		message string
	}{
		{name: "empty key", draft: entity.NewEntryDraft("", "y", 60), message: entity.DraftMessageInputRequired},
		{name: "blank value", draft: entity.NewEntryDraft("x", "  ", 60), message: entity.DraftMessageInputRequired},
		{name: "missing expiration", draft: entity.EntryDraft{Key: "x", Value: "y"}, message: entity.DraftMessageInputRequired},
		{name: "negative expiration", draft: entity.EntryDraft{Key: "x", Value: "y", Expiration: &negative}, message: entity.DraftMessageNegativeExpiration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			// No CacheService expectations: any call fails the test.
			f := newDispatcherFixture(t)
			f.notifier.EXPECT().Notify(gomock.Any(), port.NotificationError, tt.message).Times(1)

			err := f.d.Set(ctx, tt.draft)
			require.ErrorIs(t, err, entity.ErrInvalidDraft)
			assert.Equal(t, tt.draft, f.state.Draft(), "draft preserved")
			assert.Equal(t, []string{"set:invalid"}, f.metrics.commands)
		})
	}
}

func TestCommandDispatcher_Set_ServiceFailure(t *testing.T) {
	ctx := testContext()
	f := newDispatcherFixture(t)
	boom := errors.New("500")

	f.svc.EXPECT().Set(mock.Anything, mock.Anything).Return(boom).Once()
	f.notifier.EXPECT().Notify(gomock.Any(), port.NotificationError, usecase.MessageSetFailed).Times(1)

	draft := entity.NewEntryDraft("x", "y", 0)
	err := f.d.Set(ctx, draft)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, draft, f.state.Draft(), "draft preserved for retry")
	assert.Equal(t, uint64(0), f.store.Current().Generation, "no refresh after a failed set")
}

func TestCommandDispatcher_Set_RefreshFailureStillSucceeds(t *testing.T) {
	ctx := testContext()
	f := newDispatcherFixture(t)

	f.svc.EXPECT().Set(mock.Anything, mock.Anything).Return(nil).Once()
	f.svc.EXPECT().GetAll(mock.Anything).Return(nil, errors.New("timeout")).Once()
	f.notifier.EXPECT().Notify(gomock.Any(), port.NotificationSuccess, usecase.MessageValueSet).Times(1)

	require.NoError(t, f.d.Set(ctx, entity.NewEntryDraft("x", "y", 10)))
	assert.Equal(t, 1, f.metrics.failures)
}

func TestCommandDispatcher_Delete(t *testing.T) {
	ctx := testContext()
	f := newDispatcherFixture(t)

	f.svc.EXPECT().GetAll(mock.Anything).Return(entries("x", "y"), nil).Once()
	f.svc.EXPECT().Delete(mock.Anything, "x").Return(nil).Once()
	f.svc.EXPECT().GetAll(mock.Anything).Return(entries("y"), nil).Once()
	f.notifier.EXPECT().Notify(gomock.Any(), port.NotificationSuccess, usecase.MessageKeyDeleted).Times(1)

	_, err := f.store.Refresh(ctx)
	require.NoError(t, err)
	require.True(t, f.store.Current().Contains("x"))

	require.NoError(t, f.d.Delete(ctx, "x"))
	assert.False(t, f.store.Current().Contains("x"))
}

func TestCommandDispatcher_Delete_FailureIsNotNotified(t *testing.T) {
	ctx := testContext()
	f := newDispatcherFixture(t)
	boom := errors.New("404")

	f.svc.EXPECT().Delete(mock.Anything, "x").Return(boom).Once()
	// No Notify expectation: gomock fails on any call.

	err := f.d.Delete(ctx, "x")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"delete:failed"}, f.metrics.commands)
}
