package model

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lruconsole/internal/application/port"
	"github.com/bnema/lruconsole/internal/application/port/mocks"
	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/cli/styles"
	"github.com/bnema/lruconsole/internal/domain/entity"
	"github.com/bnema/lruconsole/internal/infrastructure/config"
	"github.com/bnema/lruconsole/internal/infrastructure/snapshot"
)

type consoleFixture struct {
	service *mocks.MockCacheService
	store   *usecase.SnapshotStore
	state   *usecase.SessionState
	inbox   *Inbox
	model   ConsoleModel
}

type fixedPoll struct {
	state    snapshot.State
	interval time.Duration
}

func (p fixedPoll) State() snapshot.State    { return p.state }
func (p fixedPoll) Interval() time.Duration { return p.interval }

func newConsoleFixture(t *testing.T) *consoleFixture {
	t.Helper()
	service := mocks.NewMockCacheService(t)
	store := usecase.NewSnapshotStore(service, nil)
	state := usecase.NewSessionState(5)
	inbox := NewInbox()
	dispatcher := usecase.NewCommandDispatcher(service, store, state, inbox, nil)

	m := NewConsoleModel(context.Background(), styles.NewTheme(config.DefaultConfig()), ConsoleConfig{
		Dispatcher: dispatcher,
		Store:      store,
		State:      state,
		Inbox:      inbox,
		Poll:       fixedPoll{state: snapshot.StateArmed, interval: 10 * time.Second},
		Format:     styles.EntryFormat{DateLayout: "2006-01-02 15:04:05"},
		BaseURL:    "http://localhost:8080",
	})
	return &consoleFixture{service: service, store: store, state: state, inbox: inbox, model: m}
}

func testEntries(n int) []entity.CacheEntry {
	exp := time.Now().Add(time.Hour)
	out := make([]entity.CacheEntry, 0, n)
	for i := 0; i < n; i++ {
		k := fmt.Sprintf("key-%02d", i)
		out = append(out, entity.CacheEntry{Key: k, Value: "val-" + k, Expiration: exp})
	}
	return out
}

// load fetches entries through the store and hands the snapshot to the model.
func (f *consoleFixture) load(t *testing.T, entries []entity.CacheEntry) {
	t.Helper()
	f.service.EXPECT().GetAll(mock.Anything).Return(entries, nil).Once()
	snap, err := f.store.Refresh(context.Background())
	require.NoError(t, err)
	f.send(SnapshotMsg{Snapshot: snap})
}

func (f *consoleFixture) send(msg tea.Msg) tea.Cmd {
	updated, cmd := f.model.Update(msg)
	f.model = updated.(ConsoleModel)
	return cmd
}

func (f *consoleFixture) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "tab":
			f.send(tea.KeyMsg{Type: tea.KeyTab})
		case "shift+tab":
			f.send(tea.KeyMsg{Type: tea.KeyShiftTab})
		case "enter":
			f.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			f.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "right":
			f.send(tea.KeyMsg{Type: tea.KeyRight})
		case "left":
			f.send(tea.KeyMsg{Type: tea.KeyLeft})
		default:
			for _, r := range k {
				f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			}
		}
	}
}

func nextToast(t *testing.T, inbox *Inbox) ToastMsg {
	t.Helper()
	select {
	case msg := <-inbox.toasts:
		return msg
	default:
		t.Fatal("expected a toast")
		return ToastMsg{}
	}
}

func TestConsole_EmptySnapshotShowsNoData(t *testing.T) {
	f := newConsoleFixture(t)

	view := f.model.View()
	assert.Contains(t, view, styles.NoDataText)
	assert.Contains(t, view, "0 entries")
	assert.Contains(t, view, "every 10s")
}

func TestConsole_PaginatesSnapshot(t *testing.T) {
	f := newConsoleFixture(t)
	f.load(t, testEntries(7))

	view := f.model.View()
	assert.Contains(t, view, "key-00")
	assert.Contains(t, view, "key-04")
	assert.NotContains(t, view, "key-05")
	assert.Contains(t, view, "7 entries")

	f.press("right")
	assert.Equal(t, 2, f.state.Pagination().CurrentPage)
	view = f.model.View()
	assert.Contains(t, view, "key-05")
	assert.Contains(t, view, "key-06")
	assert.NotContains(t, view, "key-00")

	f.press("right")
	assert.Equal(t, 2, f.state.Pagination().CurrentPage, "next page stops at the last page")

	f.press("1")
	assert.Equal(t, 1, f.state.Pagination().CurrentPage)
}

func TestConsole_PageBeyondShrunkSnapshotShowsNoData(t *testing.T) {
	f := newConsoleFixture(t)
	f.load(t, testEntries(7))
	f.press("2")

	f.load(t, testEntries(3))

	assert.Equal(t, 2, f.state.Pagination().CurrentPage, "page is not clamped")
	assert.Contains(t, f.model.View(), styles.NoDataText)
}

func TestConsole_IgnoresOlderSnapshot(t *testing.T) {
	f := newConsoleFixture(t)
	f.load(t, testEntries(2))
	newer := f.model.snap

	f.send(SnapshotMsg{Snapshot: entity.NewSnapshot(testEntries(6), newer.Generation-1, time.Now())})

	assert.Same(t, newer, f.model.snap)
}

func TestConsole_SetDraftSuccessClearsForm(t *testing.T) {
	f := newConsoleFixture(t)

	f.press("tab", "tab")
	assert.Equal(t, focusDraftKey, f.model.focus)
	f.press("session:1", "tab", "alice", "tab", "6a0")

	draft := f.model.draftFromInputs()
	require.NotNil(t, draft.Expiration)
	assert.Equal(t, int64(60), *draft.Expiration, "non-digits are rejected in the expiration field")

	f.service.EXPECT().
		Set(mock.Anything, port.SetRequest{Key: "session:1", Value: "alice", Expiration: 60}).
		Return(nil).Once()
	f.service.EXPECT().GetAll(mock.Anything).
		Return([]entity.CacheEntry{{Key: "session:1", Value: "alice"}}, nil).Once()

	msg := f.model.setCmd(draft)()
	f.model.busy = 1
	f.send(msg)

	assert.Equal(t, "", f.model.draftKey.Value())
	assert.Equal(t, "", f.model.draftExpiration.Value())
	assert.Equal(t, usecase.MessageValueSet, nextToast(t, f.inbox).Message)
	assert.Contains(t, f.model.View(), "session:1")
}

func TestConsole_InvalidDraftKeepsForm(t *testing.T) {
	f := newConsoleFixture(t)
	f.press("tab", "tab", "k")

	msg := f.model.setCmd(f.model.draftFromInputs())()
	f.model.busy = 1
	f.send(msg)

	assert.Equal(t, "k", f.model.draftKey.Value())
	toast := nextToast(t, f.inbox)
	assert.Equal(t, port.NotificationError, toast.Kind)
	assert.Equal(t, entity.DraftMessageInputRequired, toast.Message)
}

func TestConsole_LookupShowsValue(t *testing.T) {
	f := newConsoleFixture(t)

	f.service.EXPECT().Get(mock.Anything, "a").Return(port.LookupResponse{Found: true, Value: "apple"}, nil).Once()
	f.service.EXPECT().GetAll(mock.Anything).Return(testEntries(1), nil).Once()

	f.press("tab", "a")
	require.Equal(t, focusLookup, f.model.focus)
	assert.Equal(t, "a", f.model.lookupInput.Value())

	msg := f.model.lookupCmd("a")()
	f.model.busy = 1
	f.send(msg)

	assert.Contains(t, f.model.View(), "apple")
	assert.Equal(t, usecase.MessageValueFound, nextToast(t, f.inbox).Message)

	f.service.EXPECT().Get(mock.Anything, "b").Return(port.LookupResponse{}, nil).Once()
	f.model.busy = 1
	f.send(f.model.lookupCmd("b")())

	assert.NotContains(t, f.model.View(), "apple", "a miss clears the previous result")
	assert.Equal(t, usecase.MessageKeyNotFound, nextToast(t, f.inbox).Message)
}

func TestConsole_DeleteAsksForConfirmation(t *testing.T) {
	f := newConsoleFixture(t)
	f.load(t, testEntries(3))

	f.press("x")
	require.NotNil(t, f.model.confirm)
	assert.Equal(t, "key-00", f.model.confirm.Target)
	assert.Contains(t, f.model.View(), "Delete this key?")

	f.press("n")
	assert.Nil(t, f.model.confirm)
	assert.Equal(t, 0, f.model.busy, "declining runs nothing")

	f.press("x")
	cmd := f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.Nil(t, f.model.confirm)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, f.model.busy)

	f.service.EXPECT().Delete(mock.Anything, "key-00").Return(nil).Once()
	f.service.EXPECT().GetAll(mock.Anything).Return(testEntries(3)[1:], nil).Once()
	f.send(f.model.deleteCmd("key-00")())

	assert.Equal(t, 0, f.model.busy)
	assert.NotContains(t, f.model.View(), "key-00")
	assert.Equal(t, usecase.MessageKeyDeleted, nextToast(t, f.inbox).Message)
}

func TestConsole_DeleteFailureIsSilent(t *testing.T) {
	f := newConsoleFixture(t)
	f.service.EXPECT().Delete(mock.Anything, "gone").Return(errors.New("boom")).Once()

	msg := f.model.deleteCmd("gone")()
	done, ok := msg.(deleteDoneMsg)
	require.True(t, ok)
	require.Error(t, done.err)

	select {
	case toast := <-f.inbox.toasts:
		t.Fatalf("unexpected toast %q", toast.Message)
	default:
	}
}

func TestConsole_QuitOnlyFromTable(t *testing.T) {
	f := newConsoleFixture(t)

	f.press("tab")
	f.press("q")
	assert.Equal(t, "q", f.model.lookupInput.Value(), "q types into inputs")

	f.press("esc")
	assert.Equal(t, focusTable, f.model.focus)
	cmd := f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestConsole_ToastsExpire(t *testing.T) {
	f := newConsoleFixture(t)

	for i := 0; i < maxToasts+1; i++ {
		cmd := f.send(ToastMsg{Kind: port.NotificationInfo, Message: fmt.Sprintf("toast-%d", i)})
		require.NotNil(t, cmd)
	}
	require.Len(t, f.model.toasts.items, maxToasts)
	assert.NotContains(t, f.model.View(), "toast-0", "oldest toast is evicted")
	assert.Contains(t, f.model.View(), "toast-3")

	f.send(toastExpiredMsg{id: f.model.toasts.items[0].id})
	assert.Len(t, f.model.toasts.items, maxToasts-1)
}
