package model

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lruconsole/internal/application/usecase"
	"github.com/bnema/lruconsole/internal/cli/styles"
	"github.com/bnema/lruconsole/internal/domain/entity"
	"github.com/bnema/lruconsole/internal/infrastructure/snapshot"
	"github.com/bnema/lruconsole/internal/logging"
)

const defaultConsoleWidth = 100

type focusArea int

const (
	focusTable focusArea = iota
	focusLookup
	focusDraftKey
	focusDraftValue
	focusDraftExpiration
	focusCount
)

// PollStatus is the read side of the poll loop shown in the header.
type PollStatus interface {
	State() snapshot.State
	Interval() time.Duration
}

// ConsoleConfig holds the dependencies of the console model.
type ConsoleConfig struct {
	Dispatcher *usecase.CommandDispatcher
	Store      *usecase.SnapshotStore
	State      *usecase.SessionState
	Inbox      *Inbox
	Poll       PollStatus
	Format     styles.EntryFormat
	BaseURL    string
}

// ConsoleModel is the interactive cache console: the paginated entry table,
// the single-key lookup, the new-entry form and the toast stack.
type ConsoleModel struct {
	help    help.Model
	keys    styles.ConsoleKeyMap
	spinner spinner.Model
	table   table.Model
	confirm *styles.ConfirmModel

	lookupInput     textinput.Model
	draftKey        textinput.Model
	draftValue      textinput.Model
	draftExpiration textinput.Model

	focus  focusArea
	snap   *entity.Snapshot
	toasts toastStack
	busy   int
	width  int
	height int

	ctx        context.Context
	dispatcher *usecase.CommandDispatcher
	store      *usecase.SnapshotStore
	state      *usecase.SessionState
	inbox      *Inbox
	poll       PollStatus
	format     styles.EntryFormat
	baseURL    string
	theme      *styles.Theme
}

type lookupDoneMsg struct {
	key string
	err error
}

type setDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	key string
	err error
}

type refreshDoneMsg struct {
	err error
}

// NewConsoleModel creates the console model showing the store's current snapshot.
func NewConsoleModel(ctx context.Context, theme *styles.Theme, cfg ConsoleConfig) ConsoleModel {
	inbox := cfg.Inbox
	if inbox == nil {
		inbox = NewInbox()
	}
	pageSize := cfg.State.Pagination().PageSize

	m := ConsoleModel{
		help:            styles.NewStyledHelp(theme),
		keys:            styles.DefaultConsoleKeyMap(),
		spinner:         styles.NewStyledSpinner(theme),
		table:           styles.NewStyledTable(theme, styles.EntryTableColumns(defaultConsoleWidth), nil, defaultConsoleWidth, pageSize+2),
		lookupInput:     styles.NewKeyInput(theme, "Key to look up"),
		draftKey:        styles.NewKeyInput(theme, "Key"),
		draftValue:      styles.NewStyledInput(theme, "Value"),
		draftExpiration: styles.NewExpirationInput(theme),
		focus:           focusTable,
		snap:            cfg.Store.Current(),
		toasts:          newToastStack(),
		width:           defaultConsoleWidth,
		ctx:             logging.WithComponent(ctx, "console"),
		dispatcher:      cfg.Dispatcher,
		store:           cfg.Store,
		state:           cfg.State,
		inbox:           inbox,
		poll:            cfg.Poll,
		format:          cfg.Format,
		baseURL:         cfg.BaseURL,
		theme:           theme,
	}
	m.restoreDraft(cfg.State.Draft())
	m.syncTable()
	return m
}

// Init implements tea.Model.
func (m ConsoleModel) Init() tea.Cmd {
	return m.inbox.Listen()
}

// Update implements tea.Model.
func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(styles.EntryTableColumns(msg.Width))
		m.table.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case ToastMsg:
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.push(msg.Kind, msg.Message)
		return m, tea.Batch(cmd, m.inbox.Listen())

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)
		return m, m.inbox.Listen()

	case toastExpiredMsg:
		m.toasts = m.toasts.expire(msg.id)
		return m, nil

	case lookupDoneMsg, deleteDoneMsg, refreshDoneMsg:
		m.finish()
		m.applySnapshot(m.store.Current())
		return m, nil

	case setDoneMsg:
		m.finish()
		if msg.err == nil {
			m.restoreDraft(entity.EntryDraft{})
		}
		m.applySnapshot(m.store.Current())
		return m, nil

	case spinner.TickMsg:
		if m.busy <= 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ConsoleModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.confirm != nil {
		return m.handleConfirmModal(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextFocus):
		cmd := m.setFocus((m.focus + 1) % focusCount)
		return m, cmd
	case key.Matches(msg, m.keys.PrevFocus):
		cmd := m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, cmd
	case key.Matches(msg, m.keys.Blur) && m.focus != focusTable:
		cmd := m.setFocus(focusTable)
		return m, cmd
	}

	if m.focus == focusTable {
		return m.handleTableKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m ConsoleModel) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.pageView()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevPage):
		if view.Page > 1 {
			m.goToPage(view.Page - 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if view.Page < view.PageCount {
			m.goToPage(view.Page + 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		cursor := m.table.Cursor()
		if cursor < 0 || cursor >= len(view.Entries) {
			return m, nil
		}
		confirm := styles.NewConfirm(m.theme, "Delete this key?", view.Entries[cursor].Key)
		m.confirm = &confirm
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.run(m.refreshCmd())
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// Page selector: digits jump straight to an existing page.
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if page, err := strconv.Atoi(string(msg.Runes)); err == nil && page >= 1 && page <= view.PageCount {
			m.goToPage(page)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ConsoleModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		if m.focus == focusLookup {
			k := m.lookupInput.Value()
			if strings.TrimSpace(k) == "" {
				return m, nil
			}
			cmd := m.run(m.lookupCmd(k))
			return m, cmd
		}
		cmd := m.run(m.setCmd(m.draftFromInputs()))
		return m, cmd
	}

	if m.focus == focusDraftExpiration && msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !styles.IsExpirationRune(r) {
				return m, nil
			}
		}
	}

	in := m.input(m.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m ConsoleModel) handleConfirmModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if !m.confirm.Done() {
		return m, cmd
	}

	target, yes := m.confirm.Target, m.confirm.Result()
	m.confirm = nil
	if yes {
		cmd = m.run(m.deleteCmd(target))
	}
	return m, cmd
}

// run marks a command in flight and starts the spinner for the first one.
// Callers must read m after run returns.
func (m *ConsoleModel) run(cmd tea.Cmd) tea.Cmd {
	m.busy++
	if m.busy == 1 {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *ConsoleModel) finish() {
	if m.busy > 0 {
		m.busy--
	}
}

func (m *ConsoleModel) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.lookupInput.Blur()
	m.draftKey.Blur()
	m.draftValue.Blur()
	m.draftExpiration.Blur()

	if f == focusTable {
		m.table.Focus()
		return nil
	}
	m.table.Blur()
	return m.input(f).Focus()
}

// input returns the text input for an input focus area.
func (m *ConsoleModel) input(f focusArea) *textinput.Model {
	switch f {
	case focusLookup:
		return &m.lookupInput
	case focusDraftKey:
		return &m.draftKey
	case focusDraftValue:
		return &m.draftValue
	default:
		return &m.draftExpiration
	}
}

// draftFromInputs reads the form. A blank or unparsable expiration is left
// unset so validation reports it as missing.
func (m ConsoleModel) draftFromInputs() entity.EntryDraft {
	d := entity.EntryDraft{Key: m.draftKey.Value(), Value: m.draftValue.Value()}
	if raw := strings.TrimSpace(m.draftExpiration.Value()); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			d.Expiration = &n
		}
	}
	return d
}

func (m *ConsoleModel) restoreDraft(d entity.EntryDraft) {
	m.draftKey.SetValue(d.Key)
	m.draftValue.SetValue(d.Value)
	if d.Expiration != nil {
		m.draftExpiration.SetValue(strconv.FormatInt(*d.Expiration, 10))
	} else {
		m.draftExpiration.SetValue("")
	}
}

// applySnapshot shows snap unless an older one arrives after a newer one.
func (m *ConsoleModel) applySnapshot(snap *entity.Snapshot) {
	if snap == nil || (m.snap != nil && snap.Generation < m.snap.Generation) {
		return
	}
	m.snap = snap
	m.syncTable()
}

func (m *ConsoleModel) goToPage(page int) {
	m.state.GoToPage(page)
	m.table.SetCursor(0)
	m.syncTable()
}

func (m ConsoleModel) pageView() usecase.PageView {
	return usecase.NewPageView(m.snap, m.state.Pagination())
}

func (m *ConsoleModel) syncTable() {
	view := m.pageView()
	rows := styles.EntryRows(view.Entries, m.format)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m ConsoleModel) lookupCmd(k string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.dispatcher.Lookup(m.ctx, k)
		return lookupDoneMsg{key: k, err: err}
	}
}

func (m ConsoleModel) setCmd(d entity.EntryDraft) tea.Cmd {
	return func() tea.Msg {
		return setDoneMsg{err: m.dispatcher.Set(m.ctx, d)}
	}
}

func (m ConsoleModel) deleteCmd(k string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{key: k, err: m.dispatcher.Delete(m.ctx, k)}
	}
}

func (m ConsoleModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.store.Refresh(m.ctx)
		return refreshDoneMsg{err: err}
	}
}

// View implements tea.Model.
func (m ConsoleModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}

	t := m.theme
	view := m.pageView()
	var b strings.Builder

	b.WriteString(m.renderHeader(view))
	b.WriteString("\n\n")

	b.WriteString(m.renderLookup())
	b.WriteString("\n\n")

	if view.IsEmpty() {
		b.WriteString("  ")
		b.WriteString(t.RenderNoData())
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	if selector := t.RenderPageSelector(view.Pages(), view.Page); selector != "" {
		b.WriteString("\n")
		b.WriteString(selector)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderDraftForm())
	b.WriteString("\n")

	if toasts := m.toasts.view(t); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m ConsoleModel) renderHeader(view usecase.PageView) string {
	t := m.theme
	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)

	parts := []string{
		iconStyle.Render(styles.IconDatabase),
		t.Title.Render("LRU Cache"),
		t.Subtle.Render(m.baseURL),
		t.CountBadge(view.Total),
	}
	if status := m.pollStatus(); status != "" {
		parts = append(parts, t.Subtle.Render(status))
	}
	if m.busy > 0 {
		parts = append(parts, m.spinner.View())
	}
	return strings.Join(parts, " ")
}

func (m ConsoleModel) pollStatus() string {
	if m.poll == nil {
		return ""
	}
	switch m.poll.State() {
	case snapshot.StateArmed:
		return fmt.Sprintf("%s every %s", styles.IconClock, m.poll.Interval())
	case snapshot.StateRefreshing:
		return styles.IconClock + " refreshing"
	case snapshot.StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

func (m ConsoleModel) renderLookup() string {
	t := m.theme
	input := t.InputBox(m.lookupInput.View(), m.focus == focusLookup)
	row := lipgloss.JoinHorizontal(lipgloss.Center, t.Label.Render(styles.IconSearch+" Lookup"), input)

	value := t.Subtle.Render("-")
	if res, ok := m.state.Lookup(); ok {
		value = t.Highlight.Render(res.Value)
	}
	return lipgloss.JoinVertical(lipgloss.Left, row, t.Label.Render("Value")+" "+value)
}

func (m ConsoleModel) renderDraftForm() string {
	t := m.theme
	field := func(label string, in textinput.Model, f focusArea) string {
		return lipgloss.JoinHorizontal(lipgloss.Center, t.Label.Render(label), t.InputBox(in.View(), m.focus == f))
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		t.Subtitle.Render(styles.IconPencil+" New entry"),
		field("Key", m.draftKey, focusDraftKey),
		field("Value", m.draftValue, focusDraftValue),
		field("Expiration", m.draftExpiration, focusDraftExpiration),
	)
}
