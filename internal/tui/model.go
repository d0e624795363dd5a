package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alfredjeanlab/issueboard/internal/board"
	"github.com/alfredjeanlab/issueboard/internal/client"
	"github.com/alfredjeanlab/issueboard/internal/model"
)

const (
	// FetchInterval is the default polling period.
	FetchInterval = 30 * time.Second

	requestTimeout = 15 * time.Second
)

// Service is the subset of the issue API the board needs.
// *client.HTTPClient satisfies it.
type Service interface {
	ListIssues(ctx context.Context, req *client.ListIssuesRequest) ([]*model.Issue, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Issue, error)
}

// fetchMsg carries the result of one list request.
type fetchMsg struct {
	seq    uint64
	issues []*model.Issue
	err    error
}

// mutationMsg carries the result of one status PATCH.
type mutationMsg struct {
	result board.MutationResult
}

// pollMsg triggers the periodic refetch.
type pollMsg struct{}

// toastExpiredMsg forces a redraw once a notification has faded.
type toastExpiredMsg struct{}

// Options configures a Model.
type Options struct {
	Interval time.Duration // polling period; zero means FetchInterval
	Logger   *slog.Logger
	Keys     *KeyMap
	Now      func() time.Time
}

// Model is the bubbletea model for the board.
type Model struct {
	svc      Service
	board    *board.Board
	layout   *Layout
	keys     KeyMap
	interval time.Duration
	logger   *slog.Logger

	width, height int
	ready         bool

	cursorCol, cursorRow int
}

// New builds a board model backed by svc.
func New(svc Service, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = FetchInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	keys := DefaultKeyMap
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	boardOpts := []board.Option{board.WithLogger(opts.Logger)}
	if opts.Now != nil {
		boardOpts = append(boardOpts, board.WithClock(opts.Now))
	}

	layout := &Layout{}
	return Model{
		svc:      svc,
		board:    board.New(svc, layout, boardOpts...),
		layout:   layout,
		keys:     keys,
		interval: opts.Interval,
		logger:   opts.Logger,
	}
}

// Board exposes the engine, mainly so callers can Close it after Run.
func (m Model) Board() *board.Board { return m.board }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.poll())
}

func (m Model) fetch() tea.Cmd {
	seq := m.board.BeginFetch()
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		issues, err := svc.ListIssues(ctx, nil)
		return fetchMsg{seq: seq, issues: issues, err: err}
	}
}

func (m Model) poll() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{} })
}

func toastTimer() tea.Cmd {
	return tea.Tick(board.NotificationTTL, func(time.Time) tea.Msg { return toastExpiredMsg{} })
}

// execute turns the board's outbox into PATCH commands.
func (m Model) execute() []tea.Cmd {
	var cmds []tea.Cmd
	for _, mut := range m.board.TakeMutations() {
		b := m.board
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return mutationMsg{result: b.Execute(ctx, mut)}
		})
	}
	return cmds
}

func batch(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Geometry under an active drag is no longer valid.
		m.board.Cancel()
		m.width, m.height = msg.Width, msg.Height
		m.ready = true

	case tea.BlurMsg:
		m.board.Cancel()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.board.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.board.Cancel()
		case key.Matches(msg, m.keys.Refresh):
			cmds = append(cmds, m.fetch())
		case key.Matches(msg, m.keys.Left):
			m.cursorCol--
		case key.Matches(msg, m.keys.Right):
			m.cursorCol++
		case key.Matches(msg, m.keys.Up):
			m.cursorRow--
		case key.Matches(msg, m.keys.Down):
			m.cursorRow++
		case key.Matches(msg, m.keys.MoveLeft):
			m.moveSelected(-1)
		case key.Matches(msg, m.keys.MoveRight):
			m.moveSelected(1)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case fetchMsg:
		if msg.err != nil {
			if m.board.FailFetch(msg.seq, msg.err) {
				cmds = append(cmds, toastTimer())
			}
		} else if !m.board.ApplyFetch(msg.seq, msg.issues) {
			m.logger.Debug("dropped stale fetch", "seq", msg.seq)
		}

	case mutationMsg:
		if m.board.Resolve(msg.result) {
			cmds = append(cmds, m.fetch())
		}
		cmds = append(cmds, toastTimer())

	case pollMsg:
		cmds = append(cmds, m.fetch(), m.poll())

	case toastExpiredMsg:
		// Redraw only; the snapshot drops expired notifications.
	}

	m.relayout()
	cmds = append(cmds, m.execute()...)
	return m, batch(cmds)
}

func (m *Model) relayout() {
	if !m.ready {
		return
	}
	snap := m.board.Snapshot()
	*m.layout = ComputeLayout(m.width, m.height, snap.Columns)
	m.clampCursor(snap.Columns)
}

func (m *Model) clampCursor(cols []board.Column) {
	if len(cols) == 0 {
		m.cursorCol, m.cursorRow = 0, 0
		return
	}
	m.cursorCol = max(0, min(m.cursorCol, len(cols)-1))
	rows := cols[m.cursorCol].Count()
	if box, ok := m.layout.column(m.cursorCol); ok {
		rows = box.visible
	}
	m.cursorRow = max(0, min(m.cursorRow, rows-1))
}

// selected returns the issue under the keyboard cursor.
func (m Model) selected() *model.Issue {
	cols := m.board.Snapshot().Columns
	if m.cursorCol < 0 || m.cursorCol >= len(cols) {
		return nil
	}
	issues := cols[m.cursorCol].Issues
	if m.cursorRow < 0 || m.cursorRow >= len(issues) {
		return nil
	}
	return issues[m.cursorRow]
}

func (m *Model) moveSelected(delta int) {
	issue := m.selected()
	if issue == nil {
		return
	}
	target := m.cursorCol + delta
	if target < 0 || target >= len(model.Statuses) {
		return
	}
	m.board.Move(issue.ID, model.Statuses[target])
	m.cursorCol = target
	m.cursorRow = len(m.board.Snapshot().Columns[target].Issues) - 1
	for i, it := range m.board.Snapshot().Columns[target].Issues {
		if it.ID == issue.ID {
			m.cursorRow = i
		}
	}
}

// pointerEvent converts a terminal mouse event. ok is false for events
// the board does not care about (wheel, right button).
func pointerEvent(msg tea.MouseMsg) (board.PointerEvent, bool) {
	ev := board.PointerEvent{Source: board.SourceMouse, X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		ev.Kind = board.PointerDown
	case tea.MouseActionMotion:
		ev.Kind = board.PointerMove
	case tea.MouseActionRelease:
		ev.Kind = board.PointerUp
	default:
		return ev, false
	}
	return ev, true
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	ev, ok := pointerEvent(msg)
	if !ok {
		return
	}
	if ev.Kind != board.PointerDown {
		m.board.Dispatch(ev)
		return
	}
	p := board.Point{X: ev.X, Y: ev.Y}
	id, ok := m.layout.CardAt(p)
	if !ok {
		return
	}
	if m.board.BeginDrag(id, ev) {
		m.selectCard(id)
	}
}

func (m *Model) selectCard(id string) {
	for _, c := range m.layout.cards {
		if c.id == id {
			m.cursorCol, m.cursorRow = c.col, c.row
			return
		}
	}
}

// Run starts the board program and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, svc Service, opts Options) error {
	m := New(svc, opts)
	defer m.board.Close()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
