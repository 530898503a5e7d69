// Package app implements the root Bubble Tea model for soundpairs.
package app

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/soundpairs/internal/game"
	"github.com/zjrosen/soundpairs/internal/history"
	"github.com/zjrosen/soundpairs/internal/keys"
	"github.com/zjrosen/soundpairs/internal/log"
	"github.com/zjrosen/soundpairs/internal/sound"
	"github.com/zjrosen/soundpairs/internal/ui/cardgrid"
	"github.com/zjrosen/soundpairs/internal/ui/finished"
	"github.com/zjrosen/soundpairs/internal/ui/howto"
	"github.com/zjrosen/soundpairs/internal/ui/styles"
)

const (
	panelWidth  = 24
	panelHeight = 11
	resetZone   = "reset"
)

// Options configure the game screen.
type Options struct {
	Rows, Cols int
	Sounds     []sound.Asset
	Rules      *game.Rules // nil uses game.DefaultRules
	Seed       uint64      // 0 deals differently every run

	Player  sound.Player
	Library *sound.Library // reloads the sound folder on watcher changes
	Watcher *sound.Watcher // nil disables hot reload
	History history.Repository
	Hooks   game.Hooks

	Zones     *zone.Manager // nil disables mouse support
	HelpStyle string        // glamour style for the how-to overlay
	ShowNames bool          // print sound names on revealed cards
	Version   string
}

// resultSavedMsg reports the outcome of persisting a finished round.
type resultSavedMsg struct {
	result *history.Result
	err    error
}

// finishInbox collects results from the board's OnFinish hook until
// Update picks them up.
type finishInbox struct {
	results []game.Result
}

func (f *finishInbox) add(r game.Result) {
	f.results = append(f.results, r)
}

func (f *finishInbox) take() []game.Result {
	out := f.results
	f.results = nil
	return out
}

// Model is the root game screen.
type Model struct {
	board  *game.Board
	tasks  *TaskQueue
	inbox  *finishInbox
	grid   cardgrid.Model
	modal  finished.Model
	howto  howto.Model
	help   help.Model
	keys   keys.KeyMap
	zones  *zone.Manager
	width  int
	height int

	showModal bool
	showHelp  bool
	status    string
	statusErr bool

	library *sound.Library
	watcher *sound.Watcher
	repo    history.Repository
	version string
}

// New builds the board and the screen around it. Board construction errors
// (grid size, too few sounds) are returned unchanged.
func New(opts Options) (Model, error) {
	tasks := NewTaskQueue()
	inbox := &finishInbox{}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed)) //nolint:gosec // game shuffling
	}
	board, err := game.NewBoard(opts.Rows, opts.Cols, opts.Sounds, game.Options{
		Rules:     opts.Rules,
		Scheduler: tasks,
		Player:    opts.Player,
		Rand:      rng,
		Hooks:     game.ChainHooks(opts.Hooks, game.Hooks{OnFinish: inbox.add}),
	})
	if err != nil {
		return Model{}, err
	}

	return Model{
		board:   board,
		tasks:   tasks,
		inbox:   inbox,
		grid:    cardgrid.New(opts.Rows, opts.Cols, opts.Zones).SetShowNames(opts.ShowNames),
		howto:   howto.New(opts.HelpStyle),
		help:    help.New(),
		keys:    keys.Game,
		zones:   opts.Zones,
		library: opts.Library,
		watcher: opts.Watcher,
		repo:    opts.History,
		version: opts.Version,
	}, nil
}

// Title returns the window title.
func (m Model) Title() string {
	return strings.TrimSpace("Sound Concentration " + m.version)
}

// Board exposes the game state.
func (m Model) Board() *game.Board { return m.board }

// Status returns the current status line text.
func (m Model) Status() string { return m.status }

// ShowingModal reports whether the end-of-game modal is open.
func (m Model) ShowingModal() bool { return m.showModal }

// ShowingHelp reports whether the how-to overlay is open.
func (m Model) ShowingHelp() bool { return m.showHelp }

// Cursor returns the keyboard cursor.
func (m Model) Cursor() game.Position { return m.grid.Cursor() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.Title())}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case TaskDueMsg:
		m.tasks.Run(msg)
		return m.afterBoardChange()

	case finished.SelectMsg:
		m.showModal = false
		if msg.Option == finished.OptionEnd {
			return m, tea.Quit
		}
		return m.reset()

	case howto.CloseMsg:
		m.showHelp = false
		return m, nil

	case sound.ChangedMsg:
		m = m.reloadSounds(msg.Dir)
		if m.watcher != nil {
			return m, m.watcher.Listen()
		}
		return m, nil

	case resultSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatDB, "Saving result failed", msg.err)
			return m.setStatus("Could not save result: "+msg.err.Error(), true), nil
		}
		log.Info(log.CatDB, "Result saved", "guid", msg.result.GUID, "score", msg.result.Score)
		return m.setStatus(fmt.Sprintf("Saved score %d", msg.result.Score), false), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showModal {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		var cmd tea.Cmd
		m.howto, cmd = m.howto.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		return m.reset()
	case key.Matches(msg, m.keys.Up):
		m.grid = m.grid.Move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.grid = m.grid.Move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.grid = m.grid.Move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.grid = m.grid.Move(0, 1)
	case key.Matches(msg, m.keys.Open):
		return m.open(m.grid.Cursor())
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showModal {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	if m.showHelp || m.zones == nil {
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.zones.Get(resetZone).InBounds(msg) {
		return m.reset()
	}
	if pos, ok := m.grid.CardAt(msg); ok {
		m.grid = m.grid.Move(pos.Row-m.grid.Cursor().Row, pos.Col-m.grid.Cursor().Col)
		return m.open(pos)
	}
	return m, nil
}

func (m Model) open(pos game.Position) (tea.Model, tea.Cmd) {
	if !m.board.Select(pos) {
		return m, nil
	}
	m.status = ""
	return m, m.tasks.Drain()
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.board.Reset()
	m.showModal = false
	m = m.setStatus(fmt.Sprintf("Round %d", m.board.Round()), false)
	return m, m.tasks.Drain()
}

// afterBoardChange schedules follow-up ticks and reacts to a finished round.
func (m Model) afterBoardChange() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.tasks.Drain()}

	for _, r := range m.inbox.take() {
		m.modal = finished.New(r.Score, m.zones).SetSize(m.width, m.height)
		m.showModal = true
		m.showHelp = false
		if m.repo != nil {
			cmds = append(cmds, saveResult(m.repo, r))
		}
	}
	return m, tea.Batch(cmds...)
}

func saveResult(repo history.Repository, r game.Result) tea.Cmd {
	return func() tea.Msg {
		rec := history.FromGame(r)
		return resultSavedMsg{result: rec, err: repo.Save(rec)}
	}
}

func (m Model) reloadSounds(dir string) Model {
	if m.library == nil {
		return m
	}
	assets, err := m.library.Load(dir)
	if err != nil {
		log.ErrorErr(log.CatSound, "Reloading sounds failed", err, "dir", dir)
		return m.setStatus("Sound folder unreadable: "+err.Error(), true)
	}
	if err := m.board.SetSounds(assets); err != nil {
		log.Warn(log.CatSound, "Keeping previous sounds", "dir", dir, "error", err)
		return m.setStatus("Keeping previous sounds: "+err.Error(), true)
	}
	return m.setStatus(fmt.Sprintf("%d sounds loaded, used from the next round", len(assets)), false)
}

func (m Model) setStatus(text string, isErr bool) Model {
	m.status = text
	m.statusErr = isErr
	return m
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.grid = m.grid.SetSize(max(width-panelWidth-2, 0), max(height-3, 0))
	m.modal = m.modal.SetSize(width, height)
	m.howto = m.howto.SetSize(width, height)
	m.help.Width = width
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch {
	case m.showModal:
		view = m.modal.Overlay()
	case m.showHelp:
		view = m.howto.View()
	default:
		view = m.gameView()
	}
	if m.zones != nil {
		return m.zones.Scan(view)
	}
	return view
}

func (m Model) gameView() string {
	title := styles.TitleStyle.Render(m.Title())
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.grid.View(m.board.Cards()),
		"  ",
		m.panelView(),
	)

	status := m.status
	if m.width > 0 {
		status = ansi.Truncate(status, m.width, "…")
	}
	statusStyle := styles.MutedStyle
	if m.statusErr {
		statusStyle = styles.ErrorStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		statusStyle.Render(status),
		m.help.View(m.keys),
	)
}

func (m Model) panelView() string {
	stats := m.board.Stats()
	lines := []string{
		"Score: " + styles.ScoreStyle(m.board.Score()).Render(fmt.Sprintf("%d", m.board.Score())),
		"",
		fmt.Sprintf("Matches:    %d", stats.Matches),
		fmt.Sprintf("Mismatches: %d", stats.Mismatches),
		fmt.Sprintf("Round:      %d", m.board.Round()),
		"",
	}
	button := styles.ButtonStyle.Render("Reset")
	if m.zones != nil {
		button = m.zones.Mark(resetZone, button)
	}
	content := strings.Join(lines, "\n") + "\n" + button
	return styles.RenderWithTitleBorder(content, "Score", panelWidth, panelHeight, m.board.Locked())
}
