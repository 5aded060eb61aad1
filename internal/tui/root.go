package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memoy/tui-go/internal/board"
	"github.com/memoy/tui-go/internal/config"
	"github.com/memoy/tui-go/internal/game"
	"github.com/memoy/tui-go/internal/gamelog"
	"github.com/memoy/tui-go/internal/ledger"
	"github.com/memoy/tui-go/internal/session"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewModeTitle      ViewMode = iota // Boot line and blinking "press enter"
	ViewModeMenu                       // Main menu
	ViewModeDifficulty                 // Easy / hard selection
	ViewModeName                       // Player name prompt
	ViewModePlay                       // Board and pick input
	ViewModeScores                     // High-score table
	ViewModeHelp                       // Help overlay
)

const (
	bootText     = "Launching MEMOY"
	bootInterval = 35 * time.Millisecond
	blinkEvery   = 500 * time.Millisecond
	clockEvery   = time.Second
)

// RevealDelay is how long both cards of a turn stay visible before resolving
var RevealDelay = time.Second

// Menu entries
const (
	menuNewGame = iota
	menuTimedGame
	menuHighScores
	menuExit
)

// Messages
type bootTickMsg struct{}

type blinkTickMsg struct{}

// clockTickMsg drives the timer display and the timed-session check
type clockTickMsg struct {
	game int
}

// resolveMsg fires after the reveal delay
type resolveMsg struct {
	game int
}

// Options adjust how the program starts
type Options struct {
	// SkipTitle starts at the menu
	SkipTitle bool
	// QuickPlay starts a game straight away with the configured settings
	QuickPlay bool
	// PlayerName is used by QuickPlay; empty prompts for a name
	PlayerName string
	// LedgerWarning is shown on the menu, e.g. an unreadable high-score file
	LedgerWarning string
}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	// View state
	viewMode ViewMode
	prevMode ViewMode // view to return to from help

	cfg    *config.Config
	ledger *ledger.Ledger
	logger *gamelog.Logger

	// Title screen
	bootIdx int
	blinkOn bool

	// Menus
	menuIdx       int
	difficultyIdx int
	difficulties  []config.DifficultyInfo
	settings      session.Settings // settings chosen for the next game

	// Inputs
	nameInput textinput.Model
	pickInput textinput.Model

	// Current game
	ctrl      *session.Controller
	ctrlOpts  []session.Option // appended to every new controller
	gameID    int
	revealing bool
	errMsg    string

	// Menu notice (ledger read failures and similar)
	notice string

	debug DebugPanel
	keys  KeyMap
	help  help.Model

	quitting bool
}

// NewRootModel creates a new root model
func NewRootModel(cfg *config.Config, l *ledger.Ledger, logger *gamelog.Logger, opts Options) Model {
	if logger == nil {
		logger = gamelog.Nop()
	}

	ni := textinput.New()
	ni.Placeholder = "Player"
	ni.Prompt = "Name: "
	ni.PromptStyle = InputPromptStyle
	ni.CharLimit = 24
	ni.Width = 30

	pi := textinput.New()
	pi.Placeholder = "row col"
	pi.Prompt = "❯ "
	pi.PromptStyle = InputPromptStyle
	pi.CharLimit = 16
	pi.Width = 20

	m := Model{
		viewMode:      ViewModeTitle,
		cfg:           cfg,
		ledger:        l,
		logger:        logger,
		difficulties:  config.AvailableDifficulties(),
		difficultyIdx: difficultyIndex(cfg.GridSize),
		nameInput:     ni,
		pickInput:     pi,
		notice:        opts.LedgerWarning,
		debug:         NewDebugPanel(cfg.Debug),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		blinkOn:       true,
	}

	if opts.SkipTitle {
		m.viewMode = ViewModeMenu
	}
	if opts.QuickPlay {
		m.settings = session.Settings{
			GridSize:  cfg.GridSize,
			Timed:     cfg.Timed,
			TimeLimit: cfg.TimeLimit(),
		}
		m.viewMode = ViewModeName
		m.nameInput.SetValue(opts.PlayerName)
		if opts.PlayerName != "" {
			m.startGame(opts.PlayerName)
		} else {
			m.nameInput.Focus()
		}
	}
	return m
}

func difficultyIndex(gridSize int) int {
	for i, d := range config.AvailableDifficulties() {
		if d.GridSize == gridSize {
			return i
		}
	}
	return 0
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	switch m.viewMode {
	case ViewModeTitle:
		cmds = append(cmds, bootTickCmd())
	case ViewModePlay:
		cmds = append(cmds, clockTickCmd(m.gameID))
	}
	return tea.Batch(cmds...)
}

func bootTickCmd() tea.Cmd {
	return tea.Tick(bootInterval, func(time.Time) tea.Msg { return bootTickMsg{} })
}

func blinkTickCmd() tea.Cmd {
	return tea.Tick(blinkEvery, func(time.Time) tea.Msg { return blinkTickMsg{} })
}

func clockTickCmd(game int) tea.Cmd {
	return tea.Tick(clockEvery, func(time.Time) tea.Msg { return clockTickMsg{game: game} })
}

func resolveCmd(game int) tea.Cmd {
	return tea.Tick(RevealDelay, func(time.Time) tea.Msg { return resolveMsg{game: game} })
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		return m, nil

	case bootTickMsg:
		if m.viewMode != ViewModeTitle {
			return m, nil
		}
		if m.bootIdx < len(bootText) {
			m.bootIdx++
			return m, bootTickCmd()
		}
		return m, blinkTickCmd()

	case blinkTickMsg:
		if m.viewMode != ViewModeTitle {
			return m, nil
		}
		m.blinkOn = !m.blinkOn
		return m, blinkTickCmd()

	case clockTickMsg:
		if msg.game != m.gameID || m.ctrl == nil || m.ctrl.Done() {
			return m, nil
		}
		if m.ctrl.Tick() {
			m.onSessionEnd()
			return m, nil
		}
		return m, clockTickCmd(m.gameID)

	case resolveMsg:
		if msg.game != m.gameID || !m.revealing || m.ctrl == nil {
			return m, nil
		}
		m.revealing = false
		res, err := m.ctrl.Resolve()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.debug.AddTurn(res)
		if res.SessionEnded {
			m.onSessionEnd()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Interrupt) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewModeTitle:
		if key.Matches(msg, m.keys.Enter) {
			m.viewMode = ViewModeMenu
		} else if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case ViewModeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.viewMode = m.prevMode
		}
		return m, nil

	case ViewModeMenu:
		return m.handleMenuKey(msg)

	case ViewModeDifficulty:
		return m.handleDifficultyKey(msg)

	case ViewModeName:
		return m.handleNameKey(msg)

	case ViewModePlay:
		return m.handlePlayKey(msg)

	case ViewModeScores:
		if key.Matches(msg, m.keys.Escape, m.keys.Enter, m.keys.Quit, m.keys.Scores) {
			m.viewMode = ViewModeMenu
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuIdx > 0 {
			m.menuIdx--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.menuIdx < menuExit {
			m.menuIdx++
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.prevMode = m.viewMode
		m.viewMode = ViewModeHelp
		return m, nil
	case key.Matches(msg, m.keys.Scores):
		m.viewMode = ViewModeScores
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Enter):
		return m.chooseMenu(m.menuIdx)
	}

	switch msg.String() {
	case "1", "2", "3", "4":
		return m.chooseMenu(int(msg.String()[0] - '1'))
	}
	return m, nil
}

func (m Model) chooseMenu(idx int) (tea.Model, tea.Cmd) {
	m.menuIdx = idx
	switch idx {
	case menuNewGame:
		m.viewMode = ViewModeDifficulty
	case menuTimedGame:
		m.settings = session.Settings{
			GridSize:  m.cfg.GridSize,
			Timed:     true,
			TimeLimit: m.cfg.TimeLimit(),
		}
		return m.promptName()
	case menuHighScores:
		m.viewMode = ViewModeScores
	case menuExit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleDifficultyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.difficultyIdx > 0 {
			m.difficultyIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.difficultyIdx < len(m.difficulties)-1 {
			m.difficultyIdx++
		}
	case key.Matches(msg, m.keys.Escape):
		m.viewMode = ViewModeMenu
	case key.Matches(msg, m.keys.Enter):
		m.settings = session.Settings{GridSize: m.difficulties[m.difficultyIdx].GridSize}
		return m.promptName()
	default:
		switch msg.String() {
		case "1", "2":
			idx := int(msg.String()[0] - '1')
			if idx < len(m.difficulties) {
				m.difficultyIdx = idx
				m.settings = session.Settings{GridSize: m.difficulties[idx].GridSize}
				return m.promptName()
			}
		}
	}
	return m, nil
}

func (m Model) promptName() (tea.Model, tea.Cmd) {
	m.viewMode = ViewModeName
	m.errMsg = ""
	m.nameInput.Reset()
	return m, m.nameInput.Focus()
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.nameInput.Blur()
		m.viewMode = ViewModeMenu
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.nameInput.Blur()
		if !m.startGame(m.nameInput.Value()) {
			m.viewMode = ViewModeMenu
			return m, nil
		}
		return m, tea.Batch(m.pickInput.Focus(), clockTickCmd(m.gameID))
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// startGame builds a controller for the chosen settings and switches to play
func (m *Model) startGame(name string) bool {
	log, id := m.logger.ForSession()
	opts := []session.Option{session.WithLogger(log)}
	if m.cfg.Seed != 0 {
		opts = append(opts, session.WithRand(board.NewRand(m.cfg.Seed+uint64(m.gameID))))
	}
	opts = append(opts, m.ctrlOpts...)

	ctrl := session.New(m.settings, m.ledger, opts...)
	if err := ctrl.Start(name); err != nil {
		m.notice = "Could not start game: " + err.Error()
		return false
	}

	m.ctrl = ctrl
	m.gameID++
	m.revealing = false
	m.errMsg = ""
	m.viewMode = ViewModePlay
	m.pickInput.Reset()
	m.pickInput.Focus()
	m.debug.AddEvent(gamelog.EventSessionStart, "id="+id[:8])
	return true
}

func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.Done() {
		if key.Matches(msg, m.keys.Enter, m.keys.Escape) {
			m.pickInput.Blur()
			m.ctrl = nil
			m.viewMode = ViewModeMenu
		}
		return m, nil
	}

	// Both cards are on screen; wait for the resolve tick
	if m.revealing {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Abort):
		if m.ctrl.Abort() {
			m.errMsg = "Pick cancelled."
			m.debug.AddEvent("abort", "")
			return m, nil
		}
		// Leaving at a first pick abandons the game unrecorded
		m.pickInput.Blur()
		m.ctrl = nil
		m.gameID++
		m.viewMode = ViewModeMenu
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.submitPick()
	}

	var cmd tea.Cmd
	m.pickInput, cmd = m.pickInput.Update(msg)
	return m, cmd
}

func (m Model) submitPick() (tea.Model, tea.Cmd) {
	line := m.pickInput.Value()
	m.pickInput.Reset()
	second := m.ctrl.Phase() == game.StateAwaitingSecondPick

	err := m.ctrl.HandleInput(line)
	switch {
	case err == nil:
		m.errMsg = ""
		m.debug.AddEvent(gamelog.EventPick, line)
		if m.ctrl.Phase() == game.StateResolving {
			m.revealing = true
			return m, resolveCmd(m.gameID)
		}
	case errors.Is(err, session.ErrInput):
		var inputErr *session.InputError
		if errors.As(err, &inputErr) {
			m.errMsg = "Invalid input: " + inputErr.Reason
		}
		m.debug.AddEvent(gamelog.EventInputError, line)
	case errors.Is(err, game.ErrInvalidSelection):
		if second {
			m.errMsg = "Invalid second pick."
		} else {
			m.errMsg = "Invalid pick. Try again."
		}
		m.debug.AddEvent(gamelog.EventPickRejected, err.Error())
	case errors.Is(err, game.ErrSessionComplete):
		m.errMsg = ""
		m.onSessionEnd()
	default:
		m.errMsg = err.Error()
	}
	return m, nil
}

// onSessionEnd logs the result in the debug panel
func (m *Model) onSessionEnd() {
	m.revealing = false
	m.pickInput.Blur()
	if res, ok := m.ctrl.Result(); ok {
		event := gamelog.EventSessionEnd
		if res.TimedOut {
			event = gamelog.EventTimeout
		}
		m.debug.AddEvent(event, res.Entry.PlayerName)
		if res.SaveErr != nil {
			m.debug.AddEvent(gamelog.EventLedgerSaveFailed, res.SaveErr.Error())
		}
	}
}

// Quitting reports whether the user asked to leave
func (m Model) Quitting() bool { return m.quitting }
