// Package play is the interactive bubbletea game screen: the board, the
// move input, engine replies, live tips, and the post-game analysis
// flow.
package play

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/notnil/chess"

	"chesscoach/cmd/chesscoach/ui"
	"chesscoach/internal/analysis"
	"chesscoach/internal/coach"
	"chesscoach/internal/config"
	"chesscoach/internal/engine"
	"chesscoach/internal/game"
	"chesscoach/internal/store"
)

type state int

const (
	statePlayerTurn state = iota
	stateEngineThinking
	stateGameOver
	stateAnalyzing
	stateReport
)

const evalBarHeight = 8

// Model is the bubbletea model for a play session.
type Model struct {
	cfg     *config.Config
	dataDir string
	styles  ui.Styles

	eng   *engine.Engine
	sess  *game.Session
	st    *store.Store // nil when the archive could not be opened
	ch    *coach.Coach
	live  coach.LiveCoach
	state state

	playerColor chess.Color
	flipped     bool

	input    textinput.Model
	spin     spinner.Model
	prog     progress.Model
	report   viewport.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Board cursor selection
	cursorRow int
	cursorCol int
	selected  chess.Square
	targets   []chess.Square

	// Highlights
	lastFrom chess.Square
	lastTo   chess.Square
	checkSq  chess.Square

	// Eval bar
	evalCP int
	evalOK bool

	// Side panel
	tip    string
	status string

	// Post-game
	saved         bool
	analysisDone  int
	analysisTotal int
	progressCh    chan tea.Msg
	analysis      *analysis.Report
	reportText    string
}

// NewModel builds the play model. The engine must already be started.
func NewModel(cfg *config.Config, dataDir string, eng *engine.Engine, st *store.Store, ch *coach.Coach, playerColor chess.Color) Model {
	input := textinput.New()
	input.Placeholder = "your move (e4, Nf3, e2e4)"
	input.CharLimit = 10
	input.Width = 28
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	styles := ui.DefaultStyles()
	spin.Style = styles.Spinner

	m := Model{
		cfg:         cfg,
		dataDir:     dataDir,
		styles:      styles,
		eng:         eng,
		st:          st,
		ch:          ch,
		playerColor: playerColor,
		flipped:     cfg.UI.FlipWithPlayer && playerColor == chess.Black,
		input:       input,
		spin:        spin,
		prog:        progress.New(progress.WithDefaultGradient()),
		report:      viewport.New(80, 20),
		selected:    chess.NoSquare,
		lastFrom:    chess.NoSquare,
		lastTo:      chess.NoSquare,
		checkSq:     chess.NoSquare,
		cursorRow:   -1,
		progressCh:  make(chan tea.Msg, 8),
	}
	m.sess = game.NewSession(playerColor, eng)
	if playerColor == chess.White {
		m.state = statePlayerTurn
		m.refreshTip()
	} else {
		m.state = stateEngineThinking
	}
	return m
}

// Init starts the spinner and, when the engine has the first move, its
// search.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, textinput.Blink}
	if m.state == stateEngineThinking {
		cmds = append(cmds, engineMoveCmd(m.eng, m.sess.Position()))
	}
	return tea.Batch(cmds...)
}

// refreshTip recomputes the live coaching tip for the side panel.
func (m *Model) refreshTip() {
	if !m.cfg.UI.LiveTips {
		m.tip = ""
		return
	}
	m.tip = m.live.Tip(m.sess.Position(), m.sess.Moves(), m.playerColor)
}

// clearSelection drops the board cursor's piece selection.
func (m *Model) clearSelection() {
	m.selected = chess.NoSquare
	m.targets = nil
}
