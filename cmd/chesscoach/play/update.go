package play

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/notnil/chess"

	"chesscoach/cmd/chesscoach/ui"
	"chesscoach/internal/config"
	"chesscoach/internal/game"
	"chesscoach/internal/logging"
)

// Update routes messages by state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.report.Width = msg.Width
		m.report.Height = msg.Height - 4
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case engineMovedMsg:
		return m.handleEngineMove(msg)

	case evalMsg:
		if msg.err == nil {
			m.evalCP = msg.cp
			m.evalOK = true
		}
		return m, nil

	case analysisProgressMsg:
		m.analysisDone = msg.done
		m.analysisTotal = msg.total
		return m, waitForProgress(m.progressCh)

	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)

	case coachReportMsg:
		m.reportText = renderReport(m.analysis, msg.moments, msg.summary, m.sess.OutcomeDescription())
		m.report.SetContent(m.reportText)
		m.report.GotoTop()
		m.state = stateReport
		return m, nil

	case configReloadedMsg:
		m.cfg = msg.cfg
		if err := m.eng.SetStrength(context.Background(), msg.cfg.Engine); err != nil {
			logging.UI("strength reload failed: %v", err)
		}
		m.status = "configuration reloaded"
		m.refreshTip()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.state {
	case statePlayerTurn:
		return m.handlePlayKey(msg)
	case stateEngineThinking:
		if msg.String() == "q" && m.input.Value() == "" {
			return m, tea.Quit
		}
		return m, nil
	case stateGameOver:
		return m.handleGameOverKey(msg)
	case stateAnalyzing:
		return m, nil
	case stateReport:
		return m.handleReportKey(msg)
	}
	return m, nil
}

func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	typing := m.input.Value() != ""

	switch msg.Type {
	case tea.KeyEsc:
		if m.selected != chess.NoSquare {
			m.clearSelection()
			return m, nil
		}
		if typing {
			m.input.Reset()
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if typing {
			notation := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			return m.playMove(notation)
		}
		return m.cursorSelect()

	case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight:
		if !typing {
			m.moveCursor(msg.Type)
			return m, nil
		}
	}

	// Single-key commands; never letters that can start a SAN move
	// (a-h, N, B, R, Q, K, O).
	if !typing {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			m.sess.Resign(m.playerColor)
			return m.finishGame()
		case "n":
			return m.newGame()
		case "F":
			m.flipped = !m.flipped
			return m, nil
		case "t":
			m.cfg.UI.LiveTips = !m.cfg.UI.LiveTips
			m.refreshTip()
			return m, nil
		case "+", "=":
			return m.adjustSkill(1)
		case "-":
			return m.adjustSkill(-1)
		case " ":
			return m.cursorSelect()
		case "?":
			m.showHelp = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleGameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "n":
		return m.newGame()
	case "F":
		m.flipped = !m.flipped
		return m, nil
	case "a":
		return m.startAnalysis()
	case "?":
		m.showHelp = true
		return m, nil
	}
	return m, nil
}

func (m Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "n":
		return m.newGame()
	}
	var cmd tea.Cmd
	m.report, cmd = m.report.Update(msg)
	return m, cmd
}

// playMove applies a typed player move and hands the turn to the
// engine.
func (m Model) playMove(notation string) (tea.Model, tea.Cmd) {
	if notation == "" {
		return m, nil
	}

	rec, err := m.sess.ApplyPlayerMove(notation)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrIllegalMove):
			m.status = fmt.Sprintf("%q is not a legal move here", notation)
		case errors.Is(err, game.ErrGameOver):
			m.status = "the game is over"
		default:
			m.status = err.Error()
		}
		return m, nil
	}

	return m.afterMove(rec)
}

// afterMove updates highlights after either side moved and schedules
// whatever comes next.
func (m Model) afterMove(rec game.MoveRecord) (tea.Model, tea.Cmd) {
	m.status = ""
	m.clearSelection()
	m.lastFrom, m.lastTo = squaresOf(rec.UCI)

	m.checkSq = chess.NoSquare
	if strings.HasSuffix(rec.SAN, "+") {
		m.checkSq = ui.KingSquare(m.sess.Position(), m.sess.Position().Turn())
	}

	if m.sess.IsOver() {
		return m.finishGame()
	}

	if m.sess.PlayerToMove() {
		m.state = statePlayerTurn
		m.refreshTip()
		if m.cfg.UI.EvalBar {
			return m, evalCmd(m.eng, m.sess.Position())
		}
		return m, nil
	}

	m.state = stateEngineThinking
	return m, engineMoveCmd(m.eng, m.sess.Position())
}

func (m Model) handleEngineMove(msg engineMovedMsg) (tea.Model, tea.Cmd) {
	if m.state != stateEngineThinking {
		return m, nil
	}
	if msg.err != nil {
		m.status = fmt.Sprintf("engine error: %v", msg.err)
		m.state = statePlayerTurn
		return m, nil
	}

	rec, err := m.sess.ApplyEngineMove(msg.move)
	if err != nil {
		m.status = fmt.Sprintf("engine move rejected: %v", err)
		m.state = statePlayerTurn
		return m, nil
	}
	return m.afterMove(rec)
}

// finishGame archives the result and shows the game-over screen.
func (m Model) finishGame() (tea.Model, tea.Cmd) {
	m.state = stateGameOver
	m.status = m.sess.OutcomeDescription()

	if m.st != nil && !m.saved {
		rec := m.sess.Record(m.cfg.Engine)
		if err := m.st.SaveGame(rec); err != nil {
			logging.UI("failed to archive game %s: %v", rec.ID, err)
			m.status += " (archive failed)"
		} else {
			m.saved = true
		}
	}
	return m, nil
}

// newGame resets the board for another round at the current settings.
func (m Model) newGame() (tea.Model, tea.Cmd) {
	if err := m.eng.NewGame(context.Background()); err != nil {
		m.status = fmt.Sprintf("engine reset failed: %v", err)
		return m, nil
	}

	m.sess = game.NewSession(m.playerColor, m.eng)
	m.saved = false
	m.analysis = nil
	m.reportText = ""
	m.analysisDone = 0
	m.analysisTotal = 0
	m.evalCP = 0
	m.evalOK = false
	m.status = ""
	m.lastFrom = chess.NoSquare
	m.lastTo = chess.NoSquare
	m.checkSq = chess.NoSquare
	m.clearSelection()
	m.input.Reset()

	if m.playerColor == chess.White {
		m.state = statePlayerTurn
		m.refreshTip()
		return m, nil
	}
	m.state = stateEngineThinking
	return m, engineMoveCmd(m.eng, m.sess.Position())
}

// startAnalysis kicks off the post-game engine pass.
func (m Model) startAnalysis() (tea.Model, tea.Cmd) {
	moves := m.sess.Moves()
	if len(moves) == 0 {
		m.status = "nothing to analyze"
		return m, nil
	}

	m.state = stateAnalyzing
	m.analysisDone = 0
	m.analysisTotal = len(moves) + 1
	// Fresh channel per run so stale progress from an earlier pass
	// cannot leak into this one
	m.progressCh = make(chan tea.Msg, 8)
	return m, tea.Batch(
		analyzeCmd(m.eng, m.cfg.Engine.AnalysisDepth, moves, game.ColorName(m.playerColor), m.progressCh),
		waitForProgress(m.progressCh),
		m.spin.Tick,
	)
}

func (m Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateGameOver
		m.status = fmt.Sprintf("analysis failed: %v", msg.err)
		return m, nil
	}

	m.analysis = msg.report
	if m.st != nil {
		if err := m.st.SaveReport(m.sess.ID(), msg.report); err != nil {
			logging.UI("failed to save report for %s: %v", m.sess.ID(), err)
		}
	}
	return m, coachReportCmd(m.ch, msg.report, m.sess.OutcomeDescription())
}

// adjustSkill changes the engine skill level by delta for the next
// moves.
func (m Model) adjustSkill(delta int) (tea.Model, tea.Cmd) {
	m.cfg.Engine.UseElo = false
	m.cfg.Engine.SkillLevel = config.ClampSkill(m.cfg.Engine.SkillLevel + delta)
	if err := m.eng.SetStrength(context.Background(), m.cfg.Engine); err != nil {
		m.status = fmt.Sprintf("strength change failed: %v", err)
		return m, nil
	}
	m.status = fmt.Sprintf("engine skill %d (%s)",
		m.cfg.Engine.SkillLevel, config.SkillLabel(m.cfg.Engine.SkillLevel))
	return m, nil
}

// moveCursor moves the board cursor one square, clamped to the board.
func (m *Model) moveCursor(key tea.KeyType) {
	if m.cursorRow < 0 {
		// Start on the player's side of the board
		m.cursorRow, m.cursorCol = 6, 4
	}
	switch key {
	case tea.KeyUp:
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case tea.KeyDown:
		if m.cursorRow < 7 {
			m.cursorRow++
		}
	case tea.KeyLeft:
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case tea.KeyRight:
		if m.cursorCol < 7 {
			m.cursorCol++
		}
	}
}

// cursorSelect picks up or drops a piece at the cursor square.
func (m Model) cursorSelect() (tea.Model, tea.Cmd) {
	if m.cursorRow < 0 {
		return m, nil
	}
	sq := ui.SquareAt(m.cursorRow, m.cursorCol, m.flipped)
	board := m.sess.Position().Board()

	if m.selected == chess.NoSquare {
		if p := board.Piece(sq); p != chess.NoPiece && p.Color() == m.playerColor {
			m.selected = sq
			m.targets = m.sess.LegalTargets(sq)
		}
		return m, nil
	}

	if containsTarget(m.targets, sq) {
		notation := m.selected.String() + sq.String()
		if board.Piece(m.selected).Type() == chess.Pawn && (sq.Rank() == chess.Rank8 || sq.Rank() == chess.Rank1) {
			notation += "q"
		}
		m.clearSelection()
		return m.playMove(notation)
	}

	// Reselect or drop
	m.clearSelection()
	if p := board.Piece(sq); p != chess.NoPiece && p.Color() == m.playerColor {
		m.selected = sq
		m.targets = m.sess.LegalTargets(sq)
	}
	return m, nil
}

func containsTarget(targets []chess.Square, sq chess.Square) bool {
	for _, t := range targets {
		if t == sq {
			return true
		}
	}
	return false
}

// squaresOf extracts the from/to squares of a UCI move string.
func squaresOf(uciMove string) (chess.Square, chess.Square) {
	if len(uciMove) < 4 {
		return chess.NoSquare, chess.NoSquare
	}
	return squareFromCoord(uciMove[:2]), squareFromCoord(uciMove[2:4])
}

func squareFromCoord(coord string) chess.Square {
	file := int(coord[0] - 'a')
	rank := int(coord[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoSquare
	}
	return chess.Square(rank*8 + file)
}
