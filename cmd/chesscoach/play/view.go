package play

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"chesscoach/cmd/chesscoach/ui"
	"chesscoach/internal/analysis"
	"chesscoach/internal/coach"
	"chesscoach/internal/config"
	"chesscoach/internal/logging"
)

// View renders the current screen.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	if m.showHelp {
		return m.viewHelp()
	}

	switch m.state {
	case stateAnalyzing:
		return m.viewAnalyzing()
	case stateReport:
		return m.viewReport()
	default:
		return m.viewBoard()
	}
}

func (m Model) viewHelp() string {
	keys := [][2]string{
		{"type a move", "SAN (Nf3) or UCI (g1f3), enter to play"},
		{"arrows + enter", "pick a piece, then a destination"},
		{"F", "flip the board"},
		{"+ / -", "engine strength up / down"},
		{"t", "toggle live tips"},
		{"r", "resign"},
		{"n", "new game"},
		{"a", "analyze the finished game"},
		{"q / esc", "quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("keys"))
	b.WriteString("\n\n")
	for _, k := range keys {
		b.WriteString(m.styles.Bold.Render(fmt.Sprintf("%-16s", k[0])))
		b.WriteString(m.styles.Muted.Render(k[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("press any key to close"))
	return m.styles.Panel.Render(b.String())
}

func (m Model) viewBoard() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("chesscoach"))
	b.WriteString(m.styles.Muted.Render("  " + m.engineLabel()))
	if m.cfg.UI.EvalBar && m.evalOK {
		b.WriteString(m.styles.Muted.Render("  eval " + ui.EvalLabel(m.evalCP)))
	}
	b.WriteString("\n\n")

	board := ui.RenderBoard(m.sess.Position(), m.boardOptions())

	columns := []string{}
	if m.cfg.UI.EvalBar && m.evalOK {
		columns = append(columns, ui.RenderEvalBar(m.evalCP, evalBarHeight), " ")
	}
	columns = append(columns, board, "  ", m.sidePanel())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n\n")

	b.WriteString(m.footer())
	return b.String()
}

func (m Model) boardOptions() ui.BoardOptions {
	opts := ui.DefaultBoardOptions()
	opts.Flipped = m.flipped
	opts.Selected = m.selected
	opts.Targets = m.targets
	opts.LastFrom = m.lastFrom
	opts.LastTo = m.lastTo
	opts.Check = m.checkSq
	return opts
}

func (m Model) engineLabel() string {
	name := m.eng.Name()
	if name == "" {
		name = "engine"
	}
	if m.cfg.Engine.UseElo {
		return fmt.Sprintf("%s, elo %d", name, config.ClampElo(m.cfg.Engine.Elo))
	}
	return fmt.Sprintf("%s, skill %d (%s)",
		name, config.ClampSkill(m.cfg.Engine.SkillLevel), config.SkillLabel(m.cfg.Engine.SkillLevel))
}

func (m Model) sidePanel() string {
	var parts []string

	if list := ui.RenderMoveList(m.sess.Moves(), 8); list != "" {
		parts = append(parts, list)
	}
	if m.tip != "" && m.state == statePlayerTurn {
		parts = append(parts, m.styles.Muted.Width(36).Render("tip: "+m.tip))
	}
	if len(parts) == 0 {
		return ""
	}
	return m.styles.Panel.Render(strings.Join(parts, "\n\n"))
}

func (m Model) footer() string {
	var b strings.Builder

	if m.status != "" {
		style := m.styles.Status
		if m.state == stateGameOver {
			style = m.styles.Bold
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	switch m.state {
	case statePlayerTurn:
		b.WriteString(m.styles.Prompt.Render("> "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("type a move or pick with arrows+enter · ? help · q quit"))
	case stateEngineThinking:
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.Muted.Render(" engine is thinking..."))
	case stateGameOver:
		b.WriteString(m.styles.Muted.Render("a analyze · n new game · q quit"))
	}
	return b.String()
}

func (m Model) viewAnalyzing() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("chesscoach"))
	b.WriteString("\n\n")
	b.WriteString(m.spin.View())
	b.WriteString(fmt.Sprintf(" analyzing at depth %d", m.cfg.Engine.AnalysisDepth))
	if m.analysisTotal > 0 {
		b.WriteString(fmt.Sprintf("  %d/%d positions\n\n", m.analysisDone, m.analysisTotal))
		b.WriteString(m.prog.ViewAs(float64(m.analysisDone) / float64(m.analysisTotal)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewReport() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("chesscoach"))
	b.WriteString(m.styles.Muted.Render("  game report"))
	if m.analysis != nil {
		b.WriteString("  ")
		b.WriteString(m.severityBadges())
	}
	b.WriteString("\n")
	b.WriteString(m.report.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("scroll with arrows · n new game · q quit"))
	return b.String()
}

// severityBadges renders the accuracy and bucket counts as colored
// badges.
func (m Model) severityBadges() string {
	r := m.analysis
	parts := []string{
		m.styles.BadgeGood.Render(fmt.Sprintf("%.1f%%", r.Accuracy)),
	}
	if r.Inaccuracies > 0 {
		parts = append(parts, m.styles.ClassificationStyle(analysis.Inaccuracy).Render(
			fmt.Sprintf("%d inaccuracies", r.Inaccuracies)))
	}
	if r.Mistakes > 0 {
		parts = append(parts, m.styles.ClassificationStyle(analysis.Mistake).Render(
			fmt.Sprintf("%d mistakes", r.Mistakes)))
	}
	if r.Blunders > 0 {
		parts = append(parts, m.styles.ClassificationStyle(analysis.Blunder).Render(
			fmt.Sprintf("%d blunders", r.Blunders)))
	}
	return strings.Join(parts, " ")
}

// renderReport builds the post-game report as markdown and renders it
// for the terminal.
func renderReport(report *analysis.Report, moments []coach.MomentExplanation, summary, outcome string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Game report\n\n")
	fmt.Fprintf(&b, "**%s**, playing %s at depth %d\n\n", outcome, report.PlayerColor, report.Depth)
	fmt.Fprintf(&b, "**Accuracy: %.1f%%**\n\n", report.Accuracy)
	fmt.Fprintf(&b, "| Best | Good | Inaccuracies | Mistakes | Blunders |\n")
	fmt.Fprintf(&b, "|------|------|--------------|----------|----------|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n",
		report.BestCount, report.GoodCount, report.Inaccuracies, report.Mistakes, report.Blunders)

	if len(moments) > 0 {
		fmt.Fprintf(&b, "## Critical moments\n\n")
		for _, e := range moments {
			mv := e.Moment
			fmt.Fprintf(&b, "### Move %d (%s): %s\n\n", mv.MoveNumber, mv.Color, mv.SAN)
			fmt.Fprintf(&b, "*%s, lost %d centipawns; engine preferred %s*\n\n",
				mv.Classification, mv.Loss, mv.BestMoveSAN)
			fmt.Fprintf(&b, "%s\n\n", e.Text)
		}
	}

	fmt.Fprintf(&b, "## Summary\n\n%s\n", summary)

	return renderMarkdown(b.String())
}

// renderMarkdown renders markdown for the terminal, returning the raw
// text when glamour cannot.
func renderMarkdown(text string) (out string) {
	out = text
	defer func() {
		if r := recover(); r != nil {
			logging.UI("markdown render panic: %v", r)
		}
	}()

	rendered, err := glamour.Render(text, "dark")
	if err != nil {
		logging.UI("markdown render failed: %v", err)
		return out
	}
	return rendered
}
