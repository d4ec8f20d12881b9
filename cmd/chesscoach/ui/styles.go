// Package ui provides the visual styling and board rendering for the
// chesscoach terminal interface.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chesscoach/internal/analysis"
)

// Color palette
var (
	// Board colors
	LightSquare = lipgloss.Color("#b58863")
	DarkSquare  = lipgloss.Color("#8ca2ad")
	SelectedBg  = lipgloss.Color("#1e90ff")
	TargetBg    = lipgloss.Color("#3cb371")
	LastMoveBg  = lipgloss.Color("#c9a227")
	CheckBg     = lipgloss.Color("#e53935")
	PieceWhite  = lipgloss.Color("#ffffff")
	PieceBlack  = lipgloss.Color("#111111")

	// Semantic colors
	Destructive = lipgloss.Color("#e53935") // blunders
	Warning     = lipgloss.Color("#ff9800") // mistakes
	Caution     = lipgloss.Color("#ffc107") // inaccuracies
	Success     = lipgloss.Color("#8bc34a") // accuracy / good moves
	Info        = lipgloss.Color("#2196f3")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Muted:      lipgloss.Color("#6c7a89"),
		Accent:     lipgloss.Color("#8bc34a"),
		Border:     lipgloss.Color("#2a3850"),
		IsDark:     true,
	}
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101f38"),
		Muted:      lipgloss.Color("#8a8f98"),
		Accent:     lipgloss.Color("#3c7a1e"),
		Border:     lipgloss.Color("#dce0e5"),
		IsDark:     false,
	}
}

// DetectTheme picks a theme from terminal hints, defaulting to dark.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if bgIdx >= 7 && bgIdx != 8 {
					return LightTheme()
				}
			}
		}
	}
	return DarkTheme()
}

// Styles holds the styled components of the play screen.
type Styles struct {
	Theme Theme

	Title   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
	Panel   lipgloss.Style
	Spinner lipgloss.Style

	BadgeBlunder    lipgloss.Style
	BadgeMistake    lipgloss.Style
	BadgeInaccuracy lipgloss.Style
	BadgeGood       lipgloss.Style
}

// NewStyles creates a Styles instance for the theme.
func NewStyles(theme Theme) Styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#ffffff"))
	return Styles{
		Theme: theme,

		Title:  lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(theme.Muted),
		Bold:   lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true),
		Status: lipgloss.NewStyle().Foreground(Info),
		Error:  lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Prompt: lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Spinner: lipgloss.NewStyle().Foreground(theme.Accent),

		BadgeBlunder:    badge.Background(Destructive),
		BadgeMistake:    badge.Background(Warning),
		BadgeInaccuracy: badge.Background(Caution).Foreground(lipgloss.Color("#111111")),
		BadgeGood:       badge.Background(Success).Foreground(lipgloss.Color("#111111")),
	}
}

// DefaultStyles returns styles with the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// ClassificationStyle returns the badge style for a move bucket.
func (s Styles) ClassificationStyle(c analysis.Classification) lipgloss.Style {
	switch c {
	case analysis.Blunder:
		return s.BadgeBlunder
	case analysis.Mistake:
		return s.BadgeMistake
	case analysis.Inaccuracy:
		return s.BadgeInaccuracy
	default:
		return s.BadgeGood
	}
}
