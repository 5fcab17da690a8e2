package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette and symbols. Colors are ANSI-256 codes; glyphs
// are used by the interactive list only, the plain list format is fixed.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending lipgloss.Color
	BoxUnchecked, BoxChecked                      string
	Monochrome                                    bool
}

// ThemeByName returns the named theme, falling back to classic.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        "13", // bright magenta
			Muted:        "8",
			Accent:       "14",
			Success:      "10",
			Error:        "9",
			Pending:      "11",
			BoxUnchecked: "◻",
			BoxChecked:   "◼",
		}
	case "mono":
		return Theme{
			Name:         "mono",
			BoxUnchecked: "[ ]",
			BoxChecked:   "[x]",
			Monochrome:   true,
		}
	default:
		return Theme{
			Name:         "classic",
			Title:        "15",
			Muted:        "8",
			Accent:       "12",
			Success:      "42",
			Error:        "9",
			Pending:      "214",
			BoxUnchecked: "☐",
			BoxChecked:   "☑",
		}
	}
}
