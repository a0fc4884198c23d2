// Package render implements the Help/Usage Renderer (spec §4.3): given a
// Command and an optional terminal width, it produces human-readable help,
// one-line usage, and version text.
package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arganaut/arganaut/internal/config"
)

// Theme styles the sections of a rendered help page. Grounded on
// purpleclay-x/cli's Theme: one lipgloss.Style per element, defaulting to
// no styling so NO_COLOR and non-terminal output are unaffected.
type Theme struct {
	Header      lipgloss.Style
	Command     lipgloss.Style
	Flag        lipgloss.Style
	FlagType    lipgloss.Style
	Description lipgloss.Style
	EnvVar      lipgloss.Style
}

// DefaultTheme returns a theme with no styling applied.
func DefaultTheme() Theme {
	return Theme{
		Header:      lipgloss.NewStyle(),
		Command:     lipgloss.NewStyle(),
		Flag:        lipgloss.NewStyle(),
		FlagType:    lipgloss.NewStyle(),
		Description: lipgloss.NewStyle(),
		EnvVar:      lipgloss.NewStyle(),
	}
}

// ColorTheme returns a bold-headers, colored-names theme, used unless
// NO_COLOR is set (spec §6's environment table).
func ColorTheme() Theme {
	return Theme{
		Header:      lipgloss.NewStyle().Bold(true),
		Command:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		FlagType:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Description: lipgloss.NewStyle(),
		EnvVar:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// ThemeFromEnv picks ColorTheme unless NO_COLOR is set, per spec §6.
func ThemeFromEnv() Theme {
	if config.FromEnv().NoColor {
		return DefaultTheme()
	}

	return ColorTheme()
}
