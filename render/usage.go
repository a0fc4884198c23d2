package render

import (
	"strings"

	"github.com/arganaut/arganaut/model"
)

// Usage renders the one-line `USAGE: ...` string for cmd (spec §4.3).
func Usage(cmd *model.Command, theme Theme) string {
	var parts []string

	path := strings.Join(cmd.Paths, " ")
	if path == "" {
		path = cmd.Name
	}

	parts = append(parts, theme.Command.Render(path))

	if len(cmd.FlagOrOptionParams) > 0 {
		parts = append(parts, theme.FlagType.Render("[OPTIONS]"))
	}

	for _, fo := range cmd.FlagOrOptionParams {
		if fo.Required {
			parts = append(parts, theme.FlagType.Render("<"+displayFlagName(fo)+">"))
		}
	}

	if len(cmd.Subcommands) > 0 {
		parts = append(parts, theme.FlagType.Render("<COMMAND>"))
	} else {
		for _, p := range cmd.PositionalParams {
			parts = append(parts, theme.FlagType.Render(positionalNotation(p)))
		}
	}

	return "USAGE: " + strings.Join(nonEmpty(parts), " ")
}

func nonEmpty(ss []string) []string {
	out := ss[:0]

	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}

	return out
}

func displayFlagName(fo *model.FlagOrOption) string {
	if fo.LongPrefix != "" && fo.Name != "" {
		return fo.LongPrefix + fo.Name
	}

	if fo.Short != 0 {
		return "-" + string(fo.Short)
	}

	return fo.Name
}

func positionalNotation(p *model.Positional) string {
	name := p.Notation.Name
	if name == "" {
		name = strings.ToUpper(p.Name)
	}

	switch {
	case p.Required && p.Multiple:
		return "<" + name + ">..."
	case p.Multiple:
		return "[" + name + "]..."
	case p.Required:
		return "<" + name + ">"
	default:
		return "[" + name + "]"
	}
}

// Version renders the version string for cmd, falling back to ancestors
// when cmd itself declares none.
func Version(cmd *model.Command) string {
	for c := cmd; c != nil; c = c.Parent {
		if c.Version != "" {
			return c.Version
		}
	}

	return ""
}
