package complete

import "strings"

// Shell selects which target shell's completion protocol candidates are
// formatted for (spec §4.5's "per-shell formatting: each shell has an
// escape policy, a color code table, a description delimiter and
// truncation policy, a common-prefix collapse rule"). Grounded on spec
// §9's re-architecture note: "a Shell enum with pure methods ... no
// dynamic registry required".
type Shell int

const (
	ShellBash Shell = iota
	ShellZsh
	ShellTcsh
	ShellFish
	ShellElvish
	ShellPowerShell
	ShellNu
	ShellXonsh
	ShellGeneric
)

// ParseShell maps a `--shell` flag value to a Shell, defaulting to
// ShellGeneric for anything unrecognized.
func ParseShell(name string) Shell {
	switch strings.ToLower(name) {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "tcsh":
		return ShellTcsh
	case "fish":
		return ShellFish
	case "elvish":
		return ShellElvish
	case "powershell", "pwsh":
		return ShellPowerShell
	case "nu", "nushell":
		return ShellNu
	case "xonsh":
		return ShellXonsh
	default:
		return ShellGeneric
	}
}

// FormatOptions configures one candidate-formatting pass.
type FormatOptions struct {
	// Description includes a candidate's describe text when the shell's
	// protocol and ARGC_COMPGEN_DESCRIPTION allow it.
	Description bool
}

// Format renders one candidate as a line of text for sh's completion
// protocol. Value-hint placeholders (`__argc_value=...`, `__argc_fn:...`)
// pass through every shell's escaping untouched, since the shell
// integration — not this engine — interprets them (spec §4.5).
func Format(sh Shell, c Candidate, opts FormatOptions) string {
	if isPlaceholder(c.Value) {
		return c.Value
	}

	switch sh {
	case ShellBash:
		return formatBash(c, opts)
	case ShellZsh:
		return formatZsh(c, opts)
	case ShellTcsh:
		return formatTcsh(c, opts)
	case ShellFish:
		return formatFish(c, opts)
	case ShellElvish:
		return formatElvish(c, opts)
	case ShellPowerShell:
		return formatPowerShell(c, opts)
	case ShellNu:
		return formatNu(c, opts)
	case ShellXonsh:
		return formatXonsh(c, opts)
	default:
		return formatGeneric(c, opts)
	}
}

func isPlaceholder(value string) bool {
	return strings.HasPrefix(value, "__argc_value=") ||
		strings.HasPrefix(value, "__argc_fn:") ||
		strings.HasPrefix(value, "__argc_comp:")
}

// backslashEscape prefixes every rune of s found in chars with a
// backslash (Bash/Tcsh/Zsh's escaping policy).
func backslashEscape(s, chars string) string {
	var b strings.Builder

	for _, r := range s {
		if strings.ContainsRune(chars, r) {
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}

// singleQuoteWrap wraps s in single quotes, doubling any embedded single
// quote (PowerShell/Nushell/Xonsh's escaping policy).
func singleQuoteWrap(s string) string {
	if !needsQuoting(s) {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}

	for _, r := range s {
		switch {
		case r == ' ', r == '\t', r == '\'', r == '"', r == '$', r == '`':
			return true
		}
	}

	return false
}

// ansiColor returns the color code spec §4.5 associates with each
// candidate Kind: commands in blue, flags/options in yellow, plain
// values uncolored. Only formatZsh applies these codes; the other
// shells' formatters emit no color.
func ansiColor(kind Kind) string {
	switch kind {
	case KindCommand:
		return "34"
	case KindFlag, KindOption:
		return "33"
	default:
		return ""
	}
}

func descriptionSuffix(c Candidate, opts FormatOptions, delim string) string {
	if !opts.Description || c.Describe == "" {
		return ""
	}

	return delim + truncateDescribe(c.Describe, 80)
}

func truncateDescribe(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}

	return string(r[:max-1]) + "…"
}
