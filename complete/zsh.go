package complete

// zshSpecialChars mirrors bashSpecialChars (spec §4.5 groups Zsh with
// Bash/Tcsh for backslash escaping), plus zsh's own glob metacharacters.
const zshSpecialChars = bashSpecialChars + "^"

// formatZsh renders `value:description` pairs the way `_describe`
// expects, always coloring the value by candidate kind (see ansiColor).
func formatZsh(c Candidate, opts FormatOptions) string {
	value := backslashEscape(c.Value, zshSpecialChars)
	if code := ansiColor(c.Kind); code != "" {
		value = "\x1b[" + code + "m" + value + "\x1b[0m"
	}

	return value + descriptionSuffix(c, opts, ":")
}
