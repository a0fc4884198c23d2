package complete

// formatTcsh renders one candidate for tcsh's `complete` builtin: same
// backslash-escaping family as Bash, but tcsh has no description
// channel at all, so opts.Description is always ignored here.
func formatTcsh(c Candidate, _ FormatOptions) string {
	return backslashEscape(c.Value, bashSpecialChars)
}
