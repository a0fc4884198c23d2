package complete

// bashSpecialChars is the set of characters Bash's readline requires
// backslash-escaped in a completion reply (spec §4.5: "backslash for
// Bash/Tcsh/Zsh"). Bash's own compgen/compopt machinery has no
// description channel, so formatBash never emits a description, even
// when ARGC_COMPGEN_DESCRIPTION is "true".
const bashSpecialChars = " \t\n'\"\\$`!*?[](){}<>|;&~#"

func formatBash(c Candidate, _ FormatOptions) string {
	return backslashEscape(c.Value, bashSpecialChars)
}
