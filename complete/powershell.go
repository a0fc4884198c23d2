package complete

// formatPowerShell renders one CompletionResult-shaped line: the value
// single-quote-wrapped when it needs quoting (spec §4.5: "single-quote
// wrapping for PowerShell/Nushell/Xonsh"), followed by a description
// when enabled.
func formatPowerShell(c Candidate, opts FormatOptions) string {
	value := singleQuoteWrap(c.Value)

	return value + descriptionSuffix(c, opts, "\t")
}
