package complete

// formatXonsh mirrors formatPowerShell/formatNu's single-quote-wrapping
// family (spec §4.5).
func formatXonsh(c Candidate, opts FormatOptions) string {
	value := singleQuoteWrap(c.Value)

	return value + descriptionSuffix(c, opts, "\t")
}
