package complete

// formatNu renders one candidate for Nushell's completer, which accepts
// a plain value list; quoting follows the PowerShell/Xonsh family (spec
// §4.5).
func formatNu(c Candidate, opts FormatOptions) string {
	value := singleQuoteWrap(c.Value)

	return value + descriptionSuffix(c, opts, "  ")
}
