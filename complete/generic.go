package complete

// formatGeneric renders a plain, unescaped, undecorated value — the
// fallback for shells/integrations the engine does not know about (spec
// §4.5 groups Generic with Fish/Elvish under "no escaping").
func formatGeneric(c Candidate, opts FormatOptions) string {
	if opts.Description && c.Describe != "" {
		return c.Value + "\t" + truncateDescribe(c.Describe, 80)
	}

	return c.Value
}
