package complete

// formatFish renders `value\tdescription` pairs, fish's own native
// completion-reply format. Fish needs no escaping of its own (spec
// §4.5: "none for Fish/Elvish/Generic") since it reads one candidate
// per line and treats the remainder after the first tab as the
// description, not a shell-metacharacter string.
func formatFish(c Candidate, opts FormatOptions) string {
	if opts.Description && c.Describe != "" {
		return c.Value + "\t" + truncateDescribe(c.Describe, 80)
	}

	return c.Value
}
