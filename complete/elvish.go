package complete

// formatElvish renders `value\tdescription` pairs for Elvish's
// edit:complex-candidate machinery. No escaping (spec §4.5).
func formatElvish(c Candidate, opts FormatOptions) string {
	if opts.Description && c.Describe != "" {
		return c.Value + "\t" + truncateDescribe(c.Describe, 80)
	}

	return c.Value
}
