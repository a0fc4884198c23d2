package render

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// wrapText wraps s to width columns, collapsing internal runs of
// whitespace first so re-wrapping a describe string at a different width
// never preserves stale line breaks. Grounded on purpleclay-x/cli's
// wrapText/unfill pair. width <= 0 disables wrapping.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}

	return wordwrap.String(unfill(s), width)
}

func unfill(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", " ")

	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}

	return strings.TrimSpace(s)
}

// indentContinuation re-indents every line after the first in a wrapped
// string to col spaces, used to align describe-text continuation lines
// under the describe column (spec §4.3).
func indentContinuation(wrapped string, col int) []string {
	lines := strings.Split(wrapped, "\n")
	if col <= 0 {
		return lines
	}

	pad := strings.Repeat(" ", col)
	for i := 1; i < len(lines); i++ {
		lines[i] = pad + lines[i]
	}

	return lines
}
