package complete

import "strings"

// tokenizeLine splits line into shell-quoted words, per spec §4.5 ("the
// last word is the cursor word; detect an unbalanced opening quote,
// append the matching closing quote internally"). It returns every
// token plus whether the line ends in whitespace (meaning the cursor
// word is empty and every token is already committed).
func tokenizeLine(line string) (tokens []string, trailingSpace bool) {
	var cur strings.Builder

	inQuote := byte(0)
	haveToken := false

	flush := func() {
		if haveToken {
			tokens = append(tokens, cur.String())
			cur.Reset()
			haveToken = false
		}
	}

	runes := []byte(line)

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch {
		case inQuote != 0:
			if c == inQuote {
				inQuote = 0
			} else {
				cur.WriteByte(c)
			}

			haveToken = true

		case c == '\'' || c == '"':
			inQuote = c
			haveToken = true

		case c == '\\' && i+1 < len(runes):
			i++
			cur.WriteByte(runes[i])
			haveToken = true

		case c == ' ' || c == '\t':
			flush()

		default:
			cur.WriteByte(c)
			haveToken = true
		}
	}

	if inQuote != 0 {
		// Unbalanced opening quote: treat everything scanned so far
		// (without the opening quote character) as the cursor word,
		// as if the matching close quote had already been typed.
		flush()

		return tokens, false
	}

	trailingSpace = !haveToken && (strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t"))
	if trailingSpace {
		return tokens, true
	}

	flush()

	return tokens, false
}

// splitInlineValue recognizes `--opt=partial` / `-o=partial` in the
// cursor word itself.
func splitInlineValue(word string) (name, value string, ok bool) {
	if word == "" || word[0] != '-' {
		return "", "", false
	}

	idx := strings.IndexByte(word, '=')
	if idx <= 0 {
		return "", "", false
	}

	return word[:idx], word[idx+1:], true
}
