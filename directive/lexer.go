package directive

import (
	"regexp"
	"strings"
)

// functionDefRe matches `name()`, `function name`, or `function name()`,
// with arbitrary leading whitespace and optional whitespace around the
// parens, the way the original tool's lexer does — including the
// whitespace-tolerant `function  foo ()` form. The parens are required
// when the `function` keyword is absent (bare `name` is not a function
// definition) but optional when it is present, since `function foo { ... }`
// is valid, idiomatic bash. Anything after an opening `{` on the same
// line (a one-line body such as `build() { :; }`) is ignored.
var functionDefRe = regexp.MustCompile(
	`^\s*(?:function\s+([A-Za-z_][A-Za-z0-9_]*(?:::[A-Za-z_][A-Za-z0-9_]*)*)\s*(?:\(\s*\))?|([A-Za-z_][A-Za-z0-9_]*(?:::[A-Za-z_][A-Za-z0-9_]*)*)\s*\(\s*\))\s*(?:\{.*)?$`,
)

// directiveRe recognizes a `# @word` comment line and captures the tag
// word and the rest of the line (the payload).
var directiveRe = regexp.MustCompile(`^#\s*@([A-Za-z][A-Za-z0-9_-]*)(.*)$`)

// continuationRe recognizes a plain comment line that continues the
// previous directive's describe text: at least two spaces after the `#`,
// and not itself a directive.
var continuationRe = regexp.MustCompile(`^#(  +)(.*)$`)

// Lex splits script into lines and returns the ordered TagEvents and
// FunctionEvents found in it. Lines that are neither directives nor
// function definitions are ignored. Parse errors abort at the first
// offending directive and are returned as *Error.
func Lex(script string) ([]TagEvent, []FunctionEvent, error) {
	lines := strings.Split(script, "\n")

	var (
		tagEvents  []TagEvent
		funcEvents []FunctionEvent
	)

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := lines[i]

		if m := functionDefRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			if name == "" {
				name = m[2]
			}

			funcEvents = append(funcEvents, FunctionEvent{Line: lineNo, Name: name})

			continue
		}

		m := directiveRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		tagWord, payload := m[1], strings.TrimLeft(m[2], " \t")

		// Consume continuation lines for directives whose tail is
		// free-form describe text. We look ahead without altering i
		// for directives that don't want continuations attached, but
		// since every tag below either ignores or uses `rest`, it's
		// always safe to fold continuations into payload and advance i.
		var continued []string

		j := i + 1
		for j < len(lines) {
			cm := continuationRe.FindStringSubmatch(lines[j])
			if cm == nil {
				break
			}

			// A continuation line must not itself start a new directive.
			if directiveRe.MatchString(lines[j]) {
				break
			}

			continued = append(continued, strings.TrimSpace(cm[2]))
			j++
		}

		if len(continued) > 0 {
			payload = strings.TrimRight(payload, " \t")
			if payload != "" {
				payload += " "
			}

			payload += strings.Join(continued, " ")
			i = j - 1
		}

		event, err := parseTag(Tag(strings.ToLower(tagWord)), payload, lineNo)
		if err != nil {
			return nil, nil, err
		}

		tagEvents = append(tagEvents, event)
	}

	return tagEvents, funcEvents, nil
}
