package directive

import (
	"errors"
	"strings"
)

var (
	errMissingBracketClose  = errors.New("missing closing ']'")
	errUnterminatedQuote    = errors.New("unterminated quoted string")
	errUnterminatedBacktick = errors.New("unterminated `fn` reference")
	errUnterminatedNotation = errors.New("unterminated notation, expected '>'")
)

// parseTag dispatches a directive's payload to the parser for its tag's
// micro-grammar (spec §4.1's grammar table).
func parseTag(tag Tag, payload string, line int) (TagEvent, error) {
	switch tag {
	case TagDescribe, TagVersion, TagAuthor, TagCmd:
		return TagEvent{Line: line, Tag: tag, Text: strings.TrimSpace(payload)}, nil

	case TagAlias:
		names := parseAliasNames(payload)
		if len(names) == 0 {
			return TagEvent{}, newError(string(tag), line, ErrMalformed, "expected at least one name")
		}

		return TagEvent{Line: line, Tag: tag, Names: names}, nil

	case TagMeta:
		key, value := parseMetaPayload(payload)
		if key == "" {
			return TagEvent{}, newError(string(tag), line, ErrMalformed, "expected a meta key")
		}

		return TagEvent{Line: line, Tag: tag, MetaKey: key, MetaValue: value}, nil

	case TagFlag:
		spec, err := parseFlagPayload(payload, line)
		if err != nil {
			return TagEvent{}, err
		}

		return TagEvent{Line: line, Tag: tag, Param: spec}, nil

	case TagOption:
		spec, err := parseOptionPayload(payload, line)
		if err != nil {
			return TagEvent{}, err
		}

		return TagEvent{Line: line, Tag: tag, Param: spec}, nil

	case TagArg:
		spec, err := parseArgPayload(payload, line)
		if err != nil {
			return TagEvent{}, err
		}

		return TagEvent{Line: line, Tag: tag, Param: spec}, nil

	case TagEnv:
		spec, err := parseEnvPayload(payload, line)
		if err != nil {
			return TagEvent{}, err
		}

		return TagEvent{Line: line, Tag: tag, Param: spec}, nil

	default:
		return TagEvent{}, newError(string(tag), line, ErrUnknownTag, "unrecognized directive @%s", tag)
	}
}

// parseFlagPayload parses `[short] <long>[modifier] [describe]`.
func parseFlagPayload(payload string, line int) (*ParamSpec, error) {
	cur := newCursor(payload)
	cur.skipSpaces()

	spec := &ParamSpec{IsFlag: true}

	if short, ok := scanShortToken(cur); ok {
		spec.Short = short
		cur.skipSpaces()
	}

	if cur.peek() != '-' && cur.peek() != '+' {
		return nil, newError("flag", line, ErrMalformed, "expected a long flag name")
	}

	prefix, name := scanPrefixAndName(cur)
	if name == "" {
		return nil, newError("flag", line, ErrMalformed, "missing flag name")
	}

	spec.LongPrefix = prefix
	spec.Name = name
	spec.Modifier, spec.Terminated, spec.MultiChar = parseNameSuffix(cur)

	cur.skipSpaces()
	spec.Describe = strings.TrimSpace(cur.rest())

	return spec, nil
}

// parseOptionPayload parses
// `[short] <long>[modifier][choice-or-default] [<notation>…] [describe]`.
func parseOptionPayload(payload string, line int) (*ParamSpec, error) {
	cur := newCursor(payload)
	cur.skipSpaces()

	spec := &ParamSpec{}

	if short, ok := scanShortToken(cur); ok {
		spec.Short = short
		cur.skipSpaces()
	}

	if cur.peek() != '-' && cur.peek() != '+' {
		return nil, newError("option", line, ErrMalformed, "expected a long option name")
	}

	prefix, name := scanPrefixAndName(cur)
	if name == "" {
		return nil, newError("option", line, ErrMalformed, "missing option name")
	}

	spec.LongPrefix = prefix
	spec.Name = name
	spec.Modifier, spec.Terminated, spec.MultiChar = parseNameSuffix(cur)

	choice, err := parseChoiceOrDefault(cur)
	if err != nil {
		return nil, newError("option", line, ErrMalformedChoice, "%s", err)
	}

	spec.Choice = choice

	cur.skipSpaces()

	notations, err := parseNotations(cur)
	if err != nil {
		return nil, newError("option", line, ErrMalformed, "%s", err)
	}

	spec.Notations = notations

	cur.skipSpaces()
	spec.Describe = strings.TrimSpace(cur.rest())

	return spec, nil
}

// parseArgPayload parses `<name>[modifier][choice-or-default] [<notation>] [describe]`.
func parseArgPayload(payload string, line int) (*ParamSpec, error) {
	cur := newCursor(payload)
	cur.skipSpaces()

	name := cur.takeWhile(isNameByte)
	if name == "" {
		return nil, newError("arg", line, ErrMalformed, "missing argument name")
	}

	spec := &ParamSpec{Name: name}
	spec.Modifier, spec.Terminated, spec.MultiChar = parseNameSuffix(cur)

	choice, err := parseChoiceOrDefault(cur)
	if err != nil {
		return nil, newError("arg", line, ErrMalformedChoice, "%s", err)
	}

	spec.Choice = choice

	cur.skipSpaces()

	notations, err := parseNotations(cur)
	if err != nil {
		return nil, newError("arg", line, ErrMalformed, "%s", err)
	}

	if len(notations) > 1 {
		return nil, newError("arg", line, ErrMalformed, "positional arguments accept at most one notation")
	}

	spec.Notations = notations

	cur.skipSpaces()
	spec.Describe = strings.TrimSpace(cur.rest())

	return spec, nil
}

// parseEnvPayload parses `<NAME>[modifier][choice-or-default] [describe]`.
func parseEnvPayload(payload string, line int) (*ParamSpec, error) {
	cur := newCursor(payload)
	cur.skipSpaces()

	name := cur.takeWhile(isNameByte)
	if name == "" {
		return nil, newError("env", line, ErrMalformed, "missing environment variable name")
	}

	spec := &ParamSpec{Name: name}
	spec.Modifier, spec.Terminated, spec.MultiChar = parseNameSuffix(cur)

	choice, err := parseChoiceOrDefault(cur)
	if err != nil {
		return nil, newError("env", line, ErrMalformedChoice, "%s", err)
	}

	spec.Choice = choice

	cur.skipSpaces()
	spec.Describe = strings.TrimSpace(cur.rest())

	return spec, nil
}

func parseAliasNames(payload string) []string {
	var names []string

	for _, part := range strings.Split(payload, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

func parseMetaPayload(payload string) (key, value string) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", ""
	}

	fields := strings.SplitN(payload, " ", 2)
	key = fields[0]

	if len(fields) > 1 {
		value = strings.TrimSpace(fields[1])
	}

	return key, value
}

// scanShortToken consumes a leading `-x`/`+x` token only when it is
// followed (after whitespace) by another dash/plus-prefixed token — i.e.
// only when a long name genuinely follows. A lone `-x` token is the long
// name itself (single-dash-prefixed), not a short-plus-nothing.
func scanShortToken(cur *cursor) (rune, bool) {
	if cur.peek() != '-' && cur.peek() != '+' {
		return 0, false
	}

	end := wordEnd(cur)
	word := cur.s[cur.pos:end]

	if len(word) != 2 {
		return 0, false
	}

	next := end
	for next < len(cur.s) && isSpace(cur.s[next]) {
		next++
	}

	if next >= len(cur.s) || (cur.s[next] != '-' && cur.s[next] != '+') {
		return 0, false
	}

	short := rune(word[1])
	cur.pos = end

	return short, true
}

func wordEnd(cur *cursor) int {
	end := cur.pos
	for end < len(cur.s) && !isSpace(cur.s[end]) {
		end++
	}

	return end
}

func scanPrefixAndName(cur *cursor) (prefix, name string) {
	prefix = cur.takeWhile(func(b byte) bool { return b == '-' || b == '+' })
	name = cur.takeWhile(isNameByte)

	return prefix, name
}

// parseNameSuffix consumes the arity modifier (`!`/`*`/`+`), the
// terminator marker (`~`) and the value-splitting delimiter (`,`/`:`) in
// whatever order they appear.
func parseNameSuffix(cur *cursor) (modifier Modifier, terminated bool, multiChar string) {
	for {
		switch cur.peek() {
		case ',', ':':
			multiChar = string(cur.advance())
		case '!':
			modifier = ModRequiredSingle
			cur.advance()
		case '*':
			modifier = ModOptionalMulti
			cur.advance()
		case '+':
			modifier = ModRequiredMulti
			cur.advance()
		case '~':
			terminated = true
			cur.advance()
		default:
			return modifier, terminated, multiChar
		}
	}
}

func parseChoiceOrDefault(cur *cursor) (Choice, error) {
	switch cur.peek() {
	case '[':
		return parseBracketChoice(cur)
	case '=':
		return parseDefaultValue(cur)
	default:
		return Choice{DefaultIndex: -1}, nil
	}
}

func parseBracketChoice(cur *cursor) (Choice, error) {
	cur.advance() // '['

	choice := Choice{DefaultIndex: -1}

	if cur.peek() == '?' {
		cur.advance()

		name, err := scanBacktick(cur)
		if err != nil {
			return choice, err
		}

		if !cur.consume(']') {
			return choice, errMissingBracketClose
		}

		choice.Fn = name
		choice.FnValidate = false

		return choice, nil
	}

	if cur.peek() == '`' {
		name, err := scanBacktick(cur)
		if err != nil {
			return choice, err
		}

		if !cur.consume(']') {
			return choice, errMissingBracketClose
		}

		choice.Fn = name
		choice.FnValidate = true

		return choice, nil
	}

	markedDefault := cur.consume('=')

	var items []string

	for {
		var item string

		if cur.peek() == '"' {
			v, ok := cur.takeQuoted()
			if !ok {
				return choice, errUnterminatedQuote
			}

			item = v
		} else {
			item = cur.takeUntil(func(b byte) bool { return b == '|' || b == ']' })
		}

		items = append(items, item)

		switch cur.peek() {
		case '|':
			cur.advance()

			continue
		case ']':
			cur.advance()
		default:
			return choice, errMissingBracketClose
		}

		break
	}

	choice.Literal = items
	if markedDefault && len(items) > 0 {
		choice.DefaultIndex = 0
	}

	return choice, nil
}

func parseDefaultValue(cur *cursor) (Choice, error) {
	cur.advance() // '='

	choice := Choice{DefaultIndex: -1}

	if cur.peek() == '`' {
		name, err := scanBacktick(cur)
		if err != nil {
			return choice, err
		}

		choice.DefaultFn = name

		return choice, nil
	}

	var b strings.Builder

	for !cur.eof() {
		ch := cur.peek()
		if isSpace(ch) {
			break
		}

		if ch == '\\' && cur.peekAt(1) != 0 {
			b.WriteByte(cur.peekAt(1))
			cur.pos += 2

			continue
		}

		b.WriteByte(ch)
		cur.pos++
	}

	choice.Default = b.String()

	return choice, nil
}

func scanBacktick(cur *cursor) (string, error) {
	cur.advance() // '`'
	name := cur.takeUntil(func(b byte) bool { return b == '`' })

	if !cur.consume('`') {
		return "", errUnterminatedBacktick
	}

	return name, nil
}

// parseNotations consumes zero or more `<NAME>`/`<NAME?>`/`<NAME*>`/`<NAME+>`
// tokens separated by whitespace.
func parseNotations(cur *cursor) ([]Notation, error) {
	var notations []Notation

	for {
		save := cur.pos
		cur.skipSpaces()

		if cur.peek() != '<' {
			cur.pos = save

			break
		}

		cur.advance()

		name := cur.takeUntil(func(b byte) bool {
			return b == '>' || b == '!' || b == '*' || b == '+' || b == '?'
		})

		modifier := ModOptionalSingle

		switch cur.peek() {
		case '*':
			modifier = ModOptionalMulti
			cur.advance()
		case '+':
			modifier = ModRequiredMulti
			cur.advance()
		case '?':
			modifier = ModOptionalSingle
			cur.advance()
		}

		if !cur.consume('>') {
			return notations, errUnterminatedNotation
		}

		notations = append(notations, Notation{Name: name, Modifier: modifier})
	}

	return notations, nil
}
