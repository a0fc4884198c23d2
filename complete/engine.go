package complete

import (
	"strings"

	"github.com/arganaut/arganaut/directive"
	"github.com/arganaut/arganaut/model"
)

// resolvedOption names the option a cursor word is completing a value
// for.
type resolvedOption struct {
	fo *model.FlagOrOption
}

// walkState is the outcome of walking every already-committed token
// against the Command tree: which level the cursor is in, which flags
// have already been used there, and how many positional tokens have
// been collected so far.
type walkState struct {
	level           *model.Command
	used            map[string]int
	positionalCount int
	sawDash         bool
}

// Complete implements the Completion Engine (spec §4.5): given the full
// input line (argv[0] included, as a shell COMP_LINE would carry it),
// it returns ranked candidates for whatever the cursor is completing.
// runner may be nil, in which case dynamic choices degrade to
// placeholder candidates (spec §4.5's `__argc_fn:` placeholder).
func Complete(root *model.Command, line string, runner Runner) []Candidate {
	tokens, trailingSpace := tokenizeLine(line)

	var committed []string

	cursor := ""

	switch {
	case trailingSpace:
		committed = tokens
	case len(tokens) == 0:
		committed = nil
	default:
		committed = tokens[:len(tokens)-1]
		cursor = tokens[len(tokens)-1]
	}

	if len(committed) > 0 {
		committed = committed[1:]
	}

	st := walkCommitted(root, committed)

	if name, value, ok := splitInlineValue(cursor); ok {
		if fo := lookupFlagToken(st.level, name); fo != nil {
			return valueCandidates(fo.Choice, fo.ValueNames, runner, value)
		}
	}

	if cursor != "" && looksLikeOptionToken(cursor, st.level) {
		if combos, ok := combineShortCandidates(root, st.level, cursor); ok {
			return combos
		}

		return flagCandidates(st.level, st.used, cursor)
	}

	if pending := lastPendingOption(st, committed); pending != nil {
		return valueCandidates(pending.fo.Choice, pending.fo.ValueNames, runner, cursor)
	}

	if cursor == "" {
		var out []Candidate
		out = append(out, flagCandidates(st.level, st.used, "")...)
		out = append(out, commandOrPositionalCandidates(st, runner, "")...)

		if len(out) == 0 {
			return []Candidate{{Value: "__argc_value=file", Kind: KindValue}}
		}

		return out
	}

	return commandOrPositionalCandidates(st, runner, cursor)
}

func lastPendingOption(st walkState, committed []string) *resolvedOption {
	if len(committed) == 0 {
		return nil
	}

	last := committed[len(committed)-1]
	if last == "" || !looksLikeOptionToken(last, st.level) {
		return nil
	}

	if _, _, ok := splitInlineValue(last); ok {
		return nil
	}

	fo := lookupFlagToken(st.level, last)
	if fo == nil || fo.IsFlag {
		return nil
	}

	return &resolvedOption{fo: fo}
}

func walkCommitted(root *model.Command, tokens []string) walkState {
	st := walkState{level: root, used: map[string]int{}}

	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		if st.sawDash {
			st.positionalCount++
			i++

			continue
		}

		if tok == "--" {
			st.sawDash = true
			i++

			continue
		}

		level := st.level

		if looksLikeOptionToken(tok, level) {
			if name, _, ok := splitInlineValue(tok); ok {
				if fo := lookupFlagToken(level, name); fo != nil {
					st.used[fo.Name]++
				}

				i++

				continue
			}

			if fo := lookupFlagToken(level, tok); fo != nil {
				st.used[fo.Name]++
				i++

				if !fo.IsFlag {
					i += consumeArity(fo, tokens, i)
				}

				continue
			}

			i++

			continue
		}

		if child := findChildByName(level, tok); child != nil {
			st.level = child
			st.used = map[string]int{}
			st.positionalCount = 0
			i++

			continue
		}

		st.positionalCount++
		i++
	}

	return st
}

func findChildByName(level *model.Command, tok string) *model.Command {
	for _, sub := range level.Subcommands {
		if sub.Name == tok {
			return sub
		}

		for _, a := range sub.Aliases {
			if a == tok {
				return sub
			}
		}
	}

	return nil
}

func looksLikeOptionToken(tok string, level *model.Command) bool {
	if tok == "" || tok == "-" {
		return false
	}

	if tok[0] == '-' {
		return true
	}

	if level == nil {
		return false
	}

	for _, fo := range level.FlagOrOptionParams {
		if fo.LongPrefix != "" && fo.LongPrefix[0] == tok[0] {
			return true
		}
	}

	return false
}

func lookupFlagToken(level *model.Command, tok string) *model.FlagOrOption {
	for _, fo := range level.FlagOrOptionParams {
		if fo.LongPrefix+fo.Name == tok {
			return fo
		}
	}

	if len(tok) == 2 && tok[0] == '-' {
		for _, fo := range level.FlagOrOptionParams {
			if fo.Short == rune(tok[1]) {
				return fo
			}
		}
	}

	return nil
}

// consumeArity greedily counts how many tokens starting at tokens[from]
// belong to fo's value slots, stopping at the next option-looking token
// (terminated options claim everything). It never consumes past the
// committed token list, so a cursor word is never miscounted as a
// value here; see lastPendingOption for that determination.
func consumeArity(fo *model.FlagOrOption, tokens []string, from int) int {
	if fo.Terminated {
		return len(tokens) - from
	}

	maxVals := len(fo.ValueNames)
	unbounded := false

	if len(fo.ValueNames) > 0 {
		switch fo.ValueNames[len(fo.ValueNames)-1].Modifier {
		case directive.ModOptionalMulti, directive.ModRequiredMulti:
			unbounded = true
		}
	} else {
		maxVals = 1
	}

	n := 0

	for from+n < len(tokens) {
		next := tokens[from+n]
		if looksLikeOptionToken(next, nil) && !looksLikeNegativeNumber(next) {
			break
		}

		if !unbounded && n >= maxVals {
			break
		}

		n++
	}

	return n
}

func looksLikeNegativeNumber(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}

	return tok[1] >= '0' && tok[1] <= '9'
}

// combineShortCandidates implements spec §4.5's `FlagOrOptionCombine(prefix)`:
// when `combine-shorts` is set and the cursor word is a run of already-valid
// single-letter flags (`-ab`), offer the word with each remaining unused
// single-letter flag (other than the derived help/version flags) appended
// (`-abc`). ok is false when combine-shorts is
// off or token isn't a combinable short-flag run, so the caller falls back
// to plain flagCandidates.
func combineShortCandidates(root, level *model.Command, token string) (candidates []Candidate, ok bool) {
	if _, on := root.Metadata["combine-shorts"]; !on {
		return nil, false
	}

	if len(token) < 2 || token[0] != '-' || token[1] == '-' {
		return nil, false
	}

	combined := map[string]bool{}

	for i := 1; i < len(token); i++ {
		fo := lookupShort(level, token[i])
		if fo == nil || !fo.IsFlag {
			return nil, false
		}

		combined[fo.Name] = true
	}

	var out []Candidate

	for _, fo := range level.FlagOrOptionParams {
		if fo.Short == 0 || !fo.IsFlag || combined[fo.Name] || fo == level.HelpFlag || fo == level.VersionFlag {
			continue
		}

		out = append(out, Candidate{
			Value:    token + string(fo.Short),
			Describe: fo.Describe,
			Kind:     KindFlag,
		})
	}

	return out, true
}

func lookupShort(level *model.Command, short byte) *model.FlagOrOption {
	for _, fo := range level.FlagOrOptionParams {
		if fo.Short == rune(short) {
			return fo
		}
	}

	return nil
}

func flagCandidates(level *model.Command, used map[string]int, prefix string) []Candidate {
	var out []Candidate

	for _, fo := range level.FlagOrOptionParams {
		if used[fo.Name] > 0 && !fo.Multiple {
			continue
		}

		kind := KindOption
		if fo.IsFlag {
			kind = KindFlag
		}

		long := fo.LongPrefix + fo.Name
		if strings.HasPrefix(long, prefix) {
			out = append(out, Candidate{Value: long, Describe: fo.Describe, Kind: kind})
		}

		if fo.Short != 0 {
			short := "-" + string(fo.Short)
			if strings.HasPrefix(short, prefix) {
				out = append(out, Candidate{Value: short, Describe: fo.Describe, Kind: kind})
			}
		}
	}

	return out
}

func valueCandidates(choice model.Choice, notations []model.Notation, runner Runner, prefix string) []Candidate {
	if len(choice.Literal) > 0 {
		var out []Candidate

		for _, lit := range choice.Literal {
			if strings.HasPrefix(lit, prefix) {
				out = append(out, Candidate{Value: lit, Kind: KindValue})
			}
		}

		return out
	}

	if choice.Fn != "" {
		if runner == nil {
			return []Candidate{{Value: "__argc_fn:" + choice.Fn, Kind: KindValue, NoSpace: true}}
		}

		var out []Candidate

		for _, cand := range runner.RunChoiceFn(choice.Fn) {
			value, describe := splitCandidateLine(cand)
			if strings.HasPrefix(value, prefix) {
				out = append(out, Candidate{Value: value, Describe: describe, Kind: KindValue})
			}
		}

		return out
	}

	name := "value"
	if len(notations) > 0 {
		name = notations[len(notations)-1].Name
	}

	return []Candidate{{Value: "__argc_value=" + name, Kind: KindValue, NoSpace: true}}
}

// splitCandidateLine splits a runner output line on a `\t` describe
// suffix (spec §4.5's placeholder-expansion format).
func splitCandidateLine(line string) (value, describe string) {
	if idx := strings.IndexByte(line, '\t'); idx >= 0 {
		return line[:idx], line[idx+1:]
	}

	return line, ""
}

func commandOrPositionalCandidates(st walkState, runner Runner, prefix string) []Candidate {
	var out []Candidate

	for _, sub := range st.level.Subcommands {
		if strings.HasPrefix(sub.Name, prefix) {
			out = append(out, Candidate{Value: sub.Name, Describe: sub.Describe, Kind: KindCommand})
		}

		for _, a := range sub.Aliases {
			if strings.HasPrefix(a, prefix) {
				out = append(out, Candidate{Value: a, Describe: sub.Describe, Kind: KindCommand})
			}
		}
	}

	if len(out) > 0 {
		return out
	}

	params := st.level.PositionalParams
	if len(params) == 0 {
		return []Candidate{{Value: "__argc_value=file", Kind: KindValue, NoSpace: true}}
	}

	idx := st.positionalCount
	if idx >= len(params) {
		idx = len(params) - 1
	}

	p := params[idx]
	notations := []model.Notation{p.Notation}

	return valueCandidates(p.Choice, notations, runner, prefix)
}
