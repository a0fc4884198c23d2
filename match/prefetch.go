package match

import "github.com/arganaut/arganaut/model"

// scanInvocationChoiceFns walks tokens the same way the matcher descends
// subcommands, collecting the distinct validated choice-function names
// the current invocation could reference: any flag/option token it
// recognizes along the way, plus every positional and (for every
// Command on the resolved path) env param at the end. It never
// validates arity or values, so it over-collects rather than under-
// collects on ambiguous input; a name this misses still resolves
// correctly through runChoiceFn's per-name fallback, just without the
// batching.
func scanInvocationChoiceFns(root *model.Command, tokens []string) []string {
	level := root
	sawDash := false
	names := map[string]bool{}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if sawDash {
			continue
		}

		if tok == "--" {
			sawDash = true

			continue
		}

		if looksLikeOptionToken(tok, level) {
			if fo := lookupFlag(level, tok); fo != nil {
				collectChoiceFn(fo.Choice, names)

				if !fo.IsFlag && i+1 < len(tokens) && !looksLikeOptionToken(tokens[i+1], level) {
					i++
				}
			}

			continue
		}

		if child := findChild(level, tok); child != nil {
			level = child

			continue
		}
	}

	for _, p := range level.PositionalParams {
		collectChoiceFn(p.Choice, names)
	}

	for c := level; c != nil; c = c.Parent {
		for _, e := range c.EnvParams {
			collectChoiceFn(e.Choice, names)
		}
	}

	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}

	return out
}

func collectChoiceFn(c model.Choice, names map[string]bool) {
	if c.Fn != "" && c.FnValidate {
		names[c.Fn] = true
	}
}
