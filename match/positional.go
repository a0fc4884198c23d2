package match

import "github.com/arganaut/arganaut/model"

// positionalAssignment captures which raw tokens landed on one declared
// positional parameter.
type positionalAssignment struct {
	param  *model.Positional
	tokens []string
}

// distributePositionals maps collected positional tokens onto the
// declared PositionalParams list, per spec §4.4's distribution rules.
// dashFirst is dashes[0] (ignored unless sawDash is true). It returns
// one assignment per declared positional (in order) plus any leftover
// tokens beyond what was declared.
func distributePositionals(params []*model.Positional, tokens []string, dashFirst int, sawDash bool) ([]positionalAssignment, []string) {
	n := len(params)
	if n == 0 {
		return nil, tokens
	}

	if n == 2 && params[0].Multiple && params[1].Multiple && sawDash && dashFirst > 0 {
		split := dashFirst
		if split > len(tokens) {
			split = len(tokens)
		}

		return []positionalAssignment{
			{param: params[0], tokens: tokens[:split]},
			{param: params[1], tokens: tokens[split:]},
		}, nil
	}

	assignments := make([]positionalAssignment, n)
	for i, p := range params {
		assignments[i].param = p
	}

	remaining := tokens

	for i, p := range params {
		if !p.Multiple {
			if len(remaining) == 0 {
				break
			}

			assignments[i].tokens = remaining[:1]
			remaining = remaining[1:]

			continue
		}

		nonVariadicToRight := 0
		for _, rest := range params[i+1:] {
			if !rest.Multiple {
				nonVariadicToRight++
			}
		}

		take := len(remaining) - nonVariadicToRight
		if take < 1 {
			take = 1
		}

		if take > len(remaining) {
			take = len(remaining)
		}

		assignments[i].tokens = remaining[:take]
		remaining = remaining[take:]
	}

	return assignments, remaining
}
