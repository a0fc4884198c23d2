package match

import "github.com/arganaut/arganaut/model"

func isPrefixChar(level *model.Command, c byte) bool {
	if c == '-' {
		return true
	}

	for _, fo := range level.FlagOrOptionParams {
		if fo.LongPrefix != "" && fo.LongPrefix[0] == c {
			return true
		}
	}

	return false
}

func looksLikeOptionToken(token string, level *model.Command) bool {
	if token == "" || token == "-" {
		return false
	}

	return isPrefixChar(level, token[0])
}

// looksLikeNegativeNumber recognizes tokens like "-1" or "-3.5" so the
// matcher can treat them as values, not flag attempts, while an option
// is mid-arity-collection (supplemented feature 6).
func looksLikeNegativeNumber(token string) bool {
	if len(token) < 2 || token[0] != '-' {
		return false
	}

	return token[1] >= '0' && token[1] <= '9'
}

func findFlagByLong(level *model.Command, nameToken string) *model.FlagOrOption {
	for _, fo := range level.FlagOrOptionParams {
		if fo.LongPrefix+fo.Name == nameToken {
			return fo
		}
	}

	if nameToken == "-help" && level.HelpFlag != nil {
		return level.HelpFlag
	}

	if nameToken == "-version" && level.VersionFlag != nil {
		return level.VersionFlag
	}

	return nil
}

func findFlagByShort(level *model.Command, r rune) *model.FlagOrOption {
	for _, fo := range level.FlagOrOptionParams {
		if fo.Short == r {
			return fo
		}
	}

	return nil
}

// shortInlineValue recognizes "-n3" style tokens: a short option letter
// immediately followed by its value in the same token, with no space or
// `=`. Only legal when the letter is declared as an option, never a bare
// flag (spec §9's decided open question).
func shortInlineValue(token string, level *model.Command) (*model.FlagOrOption, string, bool) {
	if len(token) < 3 || token[0] != '-' {
		return nil, "", false
	}

	fo := findFlagByShort(level, rune(token[1]))
	if fo == nil || fo.IsFlag {
		return nil, "", false
	}

	return fo, token[2:], true
}

// comboPart is one letter peeled off a `-abc` combine-shorts token.
type comboPart struct {
	flag      *model.FlagOrOption
	inline    string
	hasInline bool
}

// splitCombinedShorts expands "-abc" into its component short flags
// (spec §4.4): letters are read left to right as bare flags until one
// names an option; that option takes the remaining characters of the
// token as its inline value. An option in the last position is bound
// without an inline value.
func splitCombinedShorts(token string, level *model.Command) ([]comboPart, bool) {
	letters := token[1:]
	if letters == "" {
		return nil, false
	}

	var parts []comboPart

	for i := 0; i < len(letters); i++ {
		fo := findFlagByShort(level, rune(letters[i]))
		if fo == nil {
			return nil, false
		}

		if !fo.IsFlag && i < len(letters)-1 {
			parts = append(parts, comboPart{flag: fo, inline: letters[i+1:], hasInline: true})

			return parts, true
		}

		parts = append(parts, comboPart{flag: fo})
	}

	return parts, true
}
