package match

import (
	"os"
	"strings"

	"github.com/arganaut/arganaut/directive"
	"github.com/arganaut/arganaut/model"
)

// frame tracks the flag/option bindings collected at one Command level
// during descent (spec §4.4's "flag_option_args[level]").
type frame struct {
	cmd         *model.Command
	values      map[*model.FlagOrOption][]string
	occurrences map[*model.FlagOrOption]int
}

func newFrame(cmd *model.Command) *frame {
	return &frame{
		cmd:         cmd,
		values:      map[*model.FlagOrOption][]string{},
		occurrences: map[*model.FlagOrOption]int{},
	}
}

type matcher struct {
	root   *model.Command
	opts   Options
	frames []*frame

	positional []string
	dashMark   int
	sawDash    bool

	choiceCache map[string][]string
}

// Match walks argv (argv[0] is the program name) against the Command
// tree per spec §4.4 and returns either a declaration-ordered BoundValue
// list or a structured Error.
func Match(root *model.Command, argv []string, opts Options) (*Result, *Error) {
	tokens := argv
	if len(tokens) > 0 {
		tokens = tokens[1:]
	}

	if helpErr, handled := matchHelpPseudo(root, tokens); handled {
		return nil, helpErr
	}

	m := &matcher{
		root:        root,
		opts:        opts,
		choiceCache: map[string][]string{},
	}
	m.frames = append(m.frames, newFrame(root))

	if br, ok := opts.Runner.(BatchRunner); ok {
		if names := scanInvocationChoiceFns(root, tokens); len(names) > 0 {
			for name, vals := range br.RunChoiceFns(names) {
				m.choiceCache[name] = vals
			}
		}
	}

	restIsPositional := false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if m.sawDash {
			m.positional = append(m.positional, tok)

			continue
		}

		if tok == "--" {
			m.dashMark = len(m.positional)
			m.sawDash = true

			continue
		}

		level := m.level()

		if restIsPositional {
			m.appendPositional(tok)

			continue
		}

		if len(level.FlagOrOptionParams) == 0 && len(level.Subcommands) == 0 {
			restIsPositional = m.appendPositional(tok) || restIsPositional

			continue
		}

		if looksLikeOptionToken(tok, level) {
			if fo, ok := m.resolveHelpVersion(level, tok); ok {
				return nil, displayErrorFor(fo, level)
			}

			if err := m.handleOptionToken(tok, tokens, &i); err != nil {
				return nil, err
			}

			continue
		}

		if child := findChild(level, tok); child != nil {
			m.frames = append(m.frames, newFrame(child))

			continue
		}

		if len(level.Subcommands) > 0 && len(level.PositionalParams) == 0 && level.DefaultSubcommand < 0 {
			return nil, newError(ErrInvalidSubcommand, level, "unknown subcommand '%s'", tok)
		}

		restIsPositional = m.appendPositional(tok) || restIsPositional
	}

	return m.finish()
}

// resolveHelpVersion reports whether tok names the level's derived help
// or version flag, without consuming it through the normal value-binding
// path (spec §4.4 step 3).
func (m *matcher) resolveHelpVersion(level *model.Command, tok string) (*model.FlagOrOption, bool) {
	fo := lookupFlag(level, tok)
	if fo == nil {
		return nil, false
	}

	if fo == level.HelpFlag || fo == level.VersionFlag {
		return fo, true
	}

	return nil, false
}

func lookupFlag(level *model.Command, tok string) *model.FlagOrOption {
	if name, _, ok := splitNameValue(tok); ok {
		tok = name
	}

	if fo := findFlagByLong(level, tok); fo != nil {
		return fo
	}

	if len(tok) == 2 && tok[0] == '-' {
		return findFlagByShort(level, rune(tok[1]))
	}

	return nil
}

func displayErrorFor(fo *model.FlagOrOption, level *model.Command) *Error {
	if fo == level.VersionFlag {
		return newError(ErrDisplayVersion, level, "")
	}

	if level == nil || level.Parent == nil {
		return newError(ErrDisplayHelp, level, "")
	}

	return newError(ErrDisplaySubcommandHelp, level, "")
}

func (m *matcher) level() *model.Command {
	return m.frames[len(m.frames)-1].cmd
}

func findChild(level *model.Command, tok string) *model.Command {
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

// appendPositional records tok as a collected positional token. It
// returns true once the current level's last positional is terminated
// and has reached its declared arity, signaling the caller to treat
// every further token as positional regardless of shape.
func (m *matcher) appendPositional(tok string) bool {
	m.positional = append(m.positional, tok)

	level := m.level()
	n := len(level.PositionalParams)
	if n == 0 {
		return false
	}

	last := level.PositionalParams[n-1]
	if !last.Terminated {
		return false
	}

	return len(m.positional) >= n
}

func splitNameValue(tok string) (name, val string, ok bool) {
	if tok == "" || tok[0] != '-' {
		return "", "", false
	}

	idx := strings.IndexByte(tok, '=')
	if idx <= 0 {
		return "", "", false
	}

	return tok[:idx], tok[idx+1:], true
}

func (m *matcher) handleOptionToken(tok string, tokens []string, i *int) *Error {
	level := m.level()

	if name, val, ok := splitNameValue(tok); ok {
		fo := findFlagByLong(level, name)
		if fo == nil && len(name) == 2 {
			fo = findFlagByShort(level, rune(name[1]))
		}

		if fo == nil {
			return m.unknownArgument(tok)
		}

		return m.bindOccurrence(fo, []string{val})
	}

	if fo := findFlagByLong(level, tok); fo != nil {
		return m.consumeOption(fo, tokens, i)
	}

	if len(tok) == 2 {
		if fo := findFlagByShort(level, rune(tok[1])); fo != nil {
			return m.consumeOption(fo, tokens, i)
		}
	}

	if fo, val, ok := shortInlineValue(tok, level); ok {
		return m.bindOccurrence(fo, []string{val})
	}

	if _, combineShorts := m.root.Metadata["combine-shorts"]; combineShorts {
		if parts, ok := splitCombinedShorts(tok, level); ok {
			return m.bindCombo(parts)
		}
	}

	return m.unknownArgument(tok)
}

func (m *matcher) bindCombo(parts []comboPart) *Error {
	for _, part := range parts {
		if part.hasInline {
			if err := m.bindOccurrence(part.flag, []string{part.inline}); err != nil {
				return err
			}

			continue
		}

		val := "1"
		if !part.flag.IsFlag {
			val = ""
		}

		if err := m.bindOccurrence(part.flag, []string{val}); err != nil {
			return err
		}
	}

	return nil
}

func optionArity(fo *model.FlagOrOption) (min, max int, unbounded bool) {
	if len(fo.ValueNames) == 0 {
		return 1, 1, false
	}

	switch fo.ValueNames[len(fo.ValueNames)-1].Modifier {
	case directive.ModOptionalMulti:
		return 0, 0, true
	case directive.ModRequiredMulti:
		return 1, 0, true
	default:
		n := len(fo.ValueNames)

		return n, n, false
	}
}

func (m *matcher) consumeOption(fo *model.FlagOrOption, tokens []string, i *int) *Error {
	level := m.level()

	if fo.IsFlag {
		return m.bindOccurrence(fo, []string{"1"})
	}

	if fo.Terminated {
		vals := append([]string(nil), tokens[*i+1:]...)
		*i = len(tokens) - 1

		return m.bindOccurrence(fo, vals)
	}

	min_, max_, unbounded := optionArity(fo)

	var vals []string
	for *i+1 < len(tokens) {
		next := tokens[*i+1]
		if !looksLikeNegativeNumber(next) && looksLikeOptionToken(next, level) {
			break
		}

		if !unbounded && len(vals) >= max_ {
			break
		}

		vals = append(vals, next)
		*i++
	}

	if len(vals) < min_ {
		return newError(ErrMismatchValues, level,
			"the argument '%s' requires %s but %d %s provided",
			displayName(fo), arityDescription(min_, max_, unbounded), len(vals), pluralize(len(vals)))
	}

	return m.bindOccurrence(fo, vals)
}

func arityDescription(min, max int, unbounded bool) string {
	switch {
	case unbounded && min == 0:
		return "zero or more values"
	case unbounded && min == 1:
		return "at least one value"
	case min == max:
		return pluralizeCount(min, "value")
	default:
		return pluralizeCount(min, "value")
	}
}

func pluralize(n int) string {
	if n == 1 {
		return "was"
	}

	return "were"
}

func pluralizeCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}

	return strings.Join([]string{itoa(n), noun + "s"}, " ")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	neg := n < 0
	if neg {
		n = -n
	}

	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}

	if neg {
		buf = append([]byte{'-'}, buf...)
	}

	return string(buf)
}

func displayName(fo *model.FlagOrOption) string {
	if fo.LongPrefix != "" && fo.Name != "" {
		return fo.LongPrefix + fo.Name
	}

	if fo.Short != 0 {
		return "-" + string(fo.Short)
	}

	return fo.Name
}

func (m *matcher) bindOccurrence(fo *model.FlagOrOption, vals []string) *Error {
	fr := m.frames[len(m.frames)-1]
	fr.occurrences[fo]++

	if fr.occurrences[fo] > 1 && !fo.Multiple {
		return newError(ErrNotMultiple, fr.cmd, "the argument '%s' cannot be used multiple times", displayName(fo))
	}

	for _, v := range vals {
		if err := m.validateChoice(fo.Choice, displayName(fo), v, fr.cmd); err != nil {
			return err
		}
	}

	fr.values[fo] = append(fr.values[fo], vals...)

	return nil
}

func (m *matcher) validateChoice(c model.Choice, label, val string, cmd *model.Command) *Error {
	if len(c.Literal) > 0 {
		for _, lit := range c.Literal {
			if lit == val {
				return nil
			}
		}

		return newError(ErrInvalidValue, cmd, "invalid value '%s' for '%s'\n[possible values: %s]",
			val, label, strings.Join(c.Literal, ", "))
	}

	if c.Fn != "" && c.FnValidate {
		candidates := m.runChoiceFn(c.Fn)

		for _, cand := range candidates {
			if cand == val {
				return nil
			}
		}

		return newError(ErrInvalidValue, cmd, "invalid value '%s' for '%s'\n[possible values: %s]",
			val, label, strings.Join(candidates, ", "))
	}

	return nil
}

func (m *matcher) runChoiceFn(name string) []string {
	if cached, ok := m.choiceCache[name]; ok {
		return cached
	}

	var out []string
	if m.opts.Runner != nil {
		out = m.opts.Runner.RunChoiceFn(name)
	}

	m.choiceCache[name] = out

	return out
}

func (m *matcher) unknownArgument(tok string) *Error {
	level := m.level()

	var names []string
	for _, fo := range level.FlagOrOptionParams {
		names = append(names, displayName(fo))
	}

	if hint := closestMatch(tok, names); hint != "" {
		return newError(ErrUnknownArgument, level, "unknown argument '%s', did you mean '%s'?", tok, hint)
	}

	return newError(ErrUnknownArgument, level, "unknown argument '%s'", tok)
}

func (m *matcher) finish() (*Result, *Error) {
	deepest := m.level()

	var values []model.BoundValue

	for _, fr := range m.frames {
		flagVals, err := m.finishFlagOrOptions(fr)
		if err != nil {
			return nil, err
		}

		values = append(values, flagVals...)

		envVals, err := m.finishEnv(fr.cmd)
		if err != nil {
			return nil, err
		}

		values = append(values, envVals...)
	}

	posVals, err := m.finishPositionals(deepest)
	if err != nil {
		return nil, err
	}

	values = append(values, posVals...)
	values = append(values, m.finishMetadataHooks()...)

	if deepest.CommandFn != "" {
		values = append(values, model.NewCommandFn(deepest.CommandFn))
	}

	return &Result{Values: values}, nil
}

func (m *matcher) finishFlagOrOptions(fr *frame) ([]model.BoundValue, *Error) {
	var out []model.BoundValue

	for _, fo := range fr.cmd.FlagOrOptionParams {
		vals, seen := fr.values[fo]

		if !seen {
			if fo.Required {
				return nil, newError(ErrMissingRequiredArgument, fr.cmd,
					"the argument '%s' is required", displayName(fo))
			}

			if fo.Choice.HasDefault {
				out = append(out, defaultBoundValue(fo.Name, fo.Choice, false))
			}

			continue
		}

		if fo.IsFlag {
			if len(vals) == 1 && !fo.Multiple {
				out = append(out, model.NewSingle(fo.Name, "1"))
			} else {
				out = append(out, model.NewMultiple(fo.Name, vals))
			}

			continue
		}

		if len(vals) == 1 {
			out = append(out, model.NewSingle(fo.Name, vals[0]))
		} else {
			out = append(out, model.NewMultiple(fo.Name, vals))
		}
	}

	return out, nil
}

func defaultBoundValue(name string, c model.Choice, positional bool) model.BoundValue {
	if c.DefaultFn != "" {
		if positional {
			return model.NewPositionalSingle(name, "")
		}

		return model.NewSingleFn(name, c.DefaultFn)
	}

	if c.Default != "" {
		if positional {
			return model.NewPositionalSingle(name, c.Default)
		}

		return model.NewSingle(name, c.Default)
	}

	if c.DefaultIndex >= 0 && c.DefaultIndex < len(c.Literal) {
		lit := c.Literal[c.DefaultIndex]
		if positional {
			return model.NewPositionalSingle(name, lit)
		}

		return model.NewSingle(name, lit)
	}

	if positional {
		return model.NewPositionalSingle(name, "")
	}

	return model.NewSingle(name, "")
}

func (m *matcher) finishPositionals(deepest *model.Command) ([]model.BoundValue, *Error) {
	params := deepest.PositionalParams
	if len(params) == 0 {
		if len(m.positional) > 0 {
			return []model.BoundValue{model.NewExtraPositionalMultiple(m.positional)}, nil
		}

		return nil, nil
	}

	dashFirst := 0
	if len(m.positional) >= m.dashMark {
		dashFirst = m.dashMark
	}

	assignments, leftover := distributePositionals(params, m.positional, dashFirst, m.sawDash)

	last := params[len(params)-1]
	if last.Terminated && len(leftover) > 0 {
		for i := range assignments {
			if assignments[i].param == last {
				assignments[i].tokens = append(assignments[i].tokens, leftover...)
				leftover = nil
			}
		}
	}

	var out []model.BoundValue

	for _, a := range assignments {
		p := a.param

		if len(a.tokens) == 0 {
			if p.Required {
				return nil, newError(ErrMissingRequiredArgument, deepest,
					"the positional argument '%s' is required", p.Name)
			}

			if p.Choice.HasDefault {
				out = append(out, defaultBoundValue(p.Name, p.Choice, true))
			}

			continue
		}

		for _, v := range a.tokens {
			if err := m.validateChoice(p.Choice, p.Name, v, deepest); err != nil {
				return nil, err
			}
		}

		if p.Multiple {
			out = append(out, model.NewPositionalMultiple(p.Name, a.tokens))
		} else {
			out = append(out, model.NewPositionalSingle(p.Name, a.tokens[0]))
		}
	}

	if len(leftover) > 0 {
		out = append(out, model.NewExtraPositionalMultiple(leftover))
	}

	return out, nil
}

func (m *matcher) finishEnv(cmd *model.Command) ([]model.BoundValue, *Error) {
	getenv := m.opts.Getenv
	if getenv == nil {
		getenv = os.LookupEnv
	}

	var out []model.BoundValue

	for _, e := range cmd.EnvParams {
		raw, ok := getenv(e.Name)
		if !ok {
			if e.Required {
				return nil, newError(ErrMissingRequiredArgument, cmd,
					"environment variable '%s' is required", e.Name)
			}

			if e.Choice.HasDefault {
				out = append(out, envDefaultBoundValue(e.Name, e.Choice))
			}

			continue
		}

		if err := m.validateChoice(e.Choice, e.Name, raw, cmd); err != nil {
			return nil, err
		}

		out = append(out, model.NewEnv(e.Name, raw))
	}

	return out, nil
}

func envDefaultBoundValue(name string, c model.Choice) model.BoundValue {
	if c.DefaultFn != "" {
		return model.NewEnvFn(name, c.DefaultFn)
	}

	if c.Default != "" {
		return model.NewEnv(name, c.Default)
	}

	if c.DefaultIndex >= 0 && c.DefaultIndex < len(c.Literal) {
		return model.NewEnv(name, c.Literal[c.DefaultIndex])
	}

	return model.NewEnv(name, "")
}

// finishMetadataHooks emits Hook/RequireTools/Dotenv per root metadata
// and the `_argc_before`/`_argc_after` function convention (spec §6's
// Emitter row and the Hook BoundValue description).
func (m *matcher) finishMetadataHooks() []model.BoundValue {
	var out []model.BoundValue

	hasBefore := m.root.Functions["_argc_before"]
	hasAfter := m.root.Functions["_argc_after"]

	if hasBefore || hasAfter {
		before, after := "", ""
		if hasBefore {
			before = "_argc_before"
		}

		if hasAfter {
			after = "_argc_after"
		}

		out = append(out, model.NewHook(before, after))
	}

	if tools, ok := m.root.Metadata["require-tools"]; ok {
		names := strings.Split(tools, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}

		out = append(out, model.NewRequireTools(names))
	}

	if path, ok := m.root.Metadata["dotenv"]; ok {
		if path == "" {
			path = ".env"
		}

		out = append(out, model.NewDotenv(path))
	}

	return out
}

// matchHelpPseudo recognizes the bare `help [subcommand…]` pseudo-command
// (spec §4.4 step 3), walking subsequent tokens as subcommand names.
func matchHelpPseudo(root *model.Command, tokens []string) (*Error, bool) {
	if len(tokens) == 0 || tokens[0] != "help" {
		return nil, false
	}

	if findChild(root, "help") != nil {
		return nil, false
	}

	level := root

	for _, tok := range tokens[1:] {
		child := findChild(level, tok)
		if child == nil {
			return newError(ErrInvalidSubcommand, level, "unknown subcommand '%s'", tok), true
		}

		level = child
	}

	if level == root {
		return newError(ErrDisplayHelp, root, ""), true
	}

	return newError(ErrDisplaySubcommandHelp, level, ""), true
}
