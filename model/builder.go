package model

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/arganaut/arganaut/directive"
)

// Build assembles a Command tree from a script's full text, running the
// Lexer, Directive Parser and Model Builder state machine described in
// spec §4.1-§4.2 in one call.
func Build(script string) (*Command, error) {
	tagEvents, funcEvents, err := directive.Lex(script)
	if err != nil {
		return nil, wrapLexError(err)
	}

	b := &builder{
		root:           newCommand(),
		functions:      map[string]int{},
		boundFunctions: map[string]bool{},
	}

	for _, ev := range mergeEvents(tagEvents, funcEvents) {
		if ev.fn != nil {
			if err := b.handleFunction(*ev.fn); err != nil {
				return nil, err
			}

			continue
		}

		if err := b.handleTag(*ev.tag); err != nil {
			return nil, err
		}
	}

	if b.pending != nil {
		return nil, newError("cmd", b.pendingLine, ErrMissingFunction,
			"@cmd at line %d never bound to a function", b.pendingLine)
	}

	if err := b.finalize(); err != nil {
		return nil, err
	}

	return b.root, nil
}

func wrapLexError(err error) error {
	var dErr *directive.Error
	if !asDirectiveError(err, &dErr) {
		return err
	}

	kind := ErrMalformed
	if dErr.Kind == directive.ErrUnknownTag {
		kind = ErrUnknownTag
	}

	return newError(dErr.Tag, dErr.Line, kind, "%s", dErr.Message)
}

func asDirectiveError(err error, target **directive.Error) bool {
	de, ok := err.(*directive.Error)
	if !ok {
		return false
	}

	*target = de

	return true
}

type mergedEvent struct {
	line int
	tag  *directive.TagEvent
	fn   *directive.FunctionEvent
}

func mergeEvents(tags []directive.TagEvent, funcs []directive.FunctionEvent) []mergedEvent {
	merged := make([]mergedEvent, 0, len(tags)+len(funcs))

	for i := range tags {
		merged = append(merged, mergedEvent{line: tags[i].Line, tag: &tags[i]})
	}

	for i := range funcs {
		merged = append(merged, mergedEvent{line: funcs[i].Line, fn: &funcs[i]})
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].line < merged[j].line })

	return merged
}

// builder is the mutable construction state threaded through one Build
// call (spec §9's "re-express as a Builder owned by the construction
// call"). It is never shared beyond a single Build.
type builder struct {
	root *Command

	pending             *Command
	pendingLine         int
	pendingWantsDefault bool

	// functions records every encountered function definition name to
	// its first line, for choice/default/parent-chain resolution.
	functions map[string]int

	// boundFunctions tracks which function names have already been
	// bound to a command node, so the root "main" fallback never
	// double-binds one already claimed explicitly.
	boundFunctions map[string]bool

	combineShorts      bool
	inheritFlagOptions bool
	noInheritEnv       bool
	symbolMeta         bool
}

func (b *builder) target() *Command {
	if b.pending != nil {
		return b.pending
	}

	return b.root
}

func (b *builder) handleTag(ev directive.TagEvent) error {
	switch ev.Tag {
	case directive.TagCmd:
		if b.pending != nil {
			return newError("cmd", ev.Line, ErrNestedCmdWithoutFunction,
				"a new @cmd appeared before the previous one was bound to a function")
		}

		b.pending = newCommand()
		b.pending.Describe = ev.Text
		b.pendingLine = ev.Line
		b.pendingWantsDefault = false

	case directive.TagDescribe:
		b.target().Describe = ev.Text

	case directive.TagVersion:
		b.target().Version = ev.Text

	case directive.TagAuthor:
		b.target().Author = ev.Text

	case directive.TagAlias:
		b.target().Aliases = append(b.target().Aliases, ev.Names...)

	case directive.TagMeta:
		return b.applyMeta(ev)

	case directive.TagFlag, directive.TagOption:
		return b.addFlagOrOption(ev)

	case directive.TagArg:
		return b.addPositional(ev)

	case directive.TagEnv:
		return b.addEnv(ev)

	default:
		return newError(string(ev.Tag), ev.Line, ErrUnknownTag, "unrecognized directive @%s", ev.Tag)
	}

	return nil
}

func (b *builder) handleFunction(ev directive.FunctionEvent) error {
	if _, exists := b.functions[ev.Name]; !exists {
		b.functions[ev.Name] = ev.Line
	}

	if b.pending == nil {
		return nil
	}

	cmd := b.pending
	cmd.CommandFn = ev.Name

	segments := strings.Split(ev.Name, "::")
	cmd.Name = segments[len(segments)-1]

	parent := b.root
	for _, seg := range segments[:len(segments)-1] {
		child := findSubcommandByName(parent, seg)
		if child == nil {
			return newError("", ev.Line, ErrMissingParent,
				"parent command %q not found while binding function %q", seg, ev.Name)
		}

		parent = child
	}

	if err := b.attach(parent, cmd, ev.Line); err != nil {
		return err
	}

	b.boundFunctions[ev.Name] = true
	b.pending = nil

	return nil
}

func findSubcommandByName(parent *Command, name string) *Command {
	for _, sib := range parent.Subcommands {
		if sib.Name == name {
			return sib
		}
	}

	return nil
}

func (b *builder) attach(parent, cmd *Command, line int) error {
	existing := map[string]bool{}

	for _, sib := range parent.Subcommands {
		existing[sib.Name] = true

		for _, a := range sib.Aliases {
			existing[a] = true
		}
	}

	if existing[cmd.Name] {
		return newError("cmd", line, ErrDuplicateName,
			"subcommand %q already declared under %q", cmd.Name, parent.Name)
	}

	seenOwn := map[string]bool{}

	for _, alias := range cmd.Aliases {
		if existing[alias] {
			return newError("alias", line, ErrDuplicateAlias,
				"alias %q collides with a sibling name or alias under %q", alias, parent.Name)
		}

		if seenOwn[alias] {
			return newError("alias", line, ErrDuplicateAlias, "alias %q declared more than once", alias)
		}

		seenOwn[alias] = true
	}

	cmd.Parent = parent
	parent.Subcommands = append(parent.Subcommands, cmd)

	if b.pendingWantsDefault {
		if len(parent.PositionalParams) > 0 {
			return newError("meta", line, ErrConflictingMeta,
				"default-subcommand conflicts with positional parameters on %q", parent.Name)
		}

		parent.DefaultSubcommand = len(parent.Subcommands) - 1
	}

	return nil
}

func (b *builder) applyMeta(ev directive.TagEvent) error {
	key := strings.ToLower(ev.MetaKey)
	value := ev.MetaValue

	switch key {
	case "combine-shorts":
		if b.symbolMeta {
			return newError("meta", ev.Line, ErrConflictingMeta, "combine-shorts conflicts with symbol")
		}

		b.combineShorts = true
		b.root.Metadata[key] = value

	case "inherit-flag-options":
		b.inheritFlagOptions = true
		b.root.Metadata[key] = value

	case "no-inherit-env":
		b.noInheritEnv = true
		b.root.Metadata[key] = value

	case "default-subcommand":
		if b.pending == nil {
			return newError("meta", ev.Line, ErrConflictingMeta, "default-subcommand declared outside of @cmd")
		}

		b.pendingWantsDefault = true
		b.pending.Metadata[key] = value

	case "symbol":
		if b.combineShorts {
			return newError("meta", ev.Line, ErrConflictingMeta, "symbol conflicts with combine-shorts")
		}

		b.symbolMeta = true

		sym, err := parseSymbolMeta(value)
		if err != nil {
			return newError("meta", ev.Line, ErrMalformed, "%s", err)
		}

		sym.Line = ev.Line
		b.target().Symbols[sym.Char] = sym
		b.target().Metadata[key] = value

	default:
		// require-tools, dotenv, man-section and any forward-compatible
		// key are stored verbatim (supplemented feature 1) and left to
		// the matcher/emitter to interpret.
		b.target().Metadata[key] = value
	}

	return nil
}

func parseSymbolMeta(value string) (Symbol, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Symbol{}, fmt.Errorf("symbol requires <ch><name>")
	}

	ch := value[0]
	rest := value[1:]
	name := rest
	fn := ""

	if idx := strings.IndexByte(rest, '='); idx >= 0 {
		name = rest[:idx]
		fn = strings.Trim(rest[idx+1:], "`")
	}

	if name == "" {
		return Symbol{}, fmt.Errorf("symbol %q missing a name", string(ch))
	}

	return Symbol{Char: ch, Name: name, ChoiceFn: fn}, nil
}

func (b *builder) addFlagOrOption(ev directive.TagEvent) error {
	p := ev.Param
	target := b.target()

	fo := &FlagOrOption{
		Param: Param{
			Name:      p.Name,
			Describe:  p.Describe,
			Choice:    choiceFromSpec(p.Choice),
			Multiple:  p.Modifier.Multiple(),
			Required:  p.Modifier.Required(),
			MultiChar: p.MultiChar,
			Line:      ev.Line,
		},
		Short:      p.Short,
		IsFlag:     p.IsFlag,
		LongPrefix: p.LongPrefix,
		ValueNames: notationsFromSpec(p.Notations),
		Terminated: p.Terminated,
	}

	if len(fo.ValueNames) > 0 {
		last := fo.ValueNames[len(fo.ValueNames)-1].Modifier
		notationHasArity := last == directive.ModOptionalMulti || last == directive.ModRequiredMulti

		if notationHasArity && p.Modifier.Multiple() {
			return newError(string(ev.Tag), ev.Line, ErrConflictingMeta,
				"arity for %q is declared on both the name and a value notation", fo.Name)
		}

		if notationHasArity {
			fo.Multiple = last == directive.ModOptionalMulti
			fo.Multiple = fo.Multiple || last == directive.ModRequiredMulti
			fo.Required = last == directive.ModRequiredMulti
		}
	}

	for _, existing := range target.FlagOrOptionParams {
		if existing.Name == fo.Name {
			return newError(string(ev.Tag), ev.Line, ErrDuplicateName, "flag/option %q already declared", fo.Name)
		}

		if fo.Short != 0 && existing.Short == fo.Short {
			return newError(string(ev.Tag), ev.Line, ErrDuplicateShort,
				"short letter %q already declared", string(fo.Short))
		}
	}

	target.FlagOrOptionParams = append(target.FlagOrOptionParams, fo)

	return nil
}

func (b *builder) addPositional(ev directive.TagEvent) error {
	p := ev.Param
	target := b.target()

	pos := &Positional{
		Param: Param{
			Name:      p.Name,
			Describe:  p.Describe,
			Choice:    choiceFromSpec(p.Choice),
			Multiple:  p.Modifier.Multiple(),
			Required:  p.Modifier.Required(),
			MultiChar: p.MultiChar,
			Line:      ev.Line,
		},
		Terminated: p.Terminated,
	}

	if len(p.Notations) > 0 {
		pos.Notation = notationsFromSpec(p.Notations)[0]
	}

	for _, existing := range target.PositionalParams {
		if existing.Name == pos.Name {
			return newError("arg", ev.Line, ErrDuplicateName, "positional %q already declared", pos.Name)
		}
	}

	target.PositionalParams = append(target.PositionalParams, pos)

	return nil
}

func (b *builder) addEnv(ev directive.TagEvent) error {
	p := ev.Param
	target := b.target()

	e := &Env{
		Param: Param{
			Name:      p.Name,
			Describe:  p.Describe,
			Choice:    choiceFromSpec(p.Choice),
			Multiple:  p.Modifier.Multiple(),
			Required:  p.Modifier.Required(),
			MultiChar: p.MultiChar,
			Line:      ev.Line,
		},
	}

	for _, existing := range target.EnvParams {
		if existing.Name == e.Name {
			return newError("env", ev.Line, ErrDuplicateName, "environment variable %q already declared", e.Name)
		}
	}

	target.EnvParams = append(target.EnvParams, e)

	return nil
}

func (b *builder) finalize() error {
	b.root.Functions = make(map[string]bool, len(b.functions))
	for name := range b.functions {
		b.root.Functions[name] = true
	}

	assignPaths(b.root, nil)
	b.applyMainFallback(b.root)

	if b.inheritFlagOptions {
		inheritFlagOptions(b.root, nil)
	}

	if !b.noInheritEnv {
		inheritEnv(b.root, nil)
	}

	deriveHelpFlag(b.root)
	if b.root.Version != "" {
		deriveVersionFlag(b.root)
	}

	for _, cmd := range collectAll(b.root) {
		if cmd != b.root {
			deriveHelpFlag(cmd)
		}
	}

	if err := validateNoSubcommandAliasCollision(b.root); err != nil {
		return err
	}

	return b.validateFunctionReferences()
}

// validateNoSubcommandAliasCollision enforces spec §3's "a name may not
// collide with a subcommand alias": for each Command, none of its own
// flag/option or positional names may equal one of its direct
// subcommands' names or aliases. addFlagOrOption/addPositional already
// dedupe within their own kind and attach already dedupes a new
// subcommand against its siblings; this is the missing cross-check
// between the two.
func validateNoSubcommandAliasCollision(root *Command) error {
	for _, cmd := range collectAll(root) {
		if len(cmd.Subcommands) == 0 {
			continue
		}

		taken := map[string]bool{}
		for _, sub := range cmd.Subcommands {
			taken[sub.Name] = true

			for _, a := range sub.Aliases {
				taken[a] = true
			}
		}

		for _, fo := range cmd.FlagOrOptionParams {
			if taken[fo.Name] {
				return newError("flag", fo.Line, ErrDuplicateName,
					"name %q collides with a subcommand name or alias under %q", fo.Name, cmd.Name)
			}
		}

		for _, pos := range cmd.PositionalParams {
			if taken[pos.Name] {
				return newError("arg", pos.Line, ErrDuplicateName,
					"name %q collides with a subcommand name or alias under %q", pos.Name, cmd.Name)
			}
		}
	}

	return nil
}

func assignPaths(cmd *Command, parentPaths []string) {
	cmd.Paths = parentPaths

	for _, child := range cmd.Subcommands {
		assignPaths(child, append(append([]string{}, parentPaths...), child.Name))
	}
}

func (b *builder) applyMainFallback(cmd *Command) {
	if cmd.CommandFn == "" {
		candidate := "main"
		if len(cmd.Paths) > 0 {
			candidate = strings.Join(append(append([]string{}, cmd.Paths...), "main"), "::")
		}

		if _, ok := b.functions[candidate]; ok && !b.boundFunctions[candidate] {
			cmd.CommandFn = candidate
		}
	}

	for _, child := range cmd.Subcommands {
		b.applyMainFallback(child)
	}
}

func inheritFlagOptions(cmd *Command, ancestors []*FlagOrOption) {
	own := map[string]bool{}
	for _, fo := range cmd.FlagOrOptionParams {
		own[fo.Name] = true
	}

	for _, anc := range ancestors {
		if !own[anc.Name] {
			copyFO := *anc
			copyFO.Inherit = true
			cmd.FlagOrOptionParams = append(cmd.FlagOrOptionParams, &copyFO)
		}
	}

	childAncestors := append(append([]*FlagOrOption{}, ancestors...), ownNonInherited(cmd.FlagOrOptionParams)...)

	for _, child := range cmd.Subcommands {
		inheritFlagOptions(child, childAncestors)
	}
}

func ownNonInherited(params []*FlagOrOption) []*FlagOrOption {
	var out []*FlagOrOption

	for _, p := range params {
		if !p.Inherit {
			out = append(out, p)
		}
	}

	return out
}

func inheritEnv(cmd *Command, ancestors []*Env) {
	own := map[string]bool{}
	for _, e := range cmd.EnvParams {
		own[e.Name] = true
	}

	for _, anc := range ancestors {
		if !own[anc.Name] {
			copyEnv := *anc
			copyEnv.Inherit = true
			cmd.EnvParams = append(cmd.EnvParams, &copyEnv)
		}
	}

	var childAncestors []*Env
	childAncestors = append(childAncestors, ancestors...)

	for _, e := range cmd.EnvParams {
		if !e.Inherit {
			childAncestors = append(childAncestors, e)
		}
	}

	for _, child := range cmd.Subcommands {
		inheritEnv(child, childAncestors)
	}
}

func deriveHelpFlag(cmd *Command) {
	takenShorts := map[rune]bool{}
	for _, fo := range cmd.FlagOrOptionParams {
		if fo.Short != 0 {
			takenShorts[fo.Short] = true
		}
	}

	help := &FlagOrOption{
		Param:      Param{Name: "help", Describe: "Print help"},
		LongPrefix: "--",
		IsFlag:     true,
	}

	if !takenShorts['h'] {
		help.Short = 'h'
	}

	cmd.FlagOrOptionParams = append(cmd.FlagOrOptionParams, help)
	cmd.HelpFlag = help
}

func deriveVersionFlag(cmd *Command) {
	takenShorts := map[rune]bool{}
	for _, fo := range cmd.FlagOrOptionParams {
		if fo.Short != 0 {
			takenShorts[fo.Short] = true
		}
	}

	version := &FlagOrOption{
		Param:      Param{Name: "version", Describe: "Print version"},
		LongPrefix: "--",
		IsFlag:     true,
	}

	if !takenShorts['V'] {
		version.Short = 'V'
	}

	cmd.FlagOrOptionParams = append(cmd.FlagOrOptionParams, version)
	cmd.VersionFlag = version
}

func collectAll(cmd *Command) []*Command {
	out := []*Command{cmd}
	for _, child := range cmd.Subcommands {
		out = append(out, collectAll(child)...)
	}

	return out
}

// validateFunctionReferences checks every choice/default function
// reference across the whole tree resolves to a known function
// definition, per spec §3's "Every referenced choice/default function
// name must resolve to a function definition in the script."
func (b *builder) validateFunctionReferences() error {
	known := maps.Keys(b.functions)

	check := func(name, kind, owner string, line int) error {
		if name == "" {
			return nil
		}

		if !slices.Contains(known, name) {
			return newError(kind, line, ErrMissingFunction,
				"function %q referenced by %q is not defined in the script", name, owner)
		}

		return nil
	}

	for _, cmd := range collectAll(b.root) {
		for _, fo := range cmd.FlagOrOptionParams {
			if err := check(fo.Choice.Fn, "option", fo.Name, fo.Line); err != nil {
				return err
			}

			if err := check(fo.Choice.DefaultFn, "option", fo.Name, fo.Line); err != nil {
				return err
			}
		}

		for _, pos := range cmd.PositionalParams {
			if err := check(pos.Choice.Fn, "arg", pos.Name, pos.Line); err != nil {
				return err
			}

			if err := check(pos.Choice.DefaultFn, "arg", pos.Name, pos.Line); err != nil {
				return err
			}
		}

		for _, e := range cmd.EnvParams {
			if err := check(e.Choice.Fn, "env", e.Name, e.Line); err != nil {
				return err
			}

			if err := check(e.Choice.DefaultFn, "env", e.Name, e.Line); err != nil {
				return err
			}
		}

		for _, sym := range cmd.Symbols {
			if err := check(sym.ChoiceFn, "meta", sym.Name, sym.Line); err != nil {
				return err
			}
		}
	}

	return nil
}
