// Package directive implements the lexer and directive parser described in
// the system's §4.1: it turns a script's text into an ordered sequence of
// TagEvents and FunctionEvents, each annotated with its 1-based line
// number. It knows nothing about command trees, inheritance, or matching;
// that is the model package's job.
package directive

// Tag selects which micro-grammar a directive's payload is parsed with.
type Tag string

// The recognized directive tags, per the grammar table in spec §4.1.
const (
	TagDescribe Tag = "describe"
	TagVersion  Tag = "version"
	TagAuthor   Tag = "author"
	TagCmd      Tag = "cmd"
	TagAlias    Tag = "alias"
	TagMeta     Tag = "meta"
	TagFlag     Tag = "flag"
	TagOption   Tag = "option"
	TagArg      Tag = "arg"
	TagEnv      Tag = "env"
)

// Modifier is the arity modifier shared by flag/option/positional/env
// names and by option value notations.
type Modifier int

// The four arities a bare name, `!`, `*` or `+` suffix can express.
const (
	ModOptionalSingle Modifier = iota
	ModRequiredSingle
	ModOptionalMulti
	ModRequiredMulti
)

func (m Modifier) String() string {
	switch m {
	case ModRequiredSingle:
		return "!"
	case ModOptionalMulti:
		return "*"
	case ModRequiredMulti:
		return "+"
	default:
		return ""
	}
}

// Required reports whether the modifier requires at least one value.
func (m Modifier) Required() bool {
	return m == ModRequiredSingle || m == ModRequiredMulti
}

// Multiple reports whether the modifier allows more than one value.
func (m Modifier) Multiple() bool {
	return m == ModOptionalMulti || m == ModRequiredMulti
}

// Choice carries the parsed choice-or-default fragment that can follow a
// flag/option/arg/env name, as described in spec §4.1.
type Choice struct {
	// Literal choices, e.g. from `[a|b|c]`. Nil if choices are dynamic
	// or absent.
	Literal []string

	// DefaultIndex is the index into Literal that was marked with a
	// leading `=` (`[=a|b|c]`), or -1 if none was marked.
	DefaultIndex int

	// Fn is the function name for dynamic choices (`` `fn` `` or
	// `` ?`fn` ``), or empty if choices are literal or absent.
	Fn string

	// FnValidate is true for `` `fn` `` (validated dynamic choices) and
	// false for `` ?`fn` `` (suggestion-only).
	FnValidate bool

	// Default is a literal default value from `=literal`, or empty.
	Default string

	// DefaultFn is the function name from `` =`fn` ``, or empty.
	DefaultFn string
}

// Empty reports whether no choice-or-default fragment was present at all.
func (c Choice) Empty() bool {
	return len(c.Literal) == 0 && c.Fn == "" && c.Default == "" && c.DefaultFn == ""
}

// Notation is one `<NAME>` or `<NAME?>`/`<NAME*>`/`<NAME+>` value slot
// following an option's name.
type Notation struct {
	Name     string
	Modifier Modifier
}

// ParamSpec is the union of fields produced by parsing a @flag, @option,
// @arg or @env directive payload. Builders in the model package pick the
// fields relevant to the directive's Tag.
type ParamSpec struct {
	Name       string
	Short      rune // 0 if absent
	LongPrefix string // "-", "--", or "+"; empty for @arg/@env
	IsFlag     bool   // true for @flag (no declared values)
	Notations  []Notation
	Modifier   Modifier
	Terminated bool
	MultiChar  string // "," or ":" value-splitting delimiter, or ""
	Choice     Choice
	Describe   string
}

// FunctionEvent records a shell function definition: `name()` or
// `function name`. Name may contain `::` to denote nesting
// (`parent::child`), which the model builder resolves.
type FunctionEvent struct {
	Line int
	Name string
}

// TagEvent is one parsed directive line.
type TagEvent struct {
	Line int
	Tag  Tag

	// Text carries free-form payload for TagDescribe, TagVersion,
	// TagAuthor, and the describe string of a bare TagCmd.
	Text string

	// Names carries the comma-separated alias list for TagAlias.
	Names []string

	// MetaKey/MetaValue carry the `<key> [value]` payload of TagMeta.
	MetaKey   string
	MetaValue string

	// Param carries the structured payload of TagFlag, TagOption,
	// TagArg and TagEnv. Nil for all other tags.
	Param *ParamSpec
}
