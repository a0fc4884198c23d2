// Package model assembles directive.TagEvents and directive.FunctionEvents
// into an immutable Command tree (spec §3, §4.2). It knows nothing about
// argv or user input; that is the match package's job.
package model

import "github.com/arganaut/arganaut/directive"

// Command is one node of the command tree.
type Command struct {
	Name     string
	Describe string
	Author   string
	Version  string

	// Paths is the ordered list of names from root to this node. Empty
	// for root.
	Paths []string

	Aliases []string

	FlagOrOptionParams []*FlagOrOption
	PositionalParams   []*Positional
	EnvParams          []*Env

	Subcommands []*Command

	// CommandFn is the shell function identifier to dispatch to when
	// this node is selected, possibly dotted (`parent::child`). Empty
	// if this node has no bound function (pure grouping node).
	CommandFn string

	// Metadata is the open key-value list of every @meta entry attached
	// to this node, including ones that also drove builder behavior.
	Metadata map[string]string

	// DefaultSubcommand is an index into Subcommands, or -1 if none.
	DefaultSubcommand int

	// Symbols maps a single leading character to the special-value
	// binding declared by `@meta symbol`.
	Symbols map[byte]Symbol

	HelpFlag    *FlagOrOption
	VersionFlag *FlagOrOption

	Parent *Command

	// Functions lists every function definition name found anywhere in
	// the script. Populated on the root node only; the matcher consults
	// it to detect the `_argc_before`/`_argc_after` hook convention.
	Functions map[string]bool
}

// Symbol is one `@meta symbol <ch><name>[=`fn`]` binding.
type Symbol struct {
	Char     byte
	Name     string
	ChoiceFn string
	Line     int
}

func newCommand() *Command {
	return &Command{
		Metadata:          map[string]string{},
		Symbols:           map[byte]Symbol{},
		DefaultSubcommand: -1,
	}
}

// Param carries the fields common to FlagOrOption, Positional and Env,
// mirroring spec §3's "Parameter common fields".
type Param struct {
	Name     string
	Describe string
	Choice   Choice
	Multiple bool
	Required bool

	// MultiChar is the value-splitting delimiter (`,` or `:`), or empty.
	MultiChar string

	// Line is the 1-based source line of the directive that declared
	// this parameter, used to anchor later error messages.
	Line int
}

// Choice is either a literal list, a dynamic function reference, or a
// plain default — exactly the shapes the directive micro-grammar
// produces, carried forward unchanged into the model.
type Choice struct {
	Literal      []string
	DefaultIndex int

	Fn         string
	FnValidate bool

	Default    string
	DefaultFn  string
	HasDefault bool
}

// Empty reports whether no choice-or-default was declared at all.
func (c Choice) Empty() bool {
	return len(c.Literal) == 0 && c.Fn == "" && !c.HasDefault
}

func choiceFromSpec(c directive.Choice) Choice {
	return Choice{
		Literal:      c.Literal,
		DefaultIndex: c.DefaultIndex,
		Fn:           c.Fn,
		FnValidate:   c.FnValidate,
		Default:      c.Default,
		DefaultFn:    c.DefaultFn,
		HasDefault:   c.Default != "" || c.DefaultFn != "" || c.DefaultIndex >= 0,
	}
}

// Notation is one angle-bracket value slot, e.g. `<FILE+>`.
type Notation struct {
	Name     string
	Modifier directive.Modifier
}

func notationsFromSpec(ns []directive.Notation) []Notation {
	out := make([]Notation, len(ns))
	for i, n := range ns {
		out[i] = Notation{Name: n.Name, Modifier: n.Modifier}
	}

	return out
}

// FlagOrOption is a `@flag` or `@option` parameter.
type FlagOrOption struct {
	Param

	Short      rune // 0 if absent
	IsFlag     bool
	LongPrefix string // "-", "--", or "+"
	ValueNames []Notation
	Terminated bool

	// Inherit is true when this entry was copied down from an ancestor
	// via `inherit-flag-options`.
	Inherit bool
}

// Positional is an `@arg` parameter.
type Positional struct {
	Param

	Notation   Notation // Name == "" if no notation was declared
	Terminated bool
}

// Env is an `@env` parameter.
type Env struct {
	Param

	Inherit bool
}
