// Package complete implements the Completion Engine (spec §4.5): given a
// Command tree and a possibly-incomplete command line, it produces a
// ranked list of candidate tokens, then formats them for a target shell.
package complete

// Kind discriminates what a Candidate names.
type Kind int

const (
	KindCommand Kind = iota
	KindFlag
	KindOption
	KindValue
)

// Candidate is one completion suggestion (spec §4.5).
type Candidate struct {
	Value    string
	Describe string
	Kind     Kind

	// NoSpace suppresses the trailing space a shell would normally
	// insert after accepting this candidate (e.g. `--opt=` expects more
	// input immediately).
	NoSpace bool
}

// Runner is the subset of the External-Function Runner the completion
// engine needs: resolving a dynamic choice function's candidates.
// Distinct from match.Runner only in package location, not shape, so
// runner.Exec/runner.Stub can satisfy either via a one-line adapter.
type Runner interface {
	RunChoiceFn(name string) []string
}
