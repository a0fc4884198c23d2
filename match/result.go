package match

import "github.com/arganaut/arganaut/model"

// Result is the successful outcome of Match: a BoundValue list in the
// declaration order described in spec §4.4's "Emission order".
type Result struct {
	Values []model.BoundValue
}

// Runner is the capability the matcher calls to resolve dynamic
// validated choice functions (spec §9's "capability interface"). A nil
// Runner makes every dynamic choice resolve to an empty candidate list,
// which is never fatal — consistent with spec §7's "external-runner
// failures are silent".
type Runner interface {
	// RunChoiceFn executes the named shell function and returns its
	// stdout lines. Implementations must never block indefinitely and
	// must return an empty slice rather than propagate a failure.
	RunChoiceFn(name string) []string
}

// BatchRunner is an optional capability a Runner may also implement.
// When present, Match resolves every dynamic choice function the
// current invocation could reference in one spawn batch, before
// validating any occurrence (spec §5's "all spawns launched before any
// wait"), and only falls back to per-name RunChoiceFn calls for names
// the batch didn't cover.
type BatchRunner interface {
	Runner

	// RunChoiceFns executes every named function in one batch and
	// returns a result map keyed by name. A name missing from the
	// result is not cached, so Match calls RunChoiceFn for it instead.
	RunChoiceFns(names []string) map[string][]string
}

// Options configures one Match call.
type Options struct {
	Runner Runner

	// Getenv looks up a process environment variable, defaulting to
	// os.LookupEnv. Tests substitute a deterministic map.
	Getenv func(name string) (string, bool)
}
