package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arganaut/arganaut/model"
	"github.com/arganaut/arganaut/runner"
)

func build(t *testing.T, script string) *model.Command {
	t.Helper()

	cmd, err := model.Build(script)
	require.NoError(t, err)

	return cmd
}

func findBound(values []model.BoundValue, name string) (model.BoundValue, bool) {
	for _, v := range values {
		if v.Name == name {
			return v, true
		}
	}

	return model.BoundValue{}, false
}

func TestMatchBindsFlagAndOption(t *testing.T) {
	root := build(t, `# @cmd
# @flag -a --all
# @option --tag <TAG>
build() { :; }
`)

	res, mErr := Match(root, []string{"prog", "build", "-a", "--tag", "v1"}, Options{})
	require.Nil(t, mErr)

	all, ok := findBound(res.Values, "all")
	require.True(t, ok)
	assert.Equal(t, "1", all.Value)

	tag, ok := findBound(res.Values, "tag")
	require.True(t, ok)
	assert.Equal(t, "v1", tag.Value)
}

func TestMatchCombinedShortFlags(t *testing.T) {
	root := build(t, `# @meta combine-shorts
# @cmd
# @flag -a --all
# @flag -b --bare
build() { :; }
`)

	res, mErr := Match(root, []string{"prog", "build", "-ab"}, Options{})
	require.Nil(t, mErr)

	all, ok := findBound(res.Values, "all")
	require.True(t, ok)
	assert.Equal(t, "1", all.Value)

	bare, ok := findBound(res.Values, "bare")
	require.True(t, ok)
	assert.Equal(t, "1", bare.Value)
}

func TestMatchInlineOptionValue(t *testing.T) {
	root := build(t, `# @cmd
# @option -n --number <N>
serve() { :; }
`)

	res, mErr := Match(root, []string{"prog", "serve", "-n3"}, Options{})
	require.Nil(t, mErr)

	n, ok := findBound(res.Values, "number")
	require.True(t, ok)
	assert.Equal(t, "3", n.Value)

	res, mErr = Match(root, []string{"prog", "serve", "--number=3"}, Options{})
	require.Nil(t, mErr)

	n, ok = findBound(res.Values, "number")
	require.True(t, ok)
	assert.Equal(t, "3", n.Value)
}

func TestMatchMissingRequiredArgument(t *testing.T) {
	root := build(t, `# @cmd
# @arg target!
build() { :; }
`)

	_, mErr := Match(root, []string{"prog", "build"}, Options{})
	require.NotNil(t, mErr)
	assert.Equal(t, ErrMissingRequiredArgument, mErr.Kind)
}

func TestMatchUnknownArgumentSuggestsClosest(t *testing.T) {
	root := build(t, `# @cmd
# @flag -a --all
build() { :; }
`)

	_, mErr := Match(root, []string{"prog", "build", "--allow"}, Options{})
	require.NotNil(t, mErr)
	assert.Equal(t, ErrUnknownArgument, mErr.Kind)
	assert.Contains(t, mErr.Message, "all")
}

func TestMatchInvalidSubcommand(t *testing.T) {
	root := build(t, `# @cmd
build() { :; }
`)

	_, mErr := Match(root, []string{"prog", "bild"}, Options{})
	require.NotNil(t, mErr)
	assert.Equal(t, ErrInvalidSubcommand, mErr.Kind)
}

func TestMatchChoiceRejectsInvalidValue(t *testing.T) {
	root := build(t, `# @cmd
# @option --color[red|green|blue]
paint() { :; }
`)

	_, mErr := Match(root, []string{"prog", "paint", "--color", "purple"}, Options{})
	require.NotNil(t, mErr)
	assert.Equal(t, ErrInvalidValue, mErr.Kind)
}

func TestMatchHelpFlagDisplaysHelp(t *testing.T) {
	root := build(t, `# @cmd
build() { :; }
`)

	_, mErr := Match(root, []string{"prog", "--help"}, Options{})
	require.NotNil(t, mErr)
	assert.Equal(t, ErrDisplayHelp, mErr.Kind)
	assert.Equal(t, 0, mErr.Kind.ExitCode())
}

func TestMatchDoubleDashTerminatesFlagParsing(t *testing.T) {
	root := build(t, `# @cmd
# @arg files*
build() { :; }
`)

	res, mErr := Match(root, []string{"prog", "build", "--", "--not-a-flag"}, Options{})
	require.Nil(t, mErr)

	files, ok := findBound(res.Values, "files")
	require.True(t, ok)
	assert.Equal(t, []string{"--not-a-flag"}, files.Values)
}

func TestMatchDynamicChoiceUsesRunner(t *testing.T) {
	root := build(t, "# @cmd\n# @option --branch[`_choice_branch`]\nco() { :; }\n_choice_branch() { :; }\n")

	runner := stubRunner{results: map[string][]string{"_choice_branch": {"main", "dev"}}}

	res, mErr := Match(root, []string{"prog", "co", "--branch", "dev"}, Options{Runner: runner})
	require.Nil(t, mErr)

	branch, ok := findBound(res.Values, "branch")
	require.True(t, ok)
	assert.Equal(t, "dev", branch.Value)

	_, mErr = Match(root, []string{"prog", "co", "--branch", "nope"}, Options{Runner: runner})
	require.NotNil(t, mErr)
	assert.Equal(t, ErrInvalidValue, mErr.Kind)
}

func TestMatchBatchesDistinctChoiceFnsInOneRunCall(t *testing.T) {
	root := build(t, "# @cmd\n"+
		"# @option --branch[`_choice_branch`]\n"+
		"# @option --remote[`_choice_remote`]\n"+
		"co() { :; }\n"+
		"_choice_branch() { :; }\n"+
		"_choice_remote() { :; }\n")

	stub := &runner.Stub{Outputs: map[string][]string{
		"_choice_branch": {"main", "dev"},
		"_choice_remote": {"origin", "upstream"},
	}}

	opts := Options{Runner: runner.NewChoiceFn(stub, "script.sh", nil)}

	res, mErr := Match(root, []string{"prog", "co", "--branch", "dev", "--remote", "origin"}, opts)
	require.Nil(t, mErr)

	branch, ok := findBound(res.Values, "branch")
	require.True(t, ok)
	assert.Equal(t, "dev", branch.Value)

	remote, ok := findBound(res.Values, "remote")
	require.True(t, ok)
	assert.Equal(t, "origin", remote.Value)

	require.Len(t, stub.Calls, 1)
	assert.ElementsMatch(t, []string{"_choice_branch", "_choice_remote"}, stub.Calls[0][1:])
}

type stubRunner struct {
	results map[string][]string
}

func (s stubRunner) RunChoiceFn(name string) []string {
	return s.results[name]
}
