package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arganaut/arganaut/model"
)

func values(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Value
	}

	return out
}

func TestCompleteSubcommandNames(t *testing.T) {
	root, err := model.Build(`# @cmd
build() { :; }
# @cmd
bundle() { :; }
`)
	require.NoError(t, err)

	cands := Complete(root, "prog bu", nil)
	assert.ElementsMatch(t, []string{"build", "bundle"}, values(cands))
}

func TestCompleteFlagNames(t *testing.T) {
	root, err := model.Build(`# @cmd
# @flag -a --all
# @flag -b --bare
build() { :; }
`)
	require.NoError(t, err)

	cands := Complete(root, "prog build --a", nil)
	assert.ElementsMatch(t, []string{"--all"}, values(cands))
}

func TestCompleteLiteralChoiceValues(t *testing.T) {
	root, err := model.Build(`# @cmd
# @option --color[red|green|blue]
paint() { :; }
`)
	require.NoError(t, err)

	cands := Complete(root, "prog paint --color ", nil)
	assert.ElementsMatch(t, []string{"red", "green", "blue"}, values(cands))
}

func TestCompleteDynamicChoiceUsesRunner(t *testing.T) {
	root, err := model.Build("# @cmd\n# @option --branch[`_choice_branch`]\nco() { :; }\n_choice_branch() { :; }\n")
	require.NoError(t, err)

	cands := Complete(root, "prog co --branch ", stubRunner{"_choice_branch": {"main", "dev"}})
	assert.ElementsMatch(t, []string{"main", "dev"}, values(cands))
}

func TestCompleteDynamicChoiceWithoutRunnerReturnsPlaceholder(t *testing.T) {
	root, err := model.Build("# @cmd\n# @option --branch[`_choice_branch`]\nco() { :; }\n_choice_branch() { :; }\n")
	require.NoError(t, err)

	cands := Complete(root, "prog co --branch ", nil)
	require.Len(t, cands, 1)
	assert.Equal(t, "__argc_fn:_choice_branch", cands[0].Value)
}

func TestCompleteCombinedShortOffersRemainingFlags(t *testing.T) {
	root, err := model.Build(`# @meta combine-shorts
# @cmd
# @flag -a --all
# @flag -b --bare
# @flag -c --clean
build() { :; }
`)
	require.NoError(t, err)

	cands := Complete(root, "prog build -ab", nil)
	require.Len(t, cands, 1)
	assert.Equal(t, "-abc", cands[0].Value)
}

func TestCompleteCombinedShortUnknownLetterFallsBack(t *testing.T) {
	root, err := model.Build(`# @meta combine-shorts
# @cmd
# @flag -a --all
build() { :; }
`)
	require.NoError(t, err)

	cands := Complete(root, "prog build -az", nil)
	assert.Empty(t, cands)
}

func TestCompleteCombinedShortWithoutMetaFallsBackToPlain(t *testing.T) {
	root, err := model.Build(`# @cmd
# @flag -a --all
build() { :; }
`)
	require.NoError(t, err)

	cands := Complete(root, "prog build -a", nil)
	assert.ElementsMatch(t, []string{"-a"}, values(cands))
}

type stubRunner map[string][]string

func (s stubRunner) RunChoiceFn(name string) []string {
	return s[name]
}
