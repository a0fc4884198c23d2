package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagShortAndLong(t *testing.T) {
	ev, err := parseTag(TagFlag, "-a --all    print everything", 1)
	require.NoError(t, err)
	require.NotNil(t, ev.Param)

	p := ev.Param
	assert.Equal(t, 'a', p.Short)
	assert.Equal(t, "--", p.LongPrefix)
	assert.Equal(t, "all", p.Name)
	assert.True(t, p.IsFlag)
	assert.Equal(t, "print everything", p.Describe)
}

func TestParseFlagShortOnlyBecomesLong(t *testing.T) {
	ev, err := parseTag(TagFlag, "-a", 1)
	require.NoError(t, err)

	p := ev.Param
	assert.Equal(t, rune(0), p.Short)
	assert.Equal(t, "-", p.LongPrefix)
	assert.Equal(t, "a", p.Name)
}

func TestParseFlagRequiredModifier(t *testing.T) {
	ev, err := parseTag(TagFlag, "--force!", 1)
	require.NoError(t, err)
	assert.Equal(t, ModRequiredSingle, ev.Param.Modifier)
}

func TestParseOptionWithLiteralChoices(t *testing.T) {
	ev, err := parseTag(TagOption, "-t --type[=debug|release] <MODE> build mode", 1)
	require.NoError(t, err)

	p := ev.Param
	assert.Equal(t, 't', p.Short)
	assert.Equal(t, "type", p.Name)
	require.Equal(t, []string{"debug", "release"}, p.Choice.Literal)
	assert.Equal(t, 0, p.Choice.DefaultIndex)
	require.Len(t, p.Notations, 1)
	assert.Equal(t, "MODE", p.Notations[0].Name)
	assert.Equal(t, "build mode", p.Describe)
}

func TestParseOptionWithQuotedChoice(t *testing.T) {
	ev, err := parseTag(TagOption, `--sep["a|b"|c]`, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a|b", "c"}, ev.Param.Choice.Literal)
}

func TestParseOptionWithDynamicValidatedChoice(t *testing.T) {
	ev, err := parseTag(TagOption, "--branch[`_choice_branch`] <NAME>", 1)
	require.NoError(t, err)

	c := ev.Param.Choice
	assert.Equal(t, "_choice_branch", c.Fn)
	assert.True(t, c.FnValidate)
}

func TestParseOptionWithSuggestionOnlyChoice(t *testing.T) {
	ev, err := parseTag(TagOption, "--branch[?`_choice_branch`]", 1)
	require.NoError(t, err)

	c := ev.Param.Choice
	assert.Equal(t, "_choice_branch", c.Fn)
	assert.False(t, c.FnValidate)
}

func TestParseOptionWithLiteralDefault(t *testing.T) {
	ev, err := parseTag(TagOption, `--out=out\ dir.txt`, 1)
	require.NoError(t, err)
	assert.Equal(t, "out dir.txt", ev.Param.Choice.Default)
}

func TestParseOptionWithDefaultFn(t *testing.T) {
	ev, err := parseTag(TagOption, "--root=`pwd`", 1)
	require.NoError(t, err)
	assert.Equal(t, "pwd", ev.Param.Choice.DefaultFn)
}

func TestParseOptionMultiValueDelimiter(t *testing.T) {
	ev, err := parseTag(TagOption, "--tag,* <TAG>", 1)
	require.NoError(t, err)
	assert.Equal(t, ",", ev.Param.MultiChar)
	assert.Equal(t, ModOptionalMulti, ev.Param.Modifier)
}

func TestParseOptionTerminated(t *testing.T) {
	ev, err := parseTag(TagOption, "--args~*", 1)
	require.NoError(t, err)
	assert.True(t, ev.Param.Terminated)
	assert.Equal(t, ModOptionalMulti, ev.Param.Modifier)
}

func TestParseArgRequiredWithChoices(t *testing.T) {
	ev, err := parseTag(TagArg, "env![dev|stage|prod] target environment", 1)
	require.NoError(t, err)

	p := ev.Param
	assert.Equal(t, "env", p.Name)
	assert.Equal(t, ModRequiredSingle, p.Modifier)
	assert.Equal(t, []string{"dev", "stage", "prod"}, p.Choice.Literal)
	assert.Equal(t, "target environment", p.Describe)
}

func TestParseArgRejectsMultipleNotations(t *testing.T) {
	_, err := parseTag(TagArg, "files* <FILE> <DIR>", 1)
	require.Error(t, err)

	var dErr *Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, ErrMalformed, dErr.Kind)
}

func TestParseEnvWithDefault(t *testing.T) {
	ev, err := parseTag(TagEnv, "LOG_LEVEL=info log verbosity", 1)
	require.NoError(t, err)

	p := ev.Param
	assert.Equal(t, "LOG_LEVEL", p.Name)
	assert.Equal(t, "info", p.Choice.Default)
	assert.Equal(t, "log verbosity", p.Describe)
}

func TestParseAliasRequiresAtLeastOneName(t *testing.T) {
	_, err := parseTag(TagAlias, "   ", 1)
	require.Error(t, err)
}

func TestParseMetaWithoutValue(t *testing.T) {
	ev, err := parseTag(TagMeta, "symbol", 1)
	require.NoError(t, err)
	assert.Equal(t, "symbol", ev.MetaKey)
	assert.Empty(t, ev.MetaValue)
}

func TestParseOptionMissingBracketClose(t *testing.T) {
	_, err := parseTag(TagOption, "--mode[a|b", 1)
	require.Error(t, err)

	var dErr *Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, ErrMalformedChoice, dErr.Kind)
}
