package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexFunctionDefinitions(t *testing.T) {
	script := `#!/usr/bin/env bash
# @cmd
foo() {
  :
}

# @cmd
function bar() {
  :
}

foo::baz() {
  :
}
`
	_, funcs, err := Lex(script)
	require.NoError(t, err)
	require.Len(t, funcs, 3)
	assert.Equal(t, "foo", funcs[0].Name)
	assert.Equal(t, "bar", funcs[1].Name)
	assert.Equal(t, "foo::baz", funcs[2].Name)
}

func TestLexFunctionKeywordWithoutParens(t *testing.T) {
	script := `#!/usr/bin/env bash
# @cmd
function foo {
  :
}

# @cmd
function remote::add {
  :
}
`
	_, funcs, err := Lex(script)
	require.NoError(t, err)
	require.Len(t, funcs, 2)
	assert.Equal(t, "foo", funcs[0].Name)
	assert.Equal(t, "remote::add", funcs[1].Name)
}

func TestLexIgnoresUnrelatedLines(t *testing.T) {
	script := `#!/usr/bin/env bash
# This is a plain comment, not a directive.
echo "hello"
# @describe greets the world
main() {
  echo hi
}
`
	tags, funcs, err := Lex(script)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	require.Len(t, funcs, 1)
	assert.Equal(t, TagDescribe, tags[0].Tag)
	assert.Equal(t, "greets the world", tags[0].Text)
}

func TestLexDescribeContinuation(t *testing.T) {
	script := "# @describe First line\n" +
		"#   second line\n" +
		"#   third line\n" +
		"main() { :; }\n"

	tags, _, err := Lex(script)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "First line second line third line", tags[0].Text)
}

func TestLexContinuationStopsAtNextDirective(t *testing.T) {
	script := "# @describe First\n" +
		"# @flag --verbose\n" +
		"main() { :; }\n"

	tags, _, err := Lex(script)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "First", tags[0].Text)
	assert.Equal(t, TagFlag, tags[1].Tag)
}

func TestLexUnknownTagErrors(t *testing.T) {
	script := "# @bogus something\nmain() { :; }\n"

	_, _, err := Lex(script)
	require.Error(t, err)

	var dErr *Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, ErrUnknownTag, dErr.Kind)
}

func TestLexAliasAndMeta(t *testing.T) {
	script := "# @cmd\n" +
		"# @alias b,bld\n" +
		"# @meta require-tools docker, jq\n" +
		"build() { :; }\n"

	tags, _, err := Lex(script)
	require.NoError(t, err)
	require.Len(t, tags, 3)

	assert.Equal(t, TagAlias, tags[1].Tag)
	assert.Equal(t, []string{"b", "bld"}, tags[1].Names)

	assert.Equal(t, TagMeta, tags[2].Tag)
	assert.Equal(t, "require-tools", tags[2].MetaKey)
	assert.Equal(t, "docker, jq", tags[2].MetaValue)
}
