package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBashEscapesSpecialChars(t *testing.T) {
	c := Candidate{Value: "build dir"}
	assert.Equal(t, `build\ dir`, Format(ShellBash, c, FormatOptions{}))
}

func TestFormatZshAddsColorAndDescription(t *testing.T) {
	c := Candidate{Value: "build", Describe: "build the project", Kind: KindCommand}
	out := Format(ShellZsh, c, FormatOptions{Description: true})
	assert.Contains(t, out, "build")
	assert.Contains(t, out, "build the project")
}

func TestFormatPowerShellSingleQuotesWhenNeeded(t *testing.T) {
	c := Candidate{Value: "it's a value"}
	assert.Equal(t, `'it''s a value'`, Format(ShellPowerShell, c, FormatOptions{}))
}

func TestFormatGenericPassesThroughSimpleValue(t *testing.T) {
	c := Candidate{Value: "build"}
	assert.Equal(t, "build", Format(ShellGeneric, c, FormatOptions{}))
}

func TestFormatPassesThroughPlaceholderUnchanged(t *testing.T) {
	c := Candidate{Value: "__argc_value=file"}
	assert.Equal(t, "__argc_value=file", Format(ShellBash, c, FormatOptions{}))
	assert.Equal(t, "__argc_value=file", Format(ShellZsh, c, FormatOptions{Description: true}))
}

func TestParseShellDefaultsToGeneric(t *testing.T) {
	assert.Equal(t, ShellBash, ParseShell("bash"))
	assert.Equal(t, ShellGeneric, ParseShell("unknown-shell"))
}
