package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arganaut/arganaut/model"
)

func TestHelpRendersAllSections(t *testing.T) {
	cmd, err := model.Build(`#!/usr/bin/env bash
# @describe An example tool
# @cmd
# @flag -a --all print everything
# @arg target! the deploy target
deploy() { :; }
`)
	require.NoError(t, err)

	sub := cmd.Subcommands[0]

	out := Help(sub, Options{Theme: DefaultTheme()})

	assert.Contains(t, out, "USAGE")
	assert.Contains(t, out, "ARGS")
	assert.Contains(t, out, "OPTIONS")
	assert.Contains(t, out, "target")
	assert.Contains(t, out, "--all")
}

func TestHelpOmitsEmptySections(t *testing.T) {
	cmd, err := model.Build(`# @cmd
build() { :; }
`)
	require.NoError(t, err)

	out := Help(cmd.Subcommands[0], Options{Theme: DefaultTheme()})

	assert.NotContains(t, out, "ARGS")
	assert.NotContains(t, out, "COMMANDS")
	assert.NotContains(t, out, "ENVIRONMENTS")
}

func TestErrorPageFormat(t *testing.T) {
	cmd, err := model.Build(`# @cmd
build() { :; }
`)
	require.NoError(t, err)

	out := ErrorPage(cmd.Subcommands[0], "missing argument 'target'", DefaultTheme())

	lines := strings.Split(out, "\n")
	assert.Equal(t, "error: missing argument 'target'", lines[0])
	assert.Contains(t, out, "For more information, try '--help'.")
}
