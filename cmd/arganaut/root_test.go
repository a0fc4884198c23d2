package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCmdRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["eval"])
	assert.True(t, names["compgen"])
}

func TestColorModeRejectsInvalidValue(t *testing.T) {
	var c colorMode
	assert.Error(t, c.Set("rainbow"))
	assert.NoError(t, c.Set("always"))
	assert.Equal(t, "always", c.String())
}
