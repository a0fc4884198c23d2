package validatefn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arganaut/arganaut/model"
)

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	cmd, err := model.Build(`# @cmd
# @env API_KEY
build() { :; }
`)
	require.NoError(t, err)

	assert.NoError(t, Validate(cmd))
}

func TestValidateRejectsBadEnvName(t *testing.T) {
	cmd, err := model.Build(`# @cmd
build() { :; }
`)
	require.NoError(t, err)

	cmd.Subcommands[0].EnvParams = append(cmd.Subcommands[0].EnvParams, &model.Env{Param: model.Param{Name: "1BAD"}})

	assert.Error(t, Validate(cmd))
}

func TestValidateRejectsBadAlias(t *testing.T) {
	cmd, err := model.Build(`# @cmd
build() { :; }
`)
	require.NoError(t, err)

	cmd.Subcommands[0].Aliases = append(cmd.Subcommands[0].Aliases, "!!bad")

	assert.Error(t, Validate(cmd))
}
