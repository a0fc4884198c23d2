package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubRunRecordsCallsAndReturnsOutputs(t *testing.T) {
	s := &Stub{Outputs: map[string][]string{
		"_choice_branch": {"main", "dev"},
	}}

	out := s.Run("deploy.sh", []string{"_choice_branch", "_choice_env"}, []string{"co"})

	require.Len(t, out, 2)
	assert.Equal(t, []string{"main", "dev"}, out[0])
	assert.Empty(t, out[1])

	require.Len(t, s.Calls, 1)
	assert.Equal(t, []string{"deploy.sh", "_choice_branch", "_choice_env"}, s.Calls[0])
}

func TestNewChoiceFnAdaptsBatchRunnerToSingleName(t *testing.T) {
	s := &Stub{Outputs: map[string][]string{
		"_choice_branch": {"main", "dev"},
	}}

	adapter := NewChoiceFn(s, "deploy.sh", []string{"co"})

	assert.Equal(t, []string{"main", "dev"}, adapter.RunChoiceFn("_choice_branch"))
	assert.Nil(t, adapter.RunChoiceFn("_choice_missing"))
}
