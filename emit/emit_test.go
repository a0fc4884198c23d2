package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arganaut/arganaut/model"
)

func TestEmitSingleAndMultiple(t *testing.T) {
	out := Emit([]model.BoundValue{
		model.NewSingle("name", "o'brien"),
		model.NewMultiple("tags", []string{"a", "b"}),
	})

	assert.Equal(t, "argc_name='o'\\''brien'\nargc_tags=('a' 'b')\n", out)
}

func TestEmitEnvAndDispatchWithPositionals(t *testing.T) {
	out := Emit([]model.BoundValue{
		model.NewEnv("API_KEY", "secret"),
		model.NewPositionalSingle("target", "prod"),
		model.NewCommandFn("deploy"),
	})

	assert.Equal(t, "export API_KEY='secret'\nargc_target='prod'\ndeploy 'prod'\n", out)
}

func TestEmitDispatchWithoutPositionals(t *testing.T) {
	out := Emit([]model.BoundValue{
		model.NewCommandFn("build"),
	})

	assert.Equal(t, "build\n", out)
}

func TestEmitMap(t *testing.T) {
	m := model.NewOrderedMap()
	m.Set("k1", []string{"v1", "v2"})

	out := Emit([]model.BoundValue{model.NewMap("env", m)})

	assert.Equal(t, "declare -A argc_env\nargc_env[k1]=('v1' 'v2')\n", out)
}

func TestEmitHook(t *testing.T) {
	out := Emit([]model.BoundValue{model.NewHook("_before", "_after")})

	assert.Equal(t, "_before\ntrap '_after' EXIT\n", out)
}

func TestEmitError(t *testing.T) {
	out := Emit([]model.BoundValue{model.NewError("bad input", 2)})

	assert.Equal(t, "command cat >&2 <<'EOF'\nbad input\nEOF\nexit 2\n", out)
}
