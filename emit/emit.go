// Package emit serializes match.Result BoundValues into the stable shell
// fragment described in spec §6's "Emission format": variable
// assignments, environment exports, hook/tool/dotenv bindings, and a
// terminal dispatch line.
package emit

import (
	"fmt"
	"strings"

	"github.com/arganaut/arganaut/model"
)

// Emit renders values into shell source text, one statement per line, in
// the same order they were produced by the matcher (spec §4.4's
// "Emission order").
func Emit(values []model.BoundValue) string {
	var b strings.Builder

	var positionalArgs []string

	for _, v := range values {
		switch v.Kind {
		case model.BoundPositionalSingle:
			positionalArgs = append(positionalArgs, v.Value)
		case model.BoundPositionalMultiple, model.BoundExtraPositionalMultiple:
			positionalArgs = append(positionalArgs, v.Values...)
		}
	}

	for _, v := range values {
		emitOne(&b, v, positionalArgs)
	}

	return b.String()
}

func emitOne(b *strings.Builder, v model.BoundValue, positionalArgs []string) {
	switch v.Kind {
	case model.BoundSingle:
		fmt.Fprintf(b, "argc_%s=%s\n", v.Name, quote(v.Value))

	case model.BoundSingleFn:
		fmt.Fprintf(b, "argc_%s=$(%s)\n", v.Name, v.Value)

	case model.BoundMultiple, model.BoundPositionalMultiple, model.BoundExtraPositionalMultiple:
		fmt.Fprintf(b, "argc_%s=(%s)\n", v.Name, quoteJoin(v.Values))

	case model.BoundMap:
		emitMap(b, v)

	case model.BoundPositionalSingle:
		fmt.Fprintf(b, "argc_%s=%s\n", v.Name, quote(v.Value))

	case model.BoundEnv:
		fmt.Fprintf(b, "export %s=%s\n", v.Name, quote(v.Value))

	case model.BoundEnvFn:
		fmt.Fprintf(b, "export %s=$(%s)\n", v.Name, v.Value)

	case model.BoundHook:
		emitHook(b, v)

	case model.BoundDotenv:
		fmt.Fprintf(b, "_argc_dotenv=%s\n", quote(v.Value))

	case model.BoundRequireTools:
		fmt.Fprintf(b, "_argc_require_tools=(%s)\n", quoteJoin(v.Values))

	case model.BoundCommandFn, model.BoundParamFn:
		emitDispatch(b, v, positionalArgs)

	case model.BoundError:
		emitError(b, v)
	}
}

func emitMap(b *strings.Builder, v model.BoundValue) {
	fmt.Fprintf(b, "declare -A argc_%s\n", v.Name)

	if v.Map == nil {
		return
	}

	for _, k := range v.Map.Keys() {
		fmt.Fprintf(b, "argc_%s[%s]=(%s)\n", v.Name, quote(k), quoteJoin(v.Map.Get(k)))
	}
}

func emitHook(b *strings.Builder, v model.BoundValue) {
	if v.Before != "" {
		fmt.Fprintf(b, "%s\n", v.Before)
	}

	if v.After != "" {
		fmt.Fprintf(b, "trap '%s' EXIT\n", v.After)
	}
}

func emitDispatch(b *strings.Builder, v model.BoundValue, positionalArgs []string) {
	if len(positionalArgs) == 0 {
		fmt.Fprintf(b, "%s\n", v.Name)

		return
	}

	fmt.Fprintf(b, "%s %s\n", v.Name, quoteJoin(positionalArgs))
}

func emitError(b *strings.Builder, v model.BoundValue) {
	fmt.Fprintf(b, "command cat >&2 <<'EOF'\n%s\nEOF\nexit %d\n", v.Value, v.Code)
}

func quoteJoin(vals []string) string {
	quoted := make([]string, len(vals))
	for i, v := range vals {
		quoted[i] = quote(v)
	}

	return strings.Join(quoted, " ")
}
