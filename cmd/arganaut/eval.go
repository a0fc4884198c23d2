package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arganaut/arganaut/emit"
	"github.com/arganaut/arganaut/internal/config"
	"github.com/arganaut/arganaut/match"
	"github.com/arganaut/arganaut/model"
	"github.com/arganaut/arganaut/render"
	"github.com/arganaut/arganaut/runner"
)

// newEvalCmd builds the subcommand that actually parses a script's
// directives and matches it against the remaining argv, printing the
// shell fragment (or help/usage/error page) a calling shell `eval`s.
func newEvalCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "eval <script> [--] [args...]",
		Short:              "Match argv against a script's directives and emit shell code",
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runEval(flags, args)
		},
	}

	return cmd
}

func runEval(flags *rootFlags, args []string) error {
	script := args[0]
	argv := args[1:]

	contents := readScript(script)

	root, err := model.Build(contents)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := &runner.Exec{}
	opts := match.Options{
		Runner: runner.NewChoiceFn(r, script, argv),
	}

	// Match treats argv[0] as the program name and ignores it.
	result, matchErr := match.Match(root, append([]string{script}, argv...), opts)
	if matchErr != nil {
		return handleMatchError(flags, matchErr)
	}

	fmt.Print(emit.Emit(result.Values))

	return nil
}

func readScript(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return string(data)
}

func handleMatchError(flags *rootFlags, err *match.Error) error {
	theme := themeFor(flags)
	width := flags.width
	if width == 0 {
		width = config.FromEnv().Width
	}

	opts := render.Options{Theme: theme, Width: width}

	switch err.Kind {
	case match.ErrDisplayHelp, match.ErrDisplaySubcommandHelp:
		fmt.Print(render.Help(err.Command, opts))
	case match.ErrDisplayVersion:
		fmt.Println(render.Version(err.Command))
	default:
		fmt.Fprint(os.Stderr, render.ErrorPage(err.Command, err.Message, theme))
	}

	os.Exit(err.Kind.ExitCode())

	return nil
}
