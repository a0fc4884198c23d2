package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arganaut/arganaut/complete"
	"github.com/arganaut/arganaut/internal/config"
	"github.com/arganaut/arganaut/model"
	"github.com/arganaut/arganaut/runner"
)

// newCompgenCmd builds the subcommand a shell's completion function
// calls on every TAB press: given the script and the line typed so far,
// it prints one formatted candidate per line (spec §4.5).
func newCompgenCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compgen <script> -- <line...>",
		Short: "Emit shell-completion candidates for a partial command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCompgen(flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.shell, "shell", "generic", "target shell's completion protocol")

	return cmd
}

func runCompgen(flags *rootFlags, args []string) error {
	script := args[0]
	line := strings.Join(args[1:], " ")

	contents := readScript(script)

	root, err := model.Build(contents)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := config.FromEnv()

	candRunner := &completionRunner{r: &runner.Exec{}, script: script}

	candidates := complete.Complete(root, line, candRunner)

	sh := complete.ParseShell(flags.shell)
	formatOpts := complete.FormatOptions{Description: cfg.CompgenDescription}

	var out strings.Builder
	for _, c := range candidates {
		out.WriteString(complete.Format(sh, c, formatOpts))
		out.WriteString("\n")
	}

	fmt.Print(out.String())

	return nil
}

// completionRunner adapts runner.Runner's batch Run to complete.Runner's
// single-name shape, mirroring runner.NewChoiceFn for the completion
// engine's own dynamic choice candidates.
type completionRunner struct {
	r      runner.Runner
	script string
}

func (c *completionRunner) RunChoiceFn(name string) []string {
	out := c.r.Run(c.script, []string{name}, nil)
	if len(out) == 0 {
		return nil
	}

	return out[0]
}
