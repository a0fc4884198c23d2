package main

import (
	"github.com/rsteube/carapace"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arganaut/arganaut/render"
)

// colorMode backs the root's persistent --color flag with a pflag.Value
// rather than a plain string, so an invalid choice is
// rejected by cobra itself instead of surfacing later as a confusing
// downstream failure.
type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "always"
	colorOff  colorMode = "never"
)

func (c *colorMode) String() string { return string(*c) }
func (c *colorMode) Type() string   { return "auto|always|never" }
func (c *colorMode) Set(s string) error {
	switch colorMode(s) {
	case colorAuto, colorOn, colorOff:
		*c = colorMode(s)
		return nil
	default:
		return errInvalidColorMode(s)
	}
}

func errInvalidColorMode(s string) error {
	return &flagChoiceError{flag: "--color", got: s, allowed: []string{"auto", "always", "never"}}
}

type flagChoiceError struct {
	flag    string
	got     string
	allowed []string
}

func (e *flagChoiceError) Error() string {
	msg := e.flag + ": " + e.got + " is not one of"
	for i, a := range e.allowed {
		if i > 0 {
			msg += ","
		}
		msg += " " + a
	}
	return msg
}

// rootFlags holds the persistent state shared by every subcommand.
type rootFlags struct {
	color colorMode
	width int
	shell string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{color: colorAuto}

	root := &cobra.Command{
		Use:           "arganaut <script> [--] [args...]",
		Short:         "Turn an annotated shell script into a command-line parser",
		Long:          "arganaut reads the @cmd/@flag/@option/@arg/@env directives embedded\nin a shell script's comments, matches argv against the resulting\ncommand tree, and emits shell code that binds variables and\ndispatches to the right function.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().VarP(&flags.color, "color", "", "when to colorize rendered help/usage text")
	root.PersistentFlags().IntVar(&flags.width, "width", 0, "wrap width for help/usage text (0 = use TERM_WIDTH; no wrapping when that is unset)")

	root.AddCommand(newEvalCmd(flags))
	root.AddCommand(newCompgenCmd(flags))

	// The CLI's own flags/subcommands get completion for free; the
	// target script's directive-driven completion is a separate concern
	// served entirely by the compgen subcommand and the complete package.
	carapace.Gen(root).PositionalCompletion(carapace.ActionFiles())

	return root
}

func themeFor(flags *rootFlags) render.Theme {
	switch flags.color {
	case colorOn:
		return render.ColorTheme()
	case colorOff:
		return render.DefaultTheme()
	default:
		return render.ThemeFromEnv()
	}
}

var _ pflag.Value = (*colorMode)(nil)
