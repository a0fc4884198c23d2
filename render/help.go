package render

import (
	"fmt"
	"strings"

	"github.com/arganaut/arganaut/model"
)

// Options configures one Help/Usage render call.
type Options struct {
	Theme Theme

	// Width is the terminal width describe text wraps to, or 0 to
	// disable wrapping (spec §4.3).
	Width int
}

// Help renders the full human-readable help page for cmd: NAME (if any of
// version/author/describe are present), USAGE, ARGS, OPTIONS, COMMANDS,
// ENVIRONMENTS, in that order (spec §4.3).
func Help(cmd *model.Command, opts Options) string {
	var b strings.Builder

	renderName(&b, cmd, opts)

	b.WriteString(opts.Theme.Header.Render("USAGE") + "\n")
	b.WriteString("  " + Usage(cmd, opts.Theme) + "\n")

	if len(cmd.PositionalParams) > 0 {
		b.WriteString("\n" + opts.Theme.Header.Render("ARGS") + "\n")
		renderPositionals(&b, cmd.PositionalParams, opts)
	}

	if len(cmd.FlagOrOptionParams) > 0 {
		b.WriteString("\n" + opts.Theme.Header.Render("OPTIONS") + "\n")
		renderFlagOrOptions(&b, cmd.FlagOrOptionParams, opts)
	}

	if len(cmd.Subcommands) > 0 {
		b.WriteString("\n" + opts.Theme.Header.Render("COMMANDS") + "\n")
		renderSubcommands(&b, cmd.Subcommands, opts)
	}

	if len(cmd.EnvParams) > 0 {
		b.WriteString("\n" + opts.Theme.Header.Render("ENVIRONMENTS") + "\n")
		renderEnvs(&b, cmd.EnvParams, opts)
	}

	return b.String()
}

func renderName(b *strings.Builder, cmd *model.Command, opts Options) {
	version := Version(cmd)
	if version == "" && cmd.Author == "" && cmd.Describe == "" {
		return
	}

	b.WriteString(opts.Theme.Header.Render("NAME") + "\n")

	name := cmd.Name
	if name == "" {
		name = "main"
	}

	line := "  " + name
	if version != "" {
		line += " " + version
	}

	b.WriteString(line + "\n")

	if cmd.Describe != "" {
		b.WriteString("  " + wrapText(cmd.Describe, opts.Width-2) + "\n")
	}

	if cmd.Author != "" {
		b.WriteString("  " + cmd.Author + "\n")
	}

	b.WriteString("\n")
}

// labelItem is one help-list row before column alignment is applied.
type labelItem struct {
	label    string
	describe string
}

func renderItems(b *strings.Builder, items []labelItem, opts Options) {
	maxLabel := 0
	for _, it := range items {
		if n := len([]rune(it.label)); n > maxLabel {
			maxLabel = n
		}
	}

	descCol := maxLabel + 2
	descWidth := 0

	if opts.Width > 0 {
		descWidth = opts.Width - descCol - 2
		if descWidth < 10 {
			descWidth = 10
		}
	}

	anyWrapped := false
	rendered := make([][]string, len(items))

	for i, it := range items {
		wrapped := wrapText(it.describe, descWidth)
		lines := indentContinuation(wrapped, descCol+2)
		rendered[i] = lines

		if len(lines) > 1 {
			anyWrapped = true
		}
	}

	for i, it := range items {
		pad := strings.Repeat(" ", maxLabel-len([]rune(it.label))+2)
		label := opts.Theme.Flag.Render(it.label)

		lines := rendered[i]
		first := ""
		if len(lines) > 0 {
			first = lines[0]
		}

		b.WriteString("  " + label + pad + opts.Theme.Description.Render(first) + "\n")

		for _, cont := range lines[1:] {
			b.WriteString(cont + "\n")
		}

		if anyWrapped {
			b.WriteString("\n")
		}
	}
}

func renderPositionals(b *strings.Builder, params []*model.Positional, opts Options) {
	items := make([]labelItem, len(params))

	for i, p := range params {
		items[i] = labelItem{label: positionalNotation(p), describe: p.Describe}
	}

	renderItems(b, items, opts)
}

func renderFlagOrOptions(b *strings.Builder, params []*model.FlagOrOption, opts Options) {
	items := make([]labelItem, len(params))

	for i, fo := range params {
		items[i] = labelItem{label: flagLabel(fo), describe: fo.Describe}
	}

	renderItems(b, items, opts)
}

func flagLabel(fo *model.FlagOrOption) string {
	var label string

	if fo.Short != 0 {
		label = "-" + string(fo.Short) + ", " + fo.LongPrefix + fo.Name
	} else {
		label = fo.LongPrefix + fo.Name
	}

	if !fo.IsFlag {
		label += " " + valueNameLabel(fo)
	}

	return label
}

func valueNameLabel(fo *model.FlagOrOption) string {
	if len(fo.ValueNames) == 0 {
		return "<" + strings.ToUpper(fo.Name) + ">"
	}

	var parts []string
	for _, n := range fo.ValueNames {
		parts = append(parts, "<"+n.Name+n.Modifier.String()+">")
	}

	return strings.Join(parts, " ")
}

func renderSubcommands(b *strings.Builder, subs []*model.Command, opts Options) {
	items := make([]labelItem, len(subs))

	for i, sub := range subs {
		label := sub.Name
		if len(sub.Aliases) > 0 {
			label += " (" + strings.Join(sub.Aliases, ", ") + ")"
		}

		items[i] = labelItem{label: label, describe: sub.Describe}
	}

	renderItems(b, items, opts)
}

func renderEnvs(b *strings.Builder, envs []*model.Env, opts Options) {
	items := make([]labelItem, len(envs))

	for i, e := range envs {
		items[i] = labelItem{label: e.Name, describe: e.Describe}
	}

	renderItems(b, items, opts)
}

// HelpFlagLabel renders the derived help flag's label, honoring the
// short-letter-drop policy (spec §4.3's "Help-flag policy"): `-h` is
// included only if the command actually reserved it.
func HelpFlagLabel(cmd *model.Command) string {
	if cmd.HelpFlag == nil {
		return ""
	}

	if cmd.HelpFlag.Short != 0 {
		return "-h, --help, -help"
	}

	return "--help, -help"
}

// VersionFlagLabel is the version-flag analog of HelpFlagLabel.
func VersionFlagLabel(cmd *model.Command) string {
	if cmd.VersionFlag == nil {
		return ""
	}

	if cmd.VersionFlag.Short != 0 {
		return "-V, --version"
	}

	return "--version"
}

// ErrorPage renders a match-time validation error per spec §7.2: the
// message, a blank line, the usage line, then the "try --help" hint.
func ErrorPage(cmd *model.Command, message string, theme Theme) string {
	return fmt.Sprintf("error: %s\n\n%s\n\nFor more information, try '--help'.\n", message, Usage(cmd, theme))
}
