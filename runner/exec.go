package runner

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Exec is the production Runner: it spawns one subprocess per requested
// function name, in parallel, each invoking the user's shell against
// script with a `___internal___ <name> <argv...>` trailer the script's
// own runtime dispatch convention recognizes (spec §4.5's placeholder
// expansion protocol; the dispatch convention itself is a shell-side
// runtime helper, out of this module's scope per spec §1).
type Exec struct {
	// Shell is the interpreter used to run the script, e.g. "bash".
	// Defaults to "bash" if empty.
	Shell string
}

// pathSep is ARGC_PATH_SEP: the separator argc uses when it must emit a
// list of paths to the shell (e.g. PATH-like values), not os.PathListSeparator
// under cross-compilation, so it is fixed here rather than derived.
const pathSep = ":"

func (e *Exec) shell() string {
	if e.Shell != "" {
		return e.Shell
	}

	return "bash"
}

// Run launches every name's subprocess before waiting on any of them
// (spec §5's "all spawns must be launched before any wait"), then
// collects results in input order. A failed spawn or non-zero exit
// resolves to a nil slice for that name rather than aborting the batch.
func (e *Exec) Run(script string, names []string, argv []string) [][]string {
	type pending struct {
		cmd *exec.Cmd
		buf *bytes.Buffer
	}

	running := make([]pending, len(names))
	selfDir := filepath.Dir(selfExecutable())

	for i, name := range names {
		args := append([]string{script, "___internal___", name}, argv...)

		cmd := exec.Command(e.shell(), args...)
		cmd.Env = append(os.Environ(),
			"ARGC_OS="+runtime.GOOS,
			"ARGC_PATH_SEP="+pathSep,
			"PATH="+selfDir+pathSep+os.Getenv("PATH"),
		)

		buf := &bytes.Buffer{}
		cmd.Stdout = buf

		running[i] = pending{cmd: cmd, buf: buf}

		if err := cmd.Start(); err != nil {
			running[i].cmd = nil
		}
	}

	out := make([][]string, len(names))

	for i, p := range running {
		if p.cmd == nil {
			continue
		}

		if err := p.cmd.Wait(); err != nil {
			continue
		}

		out[i] = splitLines(p.buf.String())
	}

	return out
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}

func selfExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	return exe
}
