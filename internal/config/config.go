// Package config centralizes the handful of environment variables the
// matcher, renderer and completion engine read (spec §6), the way the
// teacher centralizes parser Options into one struct built once and
// threaded by value. This is the one package permitted to call
// os.Getenv/os.LookupEnv for these concerns.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is a snapshot of the ambient environment taken once per
// process invocation.
type Config struct {
	// NoColor disables themed output when NO_COLOR is set, per
	// https://no-color.org and spec §6.
	NoColor bool

	// Width is TERM_WIDTH, or 0 if unset/invalid, disabling wrap.
	Width int

	// CompgenDescription controls whether completion candidates carry a
	// description suffix: true exactly when ARGC_COMPGEN_DESCRIPTION is
	// "true", the same for every shell (there is no Bash-specific default).
	CompgenDescription bool

	// DebugFile, when non-empty, is a path diagnostic output is
	// appended to (ARGC_DEBUG_FILE); empty disables all diagnostics.
	DebugFile string
}

// FromEnv reads the process environment once.
func FromEnv() Config {
	_, noColor := os.LookupEnv("NO_COLOR")

	width := 0
	if raw, ok := os.LookupEnv("TERM_WIDTH"); ok {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			width = n
		}
	}

	return Config{
		NoColor:            noColor,
		Width:              width,
		CompgenDescription: os.Getenv("ARGC_COMPGEN_DESCRIPTION") == "true",
		DebugFile:          os.Getenv("ARGC_DEBUG_FILE"),
	}
}

// Debugf appends a formatted diagnostic line to c.DebugFile. A no-op
// when DebugFile is empty, mirroring the teacher's env-gated
// Completions.Debug.
func (c Config) Debugf(format string, args ...interface{}) {
	if c.DebugFile == "" {
		return
	}

	f, err := os.OpenFile(c.DebugFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.WriteString(fmt.Sprintf(format, args...))
}
