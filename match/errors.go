package match

import (
	"fmt"

	"github.com/arganaut/arganaut/model"
)

// ErrorKind enumerates the match-time taxonomy of spec §7.2. The first
// three members are display directives rather than failures; ExitCode
// reflects that.
type ErrorKind int

const (
	ErrDisplayHelp ErrorKind = iota
	ErrDisplaySubcommandHelp
	ErrDisplayVersion
	ErrInvalidSubcommand
	ErrUnknownArgument
	ErrMissingRequiredArgument
	ErrNotMultiple
	ErrInvalidValue
	ErrMismatchValues
	ErrNoMoreValue
)

func (k ErrorKind) String() string {
	switch k {
	case ErrDisplayHelp:
		return "display help"
	case ErrDisplaySubcommandHelp:
		return "display subcommand help"
	case ErrDisplayVersion:
		return "display version"
	case ErrInvalidSubcommand:
		return "invalid subcommand"
	case ErrUnknownArgument:
		return "unknown argument"
	case ErrMissingRequiredArgument:
		return "missing required argument"
	case ErrNotMultiple:
		return "argument used multiple times"
	case ErrInvalidValue:
		return "invalid value"
	case ErrMismatchValues:
		return "mismatched value count"
	case ErrNoMoreValue:
		return "no more values"
	default:
		return "unrecognized error"
	}
}

// ExitCode is 0 for help/version display, 1 for every real validation
// failure, per spec §6's "Error exit codes".
func (k ErrorKind) ExitCode() int {
	switch k {
	case ErrDisplayHelp, ErrDisplaySubcommandHelp, ErrDisplayVersion:
		return 0
	default:
		return 1
	}
}

// Error is the outcome of a Match call that did not produce a plain
// BoundValue list: either a help/version display request or a
// validation failure. Command is the tree level active when it
// occurred (the target for a help/version render).
type Error struct {
	Kind    ErrorKind
	Command *model.Command
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, cmd *model.Command, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Command: cmd, Message: fmt.Sprintf(format, args...)}
}
