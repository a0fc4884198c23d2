package model

import "fmt"

// ErrorKind enumerates the Model Builder's parse-time error taxonomy
// (spec §7.1).
type ErrorKind uint

const (
	ErrUnknownTag ErrorKind = iota
	ErrMalformed
	ErrDuplicateName
	ErrDuplicateShort
	ErrDuplicateAlias
	ErrMissingFunction
	ErrMissingParent
	ErrNestedCmdWithoutFunction
	ErrConflictingMeta
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownTag:
		return "unknown tag"
	case ErrMalformed:
		return "malformed directive"
	case ErrDuplicateName:
		return "duplicate name"
	case ErrDuplicateShort:
		return "duplicate short letter"
	case ErrDuplicateAlias:
		return "duplicate alias"
	case ErrMissingFunction:
		return "missing function"
	case ErrMissingParent:
		return "missing parent"
	case ErrNestedCmdWithoutFunction:
		return "nested @cmd without function"
	case ErrConflictingMeta:
		return "conflicting meta"
	default:
		return "unrecognized error"
	}
}

// Error is returned by Build for any defect that aborts model
// construction. It reports the line number and, when known, the tag;
// the text of the offending line is not included.
type Error struct {
	Tag     string
	Line    int
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Message)
	}

	return fmt.Sprintf("line %d: @%s: %s: %s", e.Line, e.Tag, e.Kind, e.Message)
}

func newError(tag string, line int, kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Tag:     tag,
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
