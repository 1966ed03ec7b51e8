package types

import "fmt"

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat          ErrKind = iota // malformed or truncated icon container
	ErrKindResourceSession                // cannot open, update or commit a resource session
	ErrKindRelaunch                       // cannot copy self or spawn a hop
	ErrKindCleanup                        // cannot delete the temporary copy
	ErrKindState                          // operation invalid for current state (e.g. ended session)
)

// String returns the name used in logs and CLI output.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "FormatError"
	case ErrKindResourceSession:
		return "ResourceSessionError"
	case ErrKindRelaunch:
		return "RelaunchError"
	case ErrKindCleanup:
		return "CleanupError"
	case ErrKindState:
		return "StateError"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with optional path context and underlying cause.
type Error struct {
	Kind ErrKind
	Op   string // operation that failed, e.g. "parse", "commit"
	Path string // file the operation targeted, if any
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := e.Kind.String() + ": "
	if e.Op != "" {
		s += e.Op + " "
	}
	if e.Path != "" {
		s += e.Path + ": "
	}
	s += e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind with no message, so sentinels
// below work with errors.Is regardless of context fields.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Op == "" && t.Path == ""
}

// Kind sentinels for errors.Is.
var (
	ErrFormat          = &Error{Kind: ErrKindFormat}
	ErrResourceSession = &Error{Kind: ErrKindResourceSession}
	ErrRelaunch        = &Error{Kind: ErrKindRelaunch}
	ErrCleanup         = &Error{Kind: ErrKindCleanup}
	ErrState           = &Error{Kind: ErrKindState}
)

// New builds a typed error.
func New(kind ErrKind, op, path, msg string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Msg: msg, Err: cause}
}

// IsKind reports whether any error in err's tree is a *Error of kind.
// Joined errors (errors.Join) are searched branch by branch.
func IsKind(err error, kind ErrKind) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *Error:
		if e == nil {
			return false
		}
		if e.Kind == kind {
			return true
		}
		return IsKind(e.Err, kind)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if IsKind(inner, kind) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return IsKind(e.Unwrap(), kind)
	default:
		return false
	}
}
