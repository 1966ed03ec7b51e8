package relaunch

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMarkerPrefix starts the first argv field of every hop.
const DefaultMarkerPrefix = "--icopatch:"

// Operation names a relaunch group or the step a hop performs.
type Operation int

const (
	OpNone Operation = iota
	OpSetIcon
	OpAddIcon
	OpRemoveIcon
	OpDelete
)

var opNames = [...]string{
	OpNone:       "",
	OpSetIcon:    "SetIcon",
	OpAddIcon:    "AddIcon",
	OpRemoveIcon: "RemoveIcon",
	OpDelete:     "Delete",
}

func (op Operation) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("Operation(%d)", int(op))
	}
	return opNames[op]
}

// IsGroup reports whether op can appear after the marker prefix.
func (op Operation) IsGroup() bool {
	return op == OpSetIcon || op == OpAddIcon || op == OpRemoveIcon
}

// ParseOperation maps a token field to an Operation. Matching is exact.
func ParseOperation(s string) (Operation, bool) {
	for op, name := range opNames {
		if name != "" && name == s {
			return Operation(op), true
		}
	}
	return OpNone, false
}

// Token is the argv payload of one hop. Op is OpNone for a bare marker,
// which asks the process to spawn a worker.
type Token struct {
	Group Operation
	Op    Operation
	Path  string
}

var (
	errNoMarker    = errors.New("relaunch: no marker")
	errBadGroup    = errors.New("relaunch: unknown operation group")
	errMissingPath = errors.New("relaunch: missing path")
	errBadOp       = errors.New("relaunch: operation does not match group")
)

// Args encodes t as argv fields.
func (t Token) Args(prefix string) []string {
	args := []string{prefix + t.Group.String()}
	if t.Op == OpNone {
		return args
	}
	return append(args, t.Op.String(), t.Path)
}

// HasMarker reports whether args start with a relaunch marker.
func HasMarker(prefix string, args []string) bool {
	return len(args) > 0 && strings.HasPrefix(args[0], prefix)
}

// Parse decodes argv fields (without the program name). Fields after the
// operation are joined with single spaces, since a path with spaces may
// arrive split.
func Parse(prefix string, args []string) (Token, error) {
	if !HasMarker(prefix, args) {
		return Token{}, errNoMarker
	}
	group, ok := ParseOperation(strings.TrimPrefix(args[0], prefix))
	if !ok || !group.IsGroup() {
		return Token{}, fmt.Errorf("%w: %q", errBadGroup, args[0])
	}
	if len(args) == 1 {
		return Token{Group: group}, nil
	}

	op, ok := ParseOperation(args[1])
	if !ok || (op != group && op != OpDelete) {
		return Token{}, fmt.Errorf("%w: %s %q", errBadOp, group, args[1])
	}
	path := strings.Join(args[2:], " ")
	if strings.TrimSpace(path) == "" {
		return Token{}, fmt.Errorf("%w: %s %s", errMissingPath, group, op)
	}
	return Token{Group: group, Op: op, Path: path}, nil
}
