// Package planner turns a computed vifitree.Tree into a sorted sequence of
// filesystem operations, and runs that sequence against an Executor.
package planner

import "github.com/mbrt/vifi/internal/vifitree"

// Type is the kind of one planned filesystem operation.
type Type uint8

// The enum order matters: it is part of the sort key in Sequence.Prepare,
// ensuring all outs at a given (pivot, level) sort before any ins.
const (
	CopyOut Type = iota
	MoveOut
	CopyIn
)

func (t Type) String() string {
	switch t {
	case CopyOut:
		return "CopyOut"
	case MoveOut:
		return "MoveOut"
	case CopyIn:
		return "CopyIn"
	default:
		return "Unknown"
	}
}

// Operation is one planned, immutable filesystem action.
type Operation struct {
	Type    Type
	EntryId vifitree.Id
	Path    string
	Level   uint32
	Pivot   uint32
	Copies  int
}

// Equal reports whether two operations hold the same values.
func (o Operation) Equal(other Operation) bool {
	return o.Type == other.Type && o.EntryId == other.EntryId && o.Path == other.Path &&
		o.Level == other.Level && o.Pivot == other.Pivot && o.Copies == other.Copies
}
