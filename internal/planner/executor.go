package planner

import "github.com/mbrt/vifi/internal/vifitree"

// Executor performs the primitive filesystem actions a Sequence replays.
// Implementations receive entry ids only to name a staging location; they
// do not need to interpret them otherwise.
type Executor interface {
	// CopyOut copies path to a fresh staging location for id, leaving the
	// original in place.
	CopyOut(id vifitree.Id, path string) error
	// MoveOut moves path to a fresh staging location for id.
	MoveOut(id vifitree.Id, path string) error
	// Remove deletes path outright; it is never needed again.
	Remove(path string) error
	// CopyIn copies id's staged content to path, leaving the staged copy
	// in place for a later CopyIn or MoveIn of the same id.
	CopyIn(id vifitree.Id, path string) error
	// MoveIn moves id's staged content to path, the last use of that
	// staging location.
	MoveIn(id vifitree.Id, path string) error
	// CreateDir creates an empty directory at path.
	CreateDir(path string) error
}
