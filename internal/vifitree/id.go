// Package vifitree implements the combined original+target file tree: the
// data structure that tracks, for every path that exists in either the
// original or the edited manifest, which entry occupies it and at which
// execution layer that occupancy changes.
//
// See FileTree.hpp/.cpp in the reference implementation for the algorithm
// this package ports: a node per path, a pivot level marking where a node's
// destination first diverges from its source, and a vector of per-layer
// moves that the planner walks to emit operations.
package vifitree

import "fmt"

// Id identifies a file or directory, stable across the original and target
// trees. Id assignment is dense over the original tree: ids 0..maxID are
// each used exactly once.
type Id uint64

// RootID is the reserved id of the base directory.
const RootID Id = 0

// MaxLevel marks "no divergence observed" -- the default pivot for a node
// whose target entry equals its original entry.
const MaxLevel = ^uint32(0)

// Kind tags what, if anything, occupies a path slot.
type Kind uint8

const (
	// KindNone means the slot is empty: no entry lives here.
	KindNone Kind = iota
	// KindEntry means a real, numbered entry lives here.
	KindEntry
	// KindCreateDir means an empty directory must be materialized here.
	KindCreateDir
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEntry:
		return "entry"
	case KindCreateDir:
		return "create-dir"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Slot is a tagged variant standing in for the three-valued "who lives
// here" choice the reference implementation expressed with reserved
// integers (NONE_ID, CREATE_DIR). Using a tagged struct instead removes the
// MAX_ID+1/+2 range hacks: neither sentinel ever occupies a slot in an
// id-indexed table, and the zero value (KindNone) is the empty slot.
type Slot struct {
	Kind Kind
	ID   Id // meaningful only when Kind == KindEntry
}

// None is the empty slot: no entry.
func None() Slot { return Slot{Kind: KindNone} }

// CreateDir is the slot standing for "materialize an empty directory here".
func CreateDir() Slot { return Slot{Kind: KindCreateDir} }

// EntrySlot wraps a real entry id.
func EntrySlot(id Id) Slot { return Slot{Kind: KindEntry, ID: id} }

// IsNone reports whether the slot is empty.
func (s Slot) IsNone() bool { return s.Kind == KindNone }

// IsCreateDir reports whether the slot requests directory creation.
func (s Slot) IsCreateDir() bool { return s.Kind == KindCreateDir }

// IsEntry reports whether the slot holds a real entry id, and returns it.
func (s Slot) IsEntry() (Id, bool) { return s.ID, s.Kind == KindEntry }

func (s Slot) String() string {
	switch s.Kind {
	case KindNone:
		return "none"
	case KindCreateDir:
		return "create-dir"
	case KindEntry:
		return fmt.Sprintf("entry(%d)", s.ID)
	default:
		return "invalid"
	}
}
