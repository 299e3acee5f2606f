package planner

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/mbrt/vifi/internal/vifitree"
)

// ErrAccounting is returned by Prepare when a CopyIn's balance would go
// negative: more ins were scheduled for an id than outs produced copies
// for. This indicates a planner bug, or a hand-edited, invalid sequence.
var ErrAccounting = errors.New("planner: in-copies outnumber out-copies")

// Sequence records planned operations and, once Prepare has sorted and
// validated them, can be printed, compared, or run against an Executor.
type Sequence struct {
	ops      []Operation
	maxEntry vifitree.Id
}

// NewSequence returns an empty operation sequence.
func NewSequence() *Sequence { return &Sequence{} }

// Empty reports whether the sequence holds no operations.
func (s *Sequence) Empty() bool { return len(s.ops) == 0 }

// Operations returns the sequence's operations in their current order.
func (s *Sequence) Operations() []Operation { return s.ops }

func (s *Sequence) setMaxEntryId(id vifitree.Id) {
	if id > s.maxEntry {
		s.maxEntry = id
	}
}

// AddOutOp records a file operation out to staging (CopyOut if keep is
// true, MoveOut otherwise).
func (s *Sequence) AddOutOp(entryId vifitree.Id, path string, keep bool, level, pivot uint32, copies int) {
	s.addOutOp(entryId, path, keep, level, pivot, copies)
}

func (s *Sequence) addOutOp(entryId vifitree.Id, path string, keep bool, level, pivot uint32, copies int) {
	t := MoveOut
	if keep {
		t = CopyOut
	}
	s.ops = append(s.ops, Operation{Type: t, EntryId: entryId, Path: path, Level: level, Pivot: pivot, Copies: copies})
	s.setMaxEntryId(entryId)
}

// AddInOp records a file operation in from staging (a CreateDir operation
// when create is true, indicated downstream by Copies == 0).
func (s *Sequence) AddInOp(entryId vifitree.Id, path string, create bool, level, pivot uint32) {
	s.addInOp(entryId, path, create, level, pivot)
}

func (s *Sequence) addInOp(entryId vifitree.Id, path string, create bool, level, pivot uint32) {
	copies := 1
	if create {
		copies = 0
	}
	s.ops = append(s.ops, Operation{Type: CopyIn, EntryId: entryId, Path: path, Level: level, Pivot: pivot, Copies: copies})
	s.setMaxEntryId(entryId)
}

// Prepare sorts the operations into a feasible execution order and checks
// the copy accounting. The sort is a strict weak ordering on:
//  1. Pivot, descending (deepest pivot first)
//  2. Level, ascending (shallower paths before children, within a layer)
//  3. Type, ascending (CopyOut < MoveOut < CopyIn: all outs before any ins)
//  4. EntryId, ascending (stable tie-break)
func (s *Sequence) Prepare() error {
	sort.SliceStable(s.ops, func(i, j int) bool {
		a, b := s.ops[i], s.ops[j]
		if a.Pivot != b.Pivot {
			return a.Pivot > b.Pivot
		}
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.EntryId < b.EntryId
	})

	balance := make(map[vifitree.Id]int)
	for _, op := range s.ops {
		switch op.Type {
		case CopyOut, MoveOut:
			balance[op.EntryId] += op.Copies
		case CopyIn:
			balance[op.EntryId] -= op.Copies
		}
		if balance[op.EntryId] < 0 {
			return errors.Wrapf(ErrAccounting, "entry %d at %q", op.EntryId, op.Path)
		}
	}
	return nil
}

// Equal reports whether two sequences have the same length and
// element-wise equal operations, in their current order.
func (s *Sequence) Equal(other *Sequence) bool {
	if len(s.ops) != len(other.ops) {
		return false
	}
	for i := range s.ops {
		if !s.ops[i].Equal(other.ops[i]) {
			return false
		}
	}
	return true
}

// temporary returns the staging file name for an entry id: its lowercase
// hex rendering, zero-padded to a width that encodes maxEntryId (2 hex
// digits per byte of the maximum id, minimum width 2).
func (s *Sequence) temporary(id vifitree.Id) string {
	return fmt.Sprintf("%0*x", hexWidth(s.maxEntry), uint64(id))
}

func hexWidth(maxID vifitree.Id) int {
	width := 2
	for v := uint64(maxID) >> 8; v > 0; v >>= 8 {
		width += 2
	}
	return width
}

// Print renders the sequence, one line per operation, for human
// inspection before execution. base is stripped from the front of each
// path if present.
func (s *Sequence) Print(w io.Writer, base string) {
	balance := make(map[vifitree.Id]int)
	for _, op := range s.ops {
		path := strings.TrimPrefix(op.Path, base)
		path = strings.TrimPrefix(path, "/")
		switch op.Type {
		case CopyOut:
			balance[op.EntryId] += op.Copies
			fmt.Fprintf(w, "%s <=== %s\n", s.temporary(op.EntryId), path)
		case MoveOut:
			balance[op.EntryId] += op.Copies
			if op.Copies > 0 {
				fmt.Fprintf(w, "%s <--- %s\n", s.temporary(op.EntryId), path)
			} else {
				fmt.Fprintf(w, "[x] <--- %s\n", path)
			}
		case CopyIn:
			balance[op.EntryId] -= op.Copies
			if op.Copies == 0 {
				fmt.Fprintf(w, "[*] ---> %s\n", path)
			} else if balance[op.EntryId] > 0 {
				fmt.Fprintf(w, "%s ===> %s\n", s.temporary(op.EntryId), path)
			} else {
				fmt.Fprintf(w, "%s ---> %s\n", s.temporary(op.EntryId), path)
			}
		}
	}
}

// Run replays the sequence, invoking Executor methods. The last CopyIn for
// any id is always a move that evacuates staging; preceding ones, when a
// positive balance remains, are copies.
func (s *Sequence) Run(exec Executor) error {
	balance := make(map[vifitree.Id]int)
	for _, op := range s.ops {
		switch op.Type {
		case CopyOut:
			balance[op.EntryId] += op.Copies
			if err := exec.CopyOut(op.EntryId, op.Path); err != nil {
				return errors.Wrapf(err, "copy out %q", op.Path)
			}
		case MoveOut:
			balance[op.EntryId] += op.Copies
			if op.Copies > 0 {
				if err := exec.MoveOut(op.EntryId, op.Path); err != nil {
					return errors.Wrapf(err, "move out %q", op.Path)
				}
			} else if err := exec.Remove(op.Path); err != nil {
				return errors.Wrapf(err, "remove %q", op.Path)
			}
		case CopyIn:
			balance[op.EntryId] -= op.Copies
			switch {
			case op.Copies == 0:
				if err := exec.CreateDir(op.Path); err != nil {
					return errors.Wrapf(err, "create dir %q", op.Path)
				}
			case balance[op.EntryId] > 0:
				if err := exec.CopyIn(op.EntryId, op.Path); err != nil {
					return errors.Wrapf(err, "copy in %q", op.Path)
				}
			default:
				if err := exec.MoveIn(op.EntryId, op.Path); err != nil {
					return errors.Wrapf(err, "move in %q", op.Path)
				}
			}
		}
	}
	return nil
}
