package planner

import "github.com/mbrt/vifi/internal/vifitree"

// Generate walks every non-root node of tree, which must already have had
// EndTarget called on it, and emits the operations that reconcile the
// filesystem with the target tree into a fresh Sequence.
//
// Two passes mirror the reference algorithm: the first emits IN operations
// (materializing content at a destination) while counting how many copies
// of each id will be needed; the second emits OUT operations (vacating a
// source to staging, or removing it outright), sized against that count.
func Generate(tree *vifitree.Tree) *Sequence {
	seq := NewSequence()
	seq.setMaxEntryId(tree.MaxEntryId())

	copies := make(map[vifitree.Id]int)
	for _, node := range tree.Nodes() {
		for p := node.Level(); p >= 1; p-- {
			m := node.MoveAt(p)
			if id, ok := m.To.IsEntry(); ok && m.To != m.From {
				seq.addInOp(id, node.Path(), false, node.Level(), p)
				copies[id]++
			} else if m.To.IsCreateDir() && m.To != m.From {
				seq.addInOp(0, node.Path(), true, node.Level(), p)
			}
		}
	}

	for _, node := range tree.Nodes() {
		for p := node.Level(); p >= 1; p-- {
			m := node.MoveAt(p)
			if p == node.Level() {
				if id, ok := m.From.IsEntry(); ok && (m.From != m.To || copies[id] > 0) {
					keep := m.From == m.To
					seq.addOutOp(id, node.Path(), keep, node.Level(), p, copies[id])
					continue
				}
			}
			if !m.From.IsNone() && m.From != m.To {
				id, ok := m.From.IsEntry()
				if !ok {
					// m.From is CreateDir here: an intermediate directory
					// whose occupant changed away from "to be created" at
					// a shallower layer without ever landing at its own
					// pivot on this path. Treat it as id 0, matching the
					// reference implementation's placeholder.
					id = vifitree.RootID
				}
				seq.addOutOp(id, node.Path(), false, node.Level(), p, 0)
			}
		}
	}

	return seq
}
