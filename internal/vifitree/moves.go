package vifitree

// computeMoves fills in each node's per-layer {from, to} moves, the
// schedule the planner walks to emit operations. Layers run from the
// node's own level down to 1; deeper layers execute first.
func (t *Tree) computeMoves() {
	for _, node := range t.Nodes() {
		node.moves = make([]Move, node.level)
	}

	// Request intermediate target directories: for every node, any
	// ancestor directory at or below the node's pivot must exist as a
	// directory by that execution layer, even if otherwise untouched.
	for _, node := range t.Nodes() {
		for parent := node.Dir(); parent != nil && !parent.isRoot() && parent.level >= node.pivot; parent = parent.Dir() {
			m := parent.MoveAt(node.pivot)
			m.To = CreateDir()
			parent.setMove(node.pivot, m)
		}
	}

	for _, node := range t.Nodes() {
		previous := node.entry
		for p := node.level; p >= 1; p-- {
			dir := node.Dir()
			if p <= dir.level {
				if dm := dir.MoveAt(p); dm.From != dm.To {
					// The parent directory's occupant changes at this
					// layer: this node's ambient identity changes too,
					// unless the new occupant had a like-named child in
					// the original tree that was carried along with it.
					previous = None()
					if parentID, ok := dm.To.IsEntry(); ok {
						if former, found := t.originalChild(parentID, node.name); found {
							previous = former.MoveAt(former.level).To
						}
					}
				}
			}

			next := previous
			switch {
			case p == node.pivot:
				// This is the layer where the node itself lands at its
				// destination.
				next = node.target
			case p == node.level && node.entry != node.target:
				// The deepest layer: the original occupant is moved out.
				next = None()
			}
			if next.IsNone() && node.MoveAt(p).To.IsCreateDir() {
				next = CreateDir()
			}

			node.setMove(p, Move{From: previous, To: next})
			previous = next
		}
	}
}
