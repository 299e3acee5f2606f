package vifitree

// computePivots assigns each node the shallowest execution layer at which
// its content must be physically moved, and has descendants inherit any
// smaller pivot from their ancestors.
func (t *Tree) computePivots() {
	for _, node := range t.Nodes() {
		id, hasTarget := node.target.IsEntry()
		originalID, hasEntry := node.entry.IsEntry()
		switch {
		case hasTarget && (!hasEntry || originalID != id):
			node.pivot = pivotBetween(node, t.NodeByOriginalId(id))
			if parent := node.Dir(); node.pivot < node.level && parent.pivot < node.pivot {
				// Inherit the smaller pivot from the parent directory: if
				// a parent moves at level p, descendants must be
				// reckoned with at p or shallower, or they'd move with
				// the parent and confuse per-level bookkeeping.
				node.pivot = parent.pivot
			}
		case !hasTarget:
			// Deletion: the node's own level is where it disappears.
			node.pivot = node.level
		}
	}
}

// pivotBetween finds the level at which the paths of nodeA and nodeB
// diverge: the deepest common-ancestor depth of their full paths. It walks
// both paths from their deepest end, holding the shallower side fixed
// while the deeper side ascends until depths match, then ascends both
// together, taking the minimum divergence level observed anywhere along
// the climb.
func pivotBetween(nodeA, nodeB *Node) uint32 {
	if nodeA == nodeB {
		return MaxLevel
	}
	nextA, nextB := nodeA.Dir(), nodeB.Dir()
	var result uint32
	switch {
	case nodeA.level > nodeB.level:
		nextB = nodeB
		result = nodeB.level
	case nodeA.level < nodeB.level:
		nextA = nodeA
		result = nodeA.level
	default:
		if nodeA.name != nodeB.name {
			result = nodeA.level
		} else {
			result = MaxLevel
		}
	}
	if nextA != nodeA || nextB != nodeB {
		if up := pivotBetween(nextA, nextB); up < result {
			result = up
		}
	}
	return result
}
