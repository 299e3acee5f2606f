package vifitree

// nodeRef indexes into a Tree's node arena. noDir is the sentinel used as
// the root's parent reference, terminating upward traversal explicitly
// instead of the reference implementation's self-referential root pointer.
type nodeRef int32

const noDir nodeRef = -1

// Move records the entry occupying a path at one execution layer: what was
// there entering the layer (From) and what is there leaving it (To).
type Move struct {
	From Slot
	To   Slot
}

// Node is one path in the combined original+target tree.
type Node struct {
	tree *Tree
	self nodeRef
	dir  nodeRef // parent; noDir only for the root

	entry  Slot // id this path had in the original tree, or None if new
	target Slot // id that should occupy this path in the target tree, or None if removed
	name   string
	level  uint32
	pivot  uint32 // level at or below which this node must be physically moved

	// moves holds one entry per level 1..level, indexed shallow-to-deep by
	// MoveAt(p); moves[0] is level 1 (the shallowest), moves[level-1] is
	// this node's own level (the deepest, earliest-executed layer).
	moves []Move
}

// Name returns the entry's name within its parent directory.
func (n *Node) Name() string { return n.name }

// Level returns the node's depth, root at 0.
func (n *Node) Level() uint32 { return n.level }

// Pivot returns the level at or below which this node's content must move.
func (n *Node) Pivot() uint32 { return n.pivot }

// Entry returns the id this path had in the original tree, or None.
func (n *Node) Entry() Slot { return n.entry }

// Target returns the id that should occupy this path in the target tree,
// or None if the path should be gone.
func (n *Node) Target() Slot { return n.target }

// Dir returns the parent node, or nil for the root.
func (n *Node) Dir() *Node {
	if n.dir == noDir {
		return nil
	}
	return n.tree.node(n.dir)
}

// Path reassembles the filesystem path of this node, relative to the
// tree's base, by walking up through parents.
func (n *Node) Path() string {
	if n.dir == noDir {
		return n.name
	}
	dir := n.tree.node(n.dir)
	parent := dir.Path()
	if parent == "" {
		return n.name
	}
	return parent + "/" + n.name
}

// MoveAt returns the {from, to} entry occupying this node's path at the
// given execution layer p (1-indexed, 1 == shallowest). Valid only after
// Tree.EndTarget has computed moves.
func (n *Node) MoveAt(p uint32) Move {
	return n.moves[p-1]
}

func (n *Node) setMove(p uint32, m Move) {
	n.moves[p-1] = m
}

// isRoot reports whether this node is the tree's base directory.
func (n *Node) isRoot() bool { return n.dir == noDir }
