package vifitree

import "sort"

// Tree is the combined original+target file tree. Typical usage:
//
//  1. Add path nodes of the original tree through AddEntry.
//  2. Finish the original tree with EndOriginal.
//  3. Add path nodes of the target tree through AddEntry.
//  4. Finish the target tree with EndTarget.
//  5. Let Generate (package planner) build the operation sequence.
type Tree struct {
	nodes []*Node // arena; nodes[0] is the root

	original bool // true while loading the original tree

	byID []*Node // access to original nodes by entry id; byID[0] is the root

	// children indexes nodes by parent, rebuilt lazily whenever it goes
	// stale relative to len(nodes). This is the "derived view guarded by
	// a freshness check" the reference implementation keeps implicit by
	// always mutating in ways that change node count; here the flag is
	// explicit.
	children      map[nodeRef][]*Node
	childrenStale bool

	// originalChildren freezes, at EndOriginal, a (parent original id,
	// name) -> child node index. computeMoves uses it to find whether a
	// former sibling directory had a child of a given name, to carry
	// identity along when a parent directory is itself moved.
	originalChildren map[Id]map[string]*Node
}

// New returns an empty file tree with a root at id 0, level 0.
func New() *Tree {
	t := &Tree{}
	t.reset()
	return t
}

func (t *Tree) reset() {
	root := &Node{self: 0, dir: noDir, entry: EntrySlot(RootID), target: EntrySlot(RootID), pivot: MaxLevel}
	t.nodes = []*Node{root}
	root.tree = t
	t.original = true
	t.byID = []*Node{root}
	t.children = nil
	t.childrenStale = true
	t.originalChildren = nil
}

// Clear restores the tree to its initial empty state.
func (t *Tree) Clear() { t.reset() }

func (t *Tree) node(ref nodeRef) *Node { return t.nodes[ref] }

// BaseNode returns the root node of the tree.
func (t *Tree) BaseNode() *Node { return t.nodes[0] }

// BasePath returns the base directory's configured name.
func (t *Tree) BasePath() string { return t.nodes[0].name }

// SetBasePath sets the root's name (the absolute path the tree is rooted
// at) and returns the root node.
func (t *Tree) SetBasePath(path string) *Node {
	t.nodes[0].name = path
	return t.nodes[0]
}

// MaxEntryId returns the maximum entry id used by any entry in the tree.
func (t *Tree) MaxEntryId() Id {
	if len(t.byID) == 0 {
		return 0
	}
	return Id(len(t.byID) - 1)
}

// Nodes returns every non-root node in the tree, in the order they were
// added.
func (t *Tree) Nodes() []*Node { return t.nodes[1:] }

// NodeByOriginalId looks up the node that had this id in the original
// tree. Valid for ids 0..MaxEntryId.
func (t *Tree) NodeByOriginalId(id Id) *Node { return t.byID[id] }

// AddEntry adds an entry node to the given directory. In the original
// phase this assigns the next free id. In the target phase it records the
// path with no target id: an existing node at (dir, name) keeps its Entry
// and has its Target set to None; otherwise a new node is created with
// both Entry and Target None (an intermediate directory).
func (t *Tree) AddEntry(dir *Node, name string) (*Node, error) {
	if t.original {
		return t.AddEntryWithId(dir, Id(len(t.byID)), name)
	}
	return t.addTargetEntry(dir, None(), name)
}

// AddEntryWithId adds an entry node to the given directory, forcing the
// given id. Used by the manifest reader, which knows ids up front.
//
// In the original phase, id must be unused; a new node is created and
// recorded in the by-id table. In the target phase, id is the *target*
// id for the path: if a node already exists at (dir, name) its Target is
// set to id (path unchanged, or a duplication sink); otherwise a new
// node is created with Entry = None (a pure target path).
func (t *Tree) AddEntryWithId(dir *Node, id Id, name string) (*Node, error) {
	if t.original {
		return t.addOriginalEntry(dir, id, name)
	}
	return t.addTargetEntry(dir, EntrySlot(id), name)
}

func (t *Tree) addOriginalEntry(dir *Node, id Id, name string) (*Node, error) {
	if dir == nil {
		return nil, errorf("AddEntry", "nil parent directory")
	}
	if id == RootID {
		return nil, errorf("AddEntry", "%w: id 0 is reserved for the base directory", ErrInvalidId)
	}
	idx := int(id)
	if idx < len(t.byID) && t.byID[idx] != nil {
		return nil, errorf("AddEntry", "%w: id %d for %q", ErrIdConflict, id, name)
	}
	if idx >= len(t.byID) {
		grown := make([]*Node, idx+1)
		copy(grown, t.byID)
		t.byID = grown
	}
	node := t.newNode(dir, EntrySlot(id), None(), name)
	t.byID[idx] = node
	return node, nil
}

func (t *Tree) addTargetEntry(dir *Node, target Slot, name string) (*Node, error) {
	if dir == nil {
		return nil, errorf("AddEntry", "nil parent directory")
	}
	if existing := t.lookupChild(dir, name); existing != nil {
		existing.target = target
		return existing, nil
	}
	return t.newNode(dir, None(), target, name), nil
}

func (t *Tree) newNode(dir *Node, entry, target Slot, name string) *Node {
	node := &Node{
		tree:   t,
		self:   nodeRef(len(t.nodes)),
		dir:    dir.self,
		entry:  entry,
		target: target,
		name:   name,
		level:  dir.level + 1,
		pivot:  MaxLevel,
	}
	t.nodes = append(t.nodes, node)
	t.childrenStale = true
	return node
}

// EndOriginal verifies id density, freezes the original tree, and builds
// the index computeMoves will use to find former siblings.
func (t *Tree) EndOriginal() error {
	for id := Id(0); id < Id(len(t.byID)); id++ {
		node := t.byID[id]
		if node == nil {
			return errorf("EndOriginal", "%w: missing entry %d", ErrSparseIds, id)
		}
		if got, ok := node.entry.IsEntry(); !ok || got != id {
			return errorf("EndOriginal", "%w: entry %d has inconsistent id", ErrSparseIds, id)
		}
	}
	t.original = false
	t.rebuildChildrenIndex()
	t.freezeOriginalChildren()
	return nil
}

// EndTarget computes pivots and moves; the tree is read-only for planning
// from this point on.
func (t *Tree) EndTarget() {
	t.rebuildChildrenIndex()
	t.computePivots()
	t.computeMoves()
}

func (t *Tree) rebuildChildrenIndex() {
	if !t.childrenStale {
		return
	}
	idx := make(map[nodeRef][]*Node, len(t.nodes))
	for _, n := range t.nodes[1:] {
		idx[n.dir] = append(idx[n.dir], n)
	}
	for _, group := range idx {
		sort.Slice(group, func(i, j int) bool { return group[i].name < group[j].name })
	}
	t.children = idx
	t.childrenStale = false
}

func (t *Tree) lookupChild(dir *Node, name string) *Node {
	t.rebuildChildrenIndex()
	for _, n := range t.children[dir.self] {
		if n.name == name {
			return n
		}
	}
	return nil
}

func (t *Tree) freezeOriginalChildren() {
	idx := make(map[Id]map[string]*Node)
	for _, n := range t.nodes[1:] {
		dir := t.node(n.dir)
		parentID, ok := dir.entry.IsEntry()
		if !ok {
			continue
		}
		m := idx[parentID]
		if m == nil {
			m = make(map[string]*Node)
			idx[parentID] = m
		}
		m[n.name] = n
	}
	t.originalChildren = idx
}

// originalChild returns the original-tree child named name under the
// original directory that had id parentID, if any.
func (t *Tree) originalChild(parentID Id, name string) (*Node, bool) {
	m := t.originalChildren[parentID]
	if m == nil {
		return nil, false
	}
	n, ok := m[name]
	return n, ok
}

// Children returns the entries of a directory, sorted by name.
func (t *Tree) Children(dir *Node) []*Node {
	t.rebuildChildrenIndex()
	return t.children[dir.self]
}

// Equal reports whether two trees hold the same nodes (same base path and
// the same set of (dir-id, entry, target, name, level) tuples).
func (t *Tree) Equal(other *Tree) bool {
	if t.BasePath() != other.BasePath() {
		return false
	}
	a, b := t.sortedForCompare(), other.sortedForCompare()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (t *Tree) sortedForCompare() []*Node {
	nodes := append([]*Node(nil), t.nodes[1:]...)
	sort.Slice(nodes, func(i, j int) bool {
		di, dj := nodes[i].Dir(), nodes[j].Dir()
		ik, _ := di.entry.IsEntry()
		jk, _ := dj.entry.IsEntry()
		if ik != jk {
			return ik < jk
		}
		return nodes[i].name < nodes[j].name
	})
	return nodes
}

func nodesEqual(a, b *Node) bool {
	ad, bd := a.Dir(), b.Dir()
	return ad.entry == bd.entry && a.entry == b.entry && a.target == b.target &&
		a.name == b.name && a.level == b.level
}
