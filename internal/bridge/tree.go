package bridge

import (
	"github.com/mj1618/axbridge/internal/model"
	"go.uber.org/zap"
)

const noSlot = -1

// info is one arena slot: a node or a window record plus its accepted edges.
type info struct {
	id       int32
	node     *model.NodeInfo
	window   *model.WindowInfo
	parent   int
	children []int
}

func (in *info) isNode() bool { return in.node != nil }

// windowID returns the owning window of a node, or the window's own id.
func (in *info) windowID() int32 {
	if in.isNode() {
		return in.node.WindowID
	}
	return in.window.WindowID
}

func (in *info) isVisibleToUser() bool {
	if in.isNode() {
		return in.node.BoolProp(model.NodeVisibleToUser)
	}
	return true
}

func (in *info) isImportant() bool {
	if in.isNode() {
		return in.node.BoolProp(model.NodeImportance)
	}
	return true
}

func (in *info) isVirtual() bool {
	return in.isNode() && in.node.IsVirtual
}

func (in *info) bounds() model.Rect {
	if in.isNode() {
		return in.node.Bounds
	}
	return in.window.Bounds
}

// BuildStats counts the malformed edges dropped while building a Tree.
type BuildStats struct {
	Dangling   int
	Duplicates int
	Cycles     int
}

// Tree is the per-event index of one snapshot: an arena of records indexed by
// id, with parent and child edges stored as slot indexes. Windows occupy the
// first slots, then nodes, both in delivery order.
type Tree struct {
	slots  []info
	index  map[int32]int
	root   int
	bounds []model.Rect
	done   []bool
	stats  BuildStats
	logger *zap.Logger
}

// BuildTree indexes a snapshot and computes every record's enclosing bounds.
// The first window is the root. Duplicate ids, dangling child references,
// second parent claims, and cycle-closing edges are logged and dropped.
func BuildTree(windows []model.WindowInfo, nodes []model.NodeInfo, logger *zap.Logger) *Tree {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tree{
		slots:  make([]info, 0, len(windows)+len(nodes)),
		index:  make(map[int32]int, len(windows)+len(nodes)),
		root:   noSlot,
		logger: logger,
	}

	for i := range windows {
		t.insert(info{id: windows[i].WindowID, window: &windows[i], parent: noSlot})
	}
	for i := range nodes {
		t.insert(info{id: nodes[i].ID, node: &nodes[i], parent: noSlot})
	}
	if len(windows) > 0 {
		t.root = t.index[windows[0].WindowID]
	}

	// Windows list child windows first, then their root node.
	for slot := range t.slots {
		in := &t.slots[slot]
		if in.isNode() {
			for _, c := range in.node.ChildIDs() {
				t.link(slot, c)
			}
			continue
		}
		for _, c := range in.window.ChildWindowIDs() {
			t.link(slot, c)
		}
		if in.window.RootNodeID != 0 {
			t.link(slot, in.window.RootNodeID)
		}
	}
	t.breakCycles()
	t.computeBounds()
	return t
}

func (t *Tree) insert(in info) {
	if _, ok := t.index[in.id]; ok {
		t.stats.Duplicates++
		t.logger.Warn("dropping record with duplicate id", zap.Int32("id", in.id), zap.Bool("node", in.isNode()))
		return
	}
	t.index[in.id] = len(t.slots)
	t.slots = append(t.slots, in)
}

func (t *Tree) link(parent int, childID int32) {
	p := &t.slots[parent]
	child, ok := t.index[childID]
	if !ok {
		t.stats.Dangling++
		t.logger.Warn("dropping dangling child reference",
			zap.Int32("parent", p.id), zap.Int32("child", childID))
		return
	}
	if child == t.root || child == parent {
		t.stats.Cycles++
		t.logger.Warn("dropping edge into root or self",
			zap.Int32("parent", p.id), zap.Int32("child", childID))
		return
	}
	if existing := t.slots[child].parent; existing != noSlot {
		t.stats.Duplicates++
		t.logger.Warn("dropping second parent claim",
			zap.Int32("child", childID), zap.Int32("parent", t.slots[existing].id), zap.Int32("claimant", p.id))
		return
	}
	t.slots[child].parent = parent
	p.children = append(p.children, child)
}

// breakCycles walks every parent chain once and cuts the edge that closes a
// loop.
func (t *Tree) breakCycles() {
	const (
		unvisited = iota
		onPath
		finished
	)
	state := make([]uint8, len(t.slots))
	var path []int
	for start := range t.slots {
		path = path[:0]
		cur := start
		for cur != noSlot && state[cur] == unvisited {
			state[cur] = onPath
			path = append(path, cur)
			cur = t.slots[cur].parent
		}
		if cur != noSlot && state[cur] == onPath {
			last := path[len(path)-1]
			t.stats.Cycles++
			t.logger.Warn("breaking parent cycle",
				zap.Int32("child", t.slots[last].id), zap.Int32("parent", t.slots[cur].id))
			t.unlink(cur, last)
		}
		for _, s := range path {
			state[s] = finished
		}
	}
}

func (t *Tree) unlink(parent, child int) {
	p := &t.slots[parent]
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	t.slots[child].parent = noSlot
}

// computeBounds fills the bounds cache in reverse insertion order so that, for
// snapshots delivered in pre-order, children are cached before their parents.
// The memoized recursion keeps the work linear for any other order.
func (t *Tree) computeBounds() {
	t.bounds = make([]model.Rect, len(t.slots))
	t.done = make([]bool, len(t.slots))
	for slot := len(t.slots) - 1; slot >= 0; slot-- {
		t.enclosing(slot)
	}
}

func (t *Tree) enclosing(slot int) model.Rect {
	if t.done[slot] {
		return t.bounds[slot]
	}
	in := &t.slots[slot]
	var r model.Rect
	switch {
	case !in.isVisibleToUser():
	case t.isFocusableInFullFocusMode(slot):
		r = in.bounds()
	default:
		for _, c := range in.children {
			r = r.Union(t.enclosing(c))
		}
	}
	t.bounds[slot] = r
	t.done[slot] = true
	return r
}

// isFocusableInFullFocusMode reports whether a record is a leaf-like focus
// target. Windows never are.
func (t *Tree) isFocusableInFullFocusMode(slot int) bool {
	in := &t.slots[slot]
	if !in.isNode() || !in.isImportant() {
		return false
	}
	n := in.node
	if n.BoolProp(model.NodeScreenReaderFocusable) || n.BoolProp(model.NodeFocusable) ||
		n.BoolProp(model.NodeClickable) || n.BoolProp(model.NodeLongClickable) {
		return true
	}
	return len(in.children) == 0 &&
		(n.StringProp(model.NodeText) != "" || n.StringProp(model.NodeContentDescription) != "")
}

func (t *Tree) lookup(id int32) (int, bool) {
	slot, ok := t.index[id]
	return slot, ok
}

// Has reports whether id is in the snapshot.
func (t *Tree) Has(id int32) bool {
	_, ok := t.index[id]
	return ok
}

// Len returns the number of indexed records.
func (t *Tree) Len() int { return len(t.slots) }

// Stats returns the counts of dropped records and edges.
func (t *Tree) Stats() BuildStats { return t.stats }

// RootID returns the id of the first window.
func (t *Tree) RootID() (int32, bool) {
	if t.root == noSlot {
		return 0, false
	}
	return t.slots[t.root].id, true
}

// ParentID returns the accepted parent of id.
func (t *Tree) ParentID(id int32) (int32, bool) {
	slot, ok := t.index[id]
	if !ok || t.slots[slot].parent == noSlot {
		return 0, false
	}
	return t.slots[t.slots[slot].parent].id, true
}

// IsNode reports whether id names a node rather than a window.
func (t *Tree) IsNode(id int32) bool {
	slot, ok := t.index[id]
	return ok && t.slots[slot].isNode()
}

// Node returns the node record for id.
func (t *Tree) Node(id int32) (*model.NodeInfo, bool) {
	slot, ok := t.index[id]
	if !ok || !t.slots[slot].isNode() {
		return nil, false
	}
	return t.slots[slot].node, true
}

// Window returns the window record for id.
func (t *Tree) Window(id int32) (*model.WindowInfo, bool) {
	slot, ok := t.index[id]
	if !ok || t.slots[slot].isNode() {
		return nil, false
	}
	return t.slots[slot].window, true
}

// DeclaredChildren returns the accepted children of id in declaration order.
func (t *Tree) DeclaredChildren(id int32) []int32 {
	slot, ok := t.index[id]
	if !ok {
		return nil
	}
	return t.ids(t.slots[slot].children)
}

// EnclosingBounds returns the cached enclosing bounds of id.
func (t *Tree) EnclosingBounds(id int32) model.Rect {
	slot, ok := t.index[id]
	if !ok {
		return model.Rect{}
	}
	return t.bounds[slot]
}

// IsRootOfNodeTree reports whether id is a node with no parent or whose parent
// is a window.
func (t *Tree) IsRootOfNodeTree(id int32) bool {
	slot, ok := t.index[id]
	if !ok || !t.slots[slot].isNode() {
		return false
	}
	p := t.slots[slot].parent
	return p == noSlot || !t.slots[p].isNode()
}

func (t *Tree) ids(slots []int) []int32 {
	out := make([]int32, len(slots))
	for i, s := range slots {
		out[i] = t.slots[s].id
	}
	return out
}
