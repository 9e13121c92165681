package model

import "github.com/cockroachdb/errors"

// ClientTree is the consumer-side mirror of the host tree, rebuilt from the
// TreeUpdates a bridge dispatches.
type ClientTree struct {
	treeID  string
	rootID  int32
	hasRoot bool
	focusID *int32
	nodes   map[int32]Element
}

// NewClientTree returns an empty client tree.
func NewClientTree() *ClientTree {
	return &ClientTree{nodes: make(map[int32]Element)}
}

// TreeID returns the tree id last seen in tree data.
func (t *ClientTree) TreeID() string { return t.treeID }

// RootID returns the current root id, if any.
func (t *ClientTree) RootID() (int32, bool) { return t.rootID, t.hasRoot }

// FocusID returns the focused id from the last tree data, if any.
func (t *ClientTree) FocusID() (int32, bool) {
	if t.focusID == nil {
		return 0, false
	}
	return *t.focusID, true
}

// Get returns the element with the given id.
func (t *ClientTree) Get(id int32) (Element, bool) {
	el, ok := t.nodes[id]
	return el, ok
}

// Len returns the number of elements held.
func (t *ClientTree) Len() int { return len(t.nodes) }

// Reset forgets every element, as when the tree is destroyed.
func (t *ClientTree) Reset() {
	t.treeID = ""
	t.rootID = 0
	t.hasRoot = false
	t.focusID = nil
	t.nodes = make(map[int32]Element)
}

// ApplyBatch applies every update of a batch in order.
func (t *ClientTree) ApplyBatch(b EventBatch) error {
	for i, u := range b.Updates {
		if err := t.Apply(u); err != nil {
			return errors.Wrapf(err, "update %d", i)
		}
	}
	return nil
}

// Apply installs one update. The subtree below NodeIDToClear is dropped first;
// children a node no longer lists are dropped along with their descendants
// unless the same update installs them again.
func (t *ClientTree) Apply(u TreeUpdate) error {
	installed := make(map[int32]bool, len(u.Nodes))
	for _, n := range u.Nodes {
		installed[n.ID] = true
	}

	if cleared, ok := t.nodes[u.NodeIDToClear]; ok {
		for _, c := range cleared.Children {
			t.deleteSubtree(c, installed)
		}
	}

	for _, n := range u.Nodes {
		old, ok := t.nodes[n.ID]
		if !ok {
			continue
		}
		keep := make(map[int32]bool, len(n.Children))
		for _, c := range n.Children {
			keep[c] = true
		}
		for _, c := range old.Children {
			if !keep[c] {
				t.deleteSubtree(c, installed)
			}
		}
	}

	for _, n := range u.Nodes {
		t.nodes[n.ID] = n
	}
	if len(u.Nodes) > 0 {
		t.rootID = u.RootID
		t.hasRoot = true
	}
	if u.TreeData != nil {
		t.treeID = u.TreeData.TreeID
		t.focusID = u.TreeData.FocusID
	}

	for _, n := range u.Nodes {
		for _, c := range n.Children {
			if _, ok := t.nodes[c]; !ok {
				return errors.Newf("node %d lists unknown child %d", n.ID, c)
			}
		}
	}
	return t.checkSingleParent(u.Nodes)
}

// checkSingleParent fails when a child of an installed node is also listed by
// another node.
func (t *ClientTree) checkSingleParent(installed []Element) error {
	want := make(map[int32]int32)
	for _, n := range installed {
		for _, c := range n.Children {
			want[c] = n.ID
		}
	}
	if len(want) == 0 {
		return nil
	}
	for id, el := range t.nodes {
		for _, c := range el.Children {
			if p, ok := want[c]; ok && p != id {
				return errors.Newf("node %d is listed by both %d and %d", c, p, id)
			}
		}
	}
	return nil
}

// deleteSubtree removes id and its descendants, sparing ids in keep.
func (t *ClientTree) deleteSubtree(id int32, keep map[int32]bool) {
	if keep[id] {
		return
	}
	el, ok := t.nodes[id]
	if !ok {
		return
	}
	delete(t.nodes, id)
	for _, c := range el.Children {
		t.deleteSubtree(c, keep)
	}
}
