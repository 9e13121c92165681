// Package serialize turns a tree source into incremental TreeUpdates,
// remembering which nodes the consumer already holds.
package serialize

import (
	"github.com/cockroachdb/errors"
	"github.com/mj1618/axbridge/internal/model"
)

// ErrNodeNotFound is returned when an update is requested for an id the
// source does not have.
var ErrNodeNotFound = errors.New("node not found in tree source")

// TreeSource is the tree a Serializer reads.
type TreeSource interface {
	RootID() (int32, bool)
	Has(id int32) bool
	ParentID(id int32) (int32, bool)
	// ChildIDs returns the children of id in serialization order.
	ChildIDs(id int32) []int32
	SerializeNode(id int32) model.Element
	TreeData() model.TreeData
}

// Serializer produces TreeUpdates from a TreeSource.
type Serializer struct {
	src TreeSource
	// client maps every id the consumer holds to the children it was sent.
	client map[int32][]int32
	// parents maps every held id except the root to the parent the consumer
	// holds it under.
	parents map[int32]int32
}

// New returns a serializer over src that assumes an empty consumer.
func New(src TreeSource) *Serializer {
	return &Serializer{
		src:     src,
		client:  make(map[int32][]int32),
		parents: make(map[int32]int32),
	}
}

// Reset forgets everything the consumer was sent.
func (s *Serializer) Reset() {
	clear(s.client)
	clear(s.parents)
}

// ClientHas reports whether the consumer holds id.
func (s *Serializer) ClientHas(id int32) bool {
	_, ok := s.client[id]
	return ok
}

// ClientSize returns the number of ids the consumer holds.
func (s *Serializer) ClientSize() int { return len(s.client) }

// InvalidateSubtree forgets the consumer's copy of id's descendants so the
// next update resends them.
func (s *Serializer) InvalidateSubtree(id int32) {
	children, ok := s.client[id]
	if !ok {
		return
	}
	for _, c := range children {
		s.forgetChild(id, c)
	}
	s.client[id] = nil
}

// forgetChild forgets c and its descendants if the consumer still holds c
// under parent. A child that has since moved elsewhere is left alone.
func (s *Serializer) forgetChild(parent, c int32) {
	if p, ok := s.parents[c]; !ok || p != parent {
		return
	}
	children := s.client[c]
	delete(s.client, c)
	delete(s.parents, c)
	for _, gc := range children {
		s.forgetChild(c, gc)
	}
}

// SerializeChanges returns an update carrying id's subtree. When the consumer
// does not hold id yet, the update starts at its nearest held ancestor (or
// the root) so the consumer can attach it. When a node of that subtree is
// held under a different parent, the update widens to the lowest common
// ancestor of both parents so the old parent is resent without it.
func (s *Serializer) SerializeChanges(id int32) (model.TreeUpdate, error) {
	if !s.src.Has(id) {
		return model.TreeUpdate{}, errors.Wrapf(ErrNodeNotFound, "id %d", id)
	}
	root, hasRoot := s.src.RootID()

	start := id
	for !s.ClientHas(start) {
		parent, ok := s.src.ParentID(start)
		if !ok {
			break
		}
		start = parent
	}
	if !s.ClientHas(start) && hasRoot {
		// Either the root itself or detached from it; the consumer can only
		// place a subtree hanging off the root.
		start = root
	}
	if hasRoot {
		start = s.widenForReparenting(start, root)
	}

	update := model.TreeUpdate{RootID: root}
	visited := make(map[int32]bool)
	parent, hasParent := s.src.ParentID(start)
	if start == root {
		hasParent = false
	}
	s.serializeSubtree(start, parent, hasParent, &update.Nodes, visited)
	data := s.src.TreeData()
	update.TreeData = &data
	return update, nil
}

// widenForReparenting moves start up until no node of its subtree is held by
// the consumer under a parent outside the subtree.
func (s *Serializer) widenForReparenting(start, root int32) int32 {
	for start != root {
		next := start
		s.walk(start, func(n int32) {
			old, held := s.parents[n]
			if !held {
				return
			}
			parent, ok := s.src.ParentID(n)
			if ok && parent == old {
				return
			}
			if n == start && !ok {
				return
			}
			if ok {
				next = s.commonAncestor(next, s.commonAncestor(parent, old, root), root)
			} else {
				next = s.commonAncestor(next, old, root)
			}
		})
		if next == start {
			break
		}
		start = next
	}
	return start
}

// walk visits id's subtree in the source, pre-order.
func (s *Serializer) walk(id int32, fn func(int32)) {
	visited := make(map[int32]bool)
	var visit func(int32)
	visit = func(n int32) {
		if visited[n] || !s.src.Has(n) {
			return
		}
		visited[n] = true
		fn(n)
		for _, c := range s.src.ChildIDs(n) {
			visit(c)
		}
	}
	visit(id)
}

// commonAncestor returns the lowest source ancestor-or-self shared by a and
// b, or root when they share none.
func (s *Serializer) commonAncestor(a, b, root int32) int32 {
	seen := make(map[int32]bool)
	for n, ok := a, s.src.Has(a); ok && !seen[n]; n, ok = s.src.ParentID(n) {
		seen[n] = true
	}
	if !s.src.Has(b) {
		return root
	}
	guard := make(map[int32]bool)
	for n, ok := b, true; ok && !guard[n]; n, ok = s.src.ParentID(n) {
		if seen[n] {
			return n
		}
		guard[n] = true
	}
	return root
}

func (s *Serializer) serializeSubtree(id, parent int32, hasParent bool, out *[]model.Element, visited map[int32]bool) {
	if visited[id] || !s.src.Has(id) {
		return
	}
	visited[id] = true
	if hasParent {
		s.parents[id] = parent
	} else {
		delete(s.parents, id)
	}

	el := s.src.SerializeNode(id)
	el.Children = s.src.ChildIDs(id)

	keep := make(map[int32]bool, len(el.Children))
	for _, c := range el.Children {
		keep[c] = true
	}
	for _, c := range s.client[id] {
		if !keep[c] {
			s.forgetChild(id, c)
		}
	}
	s.client[id] = el.Children

	*out = append(*out, el)
	for _, c := range el.Children {
		s.serializeSubtree(c, id, true, out, visited)
	}
}
