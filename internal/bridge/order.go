package bridge

import (
	"cmp"
	"slices"

	"github.com/mj1618/axbridge/internal/model"
)

// OrderedChildren returns the children of id in reading order. Virtual nodes,
// and parents with any virtual child, keep their declared order. Otherwise
// children are stably sorted by their enclosing bounds, so ties keep
// declaration order.
func (t *Tree) OrderedChildren(id int32) []int32 {
	slot, ok := t.index[id]
	if !ok {
		return nil
	}
	in := &t.slots[slot]
	children := slices.Clone(in.children)
	if len(children) == 0 || in.isVirtual() {
		return t.ids(children)
	}
	for _, c := range children {
		if t.slots[c].isVirtual() {
			return t.ids(children)
		}
	}
	slices.SortStableFunc(children, func(a, b int) int {
		return compareChildBounds(t.bounds[a], t.bounds[b])
	})
	return t.ids(children)
}

// compareChildBounds orders two sibling rectangles. Empty rectangles compare
// equal to everything. Disjoint rectangles go top to bottom; overlapping ones
// go left to right, then top to bottom, then larger first.
func compareChildBounds(a, b model.Rect) int {
	if a.IsEmpty() || b.IsEmpty() {
		return 0
	}
	if !a.Intersects(b) {
		return cmp.Compare(a.Y, b.Y)
	}
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Height, a.Height); c != 0 {
		return c
	}
	return cmp.Compare(b.Width, a.Width)
}
