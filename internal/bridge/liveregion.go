package bridge

import (
	"cmp"
	"slices"

	"github.com/mj1618/axbridge/internal/model"
)

// liveRegionDiffer remembers the last announced name of every node under a
// live region.
type liveRegionDiffer struct {
	previous map[int32]string
}

// update marks every descendant of a live region with its type, compares the
// current names against the previous event, and emits one liveRegionChanged
// event per changed node in ascending id order. The previous names are then
// replaced.
func (d *liveRegionDiffer) update(t *Tree) ([]model.AXEvent, map[int32]model.LiveRegionType) {
	current := make(map[int32]string)
	status := make(map[int32]model.LiveRegionType)

	var roots []int
	for slot := range t.slots {
		in := &t.slots[slot]
		if in.isNode() && in.node.LiveRegion() != model.LiveRegionNone {
			roots = append(roots, slot)
		}
	}
	slices.SortFunc(roots, func(a, b int) int { return cmp.Compare(t.slots[a].id, t.slots[b].id) })

	var stack []int
	for _, root := range roots {
		live := t.slots[root].node.LiveRegion()
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			slot := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			in := &t.slots[slot]
			if !in.isNode() {
				continue
			}
			status[in.id] = live
			current[in.id] = t.AccessibleName(in.id, true)
			stack = append(stack, in.children...)
		}
	}

	ids := make([]int32, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var events []model.AXEvent
	for _, id := range ids {
		prev, ok := d.previous[id]
		if ok && prev != current[id] {
			events = append(events, model.AXEvent{Type: model.AXEventLiveRegionChanged, ID: id})
		}
	}
	d.previous = current
	return events, status
}

func (d *liveRegionDiffer) reset() {
	d.previous = nil
}
