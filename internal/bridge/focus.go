package bridge

import (
	"maps"

	"github.com/mj1618/axbridge/internal/model"
)

// FocusState is the persistent focus bookkeeping of a bridge.
type FocusState struct {
	FocusedID           *int32
	LastFocusedByWindow map[int32]int32
	WindowID            *int32
}

// Clone returns a deep copy of the state.
func (s FocusState) Clone() FocusState {
	out := FocusState{LastFocusedByWindow: maps.Clone(s.LastFocusedByWindow)}
	if s.FocusedID != nil {
		id := *s.FocusedID
		out.FocusedID = &id
	}
	if s.WindowID != nil {
		id := *s.WindowID
		out.WindowID = &id
	}
	return out
}

// focusResolver computes the host-focused id from each event.
type focusResolver struct {
	state FocusState
}

func newFocusResolver() focusResolver {
	return focusResolver{state: FocusState{LastFocusedByWindow: make(map[int32]int32)}}
}

func (f *focusResolver) reset() {
	*f = newFocusResolver()
}

func (f *focusResolver) focused() (int32, bool) {
	if f.state.FocusedID == nil {
		return 0, false
	}
	return *f.state.FocusedID, true
}

func (f *focusResolver) setFocused(id int32) {
	f.state.FocusedID = &id
}

// noteWindow clears focus when events move to another window.
func (f *focusResolver) noteWindow(windowID int32) {
	if f.state.WindowID == nil || *f.state.WindowID != windowID {
		f.state.FocusedID = nil
		f.state.WindowID = &windowID
	}
}

// focusOutcome reports what update did with an event.
type focusOutcome int

const (
	focusUpdated focusOutcome = iota
	// focusSkipped: the source lives in a window without host focus.
	focusSkipped
	// focusFellBack: no candidate resolved and the root took focus.
	focusFellBack
	// focusRejected: the event must be ignored as a whole.
	focusRejected
)

// update runs one transition of the focus state machine.
func (f *focusResolver) update(t *Tree, ev *model.Event, fullFocus bool) focusOutcome {
	sourceSlot, hasSource := t.lookup(ev.SourceID)
	if hasSource {
		winSlot, ok := t.lookup(t.slots[sourceSlot].windowID())
		if !ok || t.slots[winSlot].isNode() || !t.slots[winSlot].window.BoolProp(model.WindowFocused) {
			return focusSkipped
		}
	}

	switch ev.Type {
	case model.EventViewFocused:
		if hasSource && t.slots[sourceSlot].isVisibleToUser() {
			candidate, ok := sourceSlot, true
			if fullFocus {
				candidate, ok = t.firstFocusable(sourceSlot)
			}
			if ok {
				f.setFocused(t.slots[candidate].id)
			}
		}
	case model.EventViewAccessibilityFocused:
		if fullFocus && hasSource && t.slots[sourceSlot].isVisibleToUser() {
			f.setFocused(ev.SourceID)
		}
	case model.EventViewSelected:
		if !hasSource || !t.slots[sourceSlot].isNode() {
			return focusRejected
		}
		if t.slots[sourceSlot].node.RangeInfo == nil {
			selected, ok := t.selectedFromAdapterView(ev, sourceSlot)
			if !ok || !t.slots[selected].isVisibleToUser() {
				return focusRejected
			}
			f.setFocused(t.slots[selected].id)
		}
	case model.EventWindowStateChanged:
		candidate := noSlot
		fromRootOrWindow := (hasSource && !t.slots[sourceSlot].isNode()) || t.IsRootOfNodeTree(ev.SourceID)
		if last, ok := f.state.LastFocusedByWindow[ev.WindowID]; fromRootOrWindow && ok {
			if slot, ok := t.lookup(last); ok {
				candidate = slot
			}
		}
		if candidate == noSlot && fullFocus && hasSource {
			if slot, ok := t.firstFocusable(sourceSlot); ok {
				candidate = slot
			}
		}
		if candidate != noSlot {
			f.setFocused(t.slots[candidate].id)
		}
	}

	outcome := focusUpdated
	if id, ok := f.focused(); !ok || !t.Has(id) {
		root, hasRoot := t.RootID()
		if !hasRoot {
			f.state.FocusedID = nil
			delete(f.state.LastFocusedByWindow, ev.WindowID)
			return focusFellBack
		}
		f.setFocused(root)
		outcome = focusFellBack
	}

	// Climb out of accessibility-pruned nodes.
	slot, _ := t.lookup(*f.state.FocusedID)
	for !t.slots[slot].isImportant() && t.slots[slot].parent != noSlot {
		slot = t.slots[slot].parent
	}
	f.setFocused(t.slots[slot].id)
	f.state.LastFocusedByWindow[ev.WindowID] = t.slots[slot].id
	return outcome
}

// firstFocusable returns the first visible full-focus target in a pre-order
// walk from slot, following reading order.
func (t *Tree) firstFocusable(slot int) (int, bool) {
	in := &t.slots[slot]
	if in.isVisibleToUser() && t.isFocusableInFullFocusMode(slot) {
		return slot, true
	}
	for _, c := range t.OrderedChildren(in.id) {
		if found, ok := t.firstFocusable(t.index[c]); ok {
			return found, true
		}
	}
	return noSlot, false
}

// selectedFromAdapterView resolves the item a VIEW_SELECTED event selects. A
// collection item source is itself the selection; otherwise the event's item
// indexes pick one of the source's declared children. The result moves up to
// the nearest focusable node when it is not focusable itself.
func (t *Tree) selectedFromAdapterView(ev *model.Event, sourceSlot int) (int, bool) {
	src := &t.slots[sourceSlot]
	selected := noSlot
	if src.node.CollectionItem != nil {
		selected = sourceSlot
	} else {
		from, okFrom := ev.IntProp(model.EventPropFromIndex)
		current, okCurrent := ev.IntProp(model.EventPropCurrentItemIndex)
		if !okFrom || !okCurrent {
			return noSlot, false
		}
		declared := src.node.ChildIDs()
		i := int(current - from)
		if i < 0 || i >= len(declared) {
			return noSlot, false
		}
		slot, ok := t.lookup(declared[i])
		if !ok {
			return noSlot, false
		}
		selected = slot
	}

	for s := selected; s != noSlot && t.slots[s].isNode(); s = t.slots[s].parent {
		if s == sourceSlot && s != selected {
			break
		}
		if t.slots[s].node.BoolProp(model.NodeFocusable) {
			return s, true
		}
	}
	return selected, true
}
