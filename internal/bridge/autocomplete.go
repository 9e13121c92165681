package bridge

import (
	"strconv"

	"github.com/mj1618/axbridge/internal/model"
)

var autoCompleteClasses = map[string]bool{
	"android.widget.AutoCompleteTextView":      true,
	"android.widget.MultiAutoCompleteTextView": true,
}

// autoCompleteHook links an autocomplete field to its suggestion popup.
type autoCompleteHook struct {
	editableID     int32
	anchoredWindow *int32
	selectedID     *int32
}

// autoCompleteCandidates proposes a hook for every autocomplete field in the
// snapshot, in delivery order.
func autoCompleteCandidates(t *Tree) []hookCandidate {
	var out []hookCandidate
	for slot := range t.slots {
		in := &t.slots[slot]
		if in.isNode() && autoCompleteClasses[in.node.ClassName()] {
			out = append(out, hookCandidate{
				id:   in.id,
				kind: hookAutoComplete,
				hook: &autoCompleteHook{editableID: in.id},
			})
		}
	}
	return out
}

func (h *autoCompleteHook) PreDispatchEvent(t *Tree, ev *model.Event) bool {
	switch ev.Type {
	case model.EventWindowsChanged, model.EventWindowStateChanged:
		var anchored *int32
		for i := range ev.Windows {
			w := &ev.Windows[i]
			if anchor, ok := w.IntProp(model.WindowAnchorNodeID); ok && anchor == h.editableID {
				id := w.WindowID
				anchored = &id
				break
			}
		}
		changed := !equalOptional(h.anchoredWindow, anchored)
		h.anchoredWindow = anchored
		if anchored == nil {
			h.selectedID = nil
		}
		return changed
	case model.EventViewSelected:
		if h.anchoredWindow == nil {
			return false
		}
		slot, ok := t.lookup(ev.SourceID)
		if !ok || !t.slots[slot].isNode() || t.slots[slot].windowID() != *h.anchoredWindow {
			return false
		}
		selected, ok := t.selectedFromAdapterView(ev, slot)
		if !ok {
			return false
		}
		id := t.slots[selected].id
		changed := h.selectedID == nil || *h.selectedID != id
		h.selectedID = &id
		return changed
	}
	return false
}

func (h *autoCompleteHook) PostSerializeNode(el *model.Element) {
	el.SetAttr("autocomplete", "list")
	el.SetAttr("expanded", strconv.FormatBool(h.anchoredWindow != nil))
	if h.anchoredWindow != nil {
		el.SetAttr("controls", strconv.Itoa(int(*h.anchoredWindow)))
	}
	if h.selectedID != nil {
		el.SetAttr("activedescendant", strconv.Itoa(int(*h.selectedID)))
	}
}

func equalOptional(a, b *int32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
