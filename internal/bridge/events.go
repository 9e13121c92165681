package bridge

import (
	"slices"

	"github.com/mj1618/axbridge/internal/model"
)

// toAXEvent maps an Android event type to the host event type. hasFocus
// reports whether the resolved focus names an existing record.
func toAXEvent(t *Tree, ev *model.Event, hasFocus bool) model.AXEventType {
	switch ev.Type {
	case model.EventViewFocused, model.EventViewAccessibilityFocused:
		return model.AXEventFocus
	case model.EventViewClicked, model.EventViewLongClicked:
		return model.AXEventClicked
	case model.EventViewTextChanged:
		return model.AXEventTextChanged
	case model.EventViewTextSelectionChanged:
		return model.AXEventTextSelectionChanged
	case model.EventViewHoverEnter:
		return model.AXEventHover
	case model.EventViewScrolled:
		return model.AXEventScrollPositionChanged
	case model.EventAnnouncement:
		return model.AXEventAlert
	case model.EventViewSelected:
		if n, ok := t.Node(ev.SourceID); ok && n.RangeInfo != nil {
			return model.AXEventValueChanged
		}
		return model.AXEventSelection
	case model.EventWindowStateChanged:
		if hasFocus {
			return model.AXEventFocus
		}
		return model.AXEventLayoutComplete
	case model.EventWindowContentChanged, model.EventWindowsChanged, model.EventNotificationStateChanged:
		types, _ := ev.IntListProp(model.EventPropContentChangeTypes)
		switch {
		case slices.Contains(types, model.ContentChangeStateDescription):
			return model.AXEventAriaAttributeChanged
		case slices.Contains(types, model.ContentChangeText), slices.Contains(types, model.ContentChangeContentDesc):
			return model.AXEventTextChanged
		case slices.Contains(types, model.ContentChangeSubtree):
			return model.AXEventChildrenChanged
		}
		return model.AXEventLayoutComplete
	}
	return model.AXEventLayoutComplete
}
