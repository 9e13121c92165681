package model

// WindowType is the Android accessibility window type.
type WindowType string

const (
	WindowTypeApplication          WindowType = "TYPE_APPLICATION"
	WindowTypeInputMethod          WindowType = "TYPE_INPUT_METHOD"
	WindowTypeSystem               WindowType = "TYPE_SYSTEM"
	WindowTypeAccessibilityOverlay WindowType = "TYPE_ACCESSIBILITY_OVERLAY"
	WindowTypeSplitScreenDivider   WindowType = "TYPE_SPLIT_SCREEN_DIVIDER"
)

// WindowBoolProperty keys the boolean property bag of a window.
type WindowBoolProperty string

const (
	WindowFocused WindowBoolProperty = "FOCUSED"
)

// WindowIntProperty keys the integer property bag of a window.
type WindowIntProperty string

const (
	WindowAnchorNodeID WindowIntProperty = "ANCHOR_NODE_ID"
)

// WindowStringProperty keys the string property bag of a window.
type WindowStringProperty string

const (
	WindowTitle WindowStringProperty = "TITLE"
)

// WindowIntListProperty keys the integer-list property bag of a window.
type WindowIntListProperty string

const (
	WindowChildWindowIDs WindowIntListProperty = "CHILD_WINDOW_IDS"
)

// WindowInfo is one Android accessibility window as delivered with an event.
// A zero RootNodeID means the window has no node tree.
type WindowInfo struct {
	WindowID   int32                             `yaml:"id"                  json:"id"`
	RootNodeID int32                             `yaml:"root,omitempty"      json:"root,omitempty"`
	Bounds     Rect                              `yaml:"bounds"              json:"bounds"`
	Type       WindowType                        `yaml:"type,omitempty"      json:"type,omitempty"`
	Bools      map[WindowBoolProperty]bool       `yaml:"bools,omitempty"     json:"bools,omitempty"`
	Ints       map[WindowIntProperty]int32       `yaml:"ints,omitempty"      json:"ints,omitempty"`
	Strings    map[WindowStringProperty]string   `yaml:"strings,omitempty"   json:"strings,omitempty"`
	IntLists   map[WindowIntListProperty][]int32 `yaml:"int_lists,omitempty" json:"int_lists,omitempty"`
}

// BoolProp returns a boolean window property. Absent properties are false.
func (w *WindowInfo) BoolProp(p WindowBoolProperty) bool {
	return w.Bools[p]
}

// IntProp returns an integer window property.
func (w *WindowInfo) IntProp(p WindowIntProperty) (int32, bool) {
	v, ok := w.Ints[p]
	return v, ok
}

// StringProp returns a string window property, or "" if absent.
func (w *WindowInfo) StringProp(p WindowStringProperty) string {
	return w.Strings[p]
}

// ChildWindowIDs returns the declared child window ids.
func (w *WindowInfo) ChildWindowIDs() []int32 {
	return w.IntLists[WindowChildWindowIDs]
}
