package model

// EventType is the Android accessibility event type that triggered a snapshot.
type EventType string

const (
	EventViewFocused              EventType = "VIEW_FOCUSED"
	EventViewClicked              EventType = "VIEW_CLICKED"
	EventViewLongClicked          EventType = "VIEW_LONG_CLICKED"
	EventViewSelected             EventType = "VIEW_SELECTED"
	EventViewAccessibilityFocused EventType = "VIEW_ACCESSIBILITY_FOCUSED"
	EventViewTextChanged          EventType = "VIEW_TEXT_CHANGED"
	EventViewTextSelectionChanged EventType = "VIEW_TEXT_SELECTION_CHANGED"
	EventViewHoverEnter           EventType = "VIEW_HOVER_ENTER"
	EventViewScrolled             EventType = "VIEW_SCROLLED"
	EventWindowStateChanged       EventType = "WINDOW_STATE_CHANGED"
	EventWindowContentChanged     EventType = "WINDOW_CONTENT_CHANGED"
	EventWindowsChanged           EventType = "WINDOWS_CHANGED"
	EventNotificationStateChanged EventType = "NOTIFICATION_STATE_CHANGED"
	EventAnnouncement             EventType = "ANNOUNCEMENT"
)

// EventIntProperty keys the integer property bag of an event.
type EventIntProperty string

const (
	EventPropAction           EventIntProperty = "ACTION"
	EventPropFromIndex        EventIntProperty = "FROM_INDEX"
	EventPropCurrentItemIndex EventIntProperty = "CURRENT_ITEM_INDEX"
)

// EventIntListProperty keys the integer-list property bag of an event.
type EventIntListProperty string

const (
	EventPropContentChangeTypes EventIntListProperty = "CONTENT_CHANGE_TYPES"
)

// Content change types carried in CONTENT_CHANGE_TYPES.
const (
	ContentChangeSubtree          int32 = 1
	ContentChangeText             int32 = 2
	ContentChangeContentDesc      int32 = 4
	ContentChangeStateDescription int32 = 64
)

// Event is one accessibility event delivered from Android together with the
// full snapshot of the windows and nodes it concerns.
type Event struct {
	Type                EventType                        `yaml:"type"                       json:"type"`
	SourceID            int32                            `yaml:"source"                     json:"source"`
	WindowID            int32                            `yaml:"window"                     json:"window"`
	IsInputMethodWindow bool                             `yaml:"input_method,omitempty"     json:"input_method,omitempty"`
	NotificationKey     *string                          `yaml:"notification_key,omitempty" json:"notification_key,omitempty"`
	Text                []string                         `yaml:"text,omitempty"             json:"text,omitempty"`
	Windows             []WindowInfo                     `yaml:"windows"                    json:"windows"`
	Nodes               []NodeInfo                       `yaml:"nodes,omitempty"            json:"nodes,omitempty"`
	IntProperties       map[EventIntProperty]int32       `yaml:"ints,omitempty"             json:"ints,omitempty"`
	IntListProperties   map[EventIntListProperty][]int32 `yaml:"int_lists,omitempty"        json:"int_lists,omitempty"`
}

// IntProp returns an integer event property.
func (e *Event) IntProp(p EventIntProperty) (int32, bool) {
	v, ok := e.IntProperties[p]
	return v, ok
}

// HasIntProp reports whether the integer event property is present.
func (e *Event) HasIntProp(p EventIntProperty) bool {
	_, ok := e.IntProperties[p]
	return ok
}

// IntListProp returns an integer-list event property.
func (e *Event) IntListProp(p EventIntListProperty) ([]int32, bool) {
	v, ok := e.IntListProperties[p]
	return v, ok
}
