package model

// Element is one serialized node of the host accessibility tree. Children
// holds child ids; the tree shape lives in the id references.
type Element struct {
	ID          int32             `yaml:"i"               json:"i"`               // Android node or window id
	Role        string            `yaml:"r"               json:"r"`               // Abbreviated role code
	Name        string            `yaml:"n,omitempty"     json:"n,omitempty"`     // Accessible name
	Value       string            `yaml:"v,omitempty"     json:"v,omitempty"`     // Current value (editable text, range)
	Description string            `yaml:"d,omitempty"     json:"d,omitempty"`     // State description
	ClassName   string            `yaml:"cls,omitempty"   json:"cls,omitempty"`   // Android view class
	Bounds      [4]int            `yaml:"b"               json:"b"`               // [x, y, width, height]
	Focusable   bool              `yaml:"fo,omitempty"    json:"fo,omitempty"`    // Can take host focus
	Selected    bool              `yaml:"s,omitempty"     json:"s,omitempty"`     // Is selected
	Enabled     *bool             `yaml:"e,omitempty"     json:"e,omitempty"`     // nil = enabled; false = disabled
	Modal       bool              `yaml:"m,omitempty"     json:"m,omitempty"`     // Root window of a task
	LiveStatus  string            `yaml:"live,omitempty"  json:"live,omitempty"`  // polite or assertive
	Children    []int32           `yaml:"c,omitempty"     json:"c,omitempty"`     // Ordered child ids
	Actions     []string          `yaml:"a,omitempty"     json:"a,omitempty"`     // Available actions
	Attrs       map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"` // Extra annotations
}

// SetAttr sets an annotation, allocating the map on first use.
func (e *Element) SetAttr(key, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[key] = value
}

// TreeData carries tree-wide state alongside an update.
type TreeData struct {
	TreeID  string `yaml:"tree_id"         json:"tree_id"`
	FocusID *int32 `yaml:"focus,omitempty" json:"focus,omitempty"`
}

// TreeUpdate is one incremental update of the host tree. The consumer clears
// the subtree below NodeIDToClear, then installs Nodes (parents before
// children).
type TreeUpdate struct {
	NodeIDToClear int32     `yaml:"clear"          json:"clear"`
	RootID        int32     `yaml:"root"           json:"root"`
	Nodes         []Element `yaml:"nodes"          json:"nodes"`
	TreeData      *TreeData `yaml:"data,omitempty" json:"data,omitempty"`
}

// AXEventType is the host automation event type.
type AXEventType string

const (
	AXEventFocus                 AXEventType = "focus"
	AXEventClicked               AXEventType = "clicked"
	AXEventSelection             AXEventType = "selection"
	AXEventTextChanged           AXEventType = "textChanged"
	AXEventTextSelectionChanged  AXEventType = "textSelectionChanged"
	AXEventHover                 AXEventType = "hover"
	AXEventScrollPositionChanged AXEventType = "scrollPositionChanged"
	AXEventValueChanged          AXEventType = "valueChanged"
	AXEventLayoutComplete        AXEventType = "layoutComplete"
	AXEventAriaAttributeChanged  AXEventType = "ariaAttributeChanged"
	AXEventChildrenChanged       AXEventType = "childrenChanged"
	AXEventAlert                 AXEventType = "alert"
	AXEventLiveRegionChanged     AXEventType = "liveRegionChanged"
)

// EventFromAction marks events caused by an automation action.
const EventFromAction = "action"

// AXEvent is one synthesized host event.
type AXEvent struct {
	Type      AXEventType `yaml:"type"           json:"type"`
	ID        int32       `yaml:"id"             json:"id"`
	EventFrom string      `yaml:"from,omitempty" json:"from,omitempty"`
}

// EventBatch is everything dispatched for one Android event.
type EventBatch struct {
	TreeID  string       `yaml:"tree_id"          json:"tree_id"`
	Updates []TreeUpdate `yaml:"updates"          json:"updates"`
	Events  []AXEvent    `yaml:"events,omitempty" json:"events,omitempty"`
}

// ActionData describes an automation action addressed to a node.
type ActionData struct {
	Action     string `yaml:"action"                json:"action"`
	TargetID   int32  `yaml:"target"                json:"target"`
	RequestID  int32  `yaml:"request_id,omitempty"  json:"request_id,omitempty"`
	StartIndex int32  `yaml:"start_index,omitempty" json:"start_index,omitempty"`
	EndIndex   int32  `yaml:"end_index,omitempty"   json:"end_index,omitempty"`
}
