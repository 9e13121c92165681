package model

// NodeBoolProperty keys the boolean property bag of a node.
type NodeBoolProperty string

const (
	NodeVisibleToUser         NodeBoolProperty = "VISIBLE_TO_USER"
	NodeImportance            NodeBoolProperty = "IMPORTANCE"
	NodeFocusable             NodeBoolProperty = "FOCUSABLE"
	NodeClickable             NodeBoolProperty = "CLICKABLE"
	NodeLongClickable         NodeBoolProperty = "LONG_CLICKABLE"
	NodeScreenReaderFocusable NodeBoolProperty = "SCREEN_READER_FOCUSABLE"
	NodeSelected              NodeBoolProperty = "SELECTED"
	NodeCheckable             NodeBoolProperty = "CHECKABLE"
	NodeChecked               NodeBoolProperty = "CHECKED"
	NodeEditable              NodeBoolProperty = "EDITABLE"
	NodeScrollable            NodeBoolProperty = "SCROLLABLE"
	NodeEnabled               NodeBoolProperty = "ENABLED"
)

// NodeIntProperty keys the integer property bag of a node.
type NodeIntProperty string

const (
	NodeLiveRegion NodeIntProperty = "LIVE_REGION"
)

// NodeStringProperty keys the string property bag of a node.
type NodeStringProperty string

const (
	NodeText               NodeStringProperty = "TEXT"
	NodeContentDescription NodeStringProperty = "CONTENT_DESCRIPTION"
	NodeClassName          NodeStringProperty = "CLASS_NAME"
	NodeHintText           NodeStringProperty = "HINT_TEXT"
	NodeViewIDResourceName NodeStringProperty = "VIEW_ID_RESOURCE_NAME"
	NodeStateDescription   NodeStringProperty = "STATE_DESCRIPTION"
)

// NodeIntListProperty keys the integer-list property bag of a node.
type NodeIntListProperty string

const (
	NodeChildNodeIDs NodeIntListProperty = "CHILD_NODE_IDS"
)

// LiveRegionType is the value of the LIVE_REGION node property.
type LiveRegionType int32

const (
	LiveRegionNone      LiveRegionType = 0
	LiveRegionPolite    LiveRegionType = 1
	LiveRegionAssertive LiveRegionType = 2
)

// String returns the live status name used in serialized output.
func (l LiveRegionType) String() string {
	switch l {
	case LiveRegionPolite:
		return "polite"
	case LiveRegionAssertive:
		return "assertive"
	default:
		return "off"
	}
}

// RangeInfo describes a node with a numeric value, such as a progress bar.
type RangeInfo struct {
	Type    int32   `yaml:"type"    json:"type"`
	Min     float32 `yaml:"min"     json:"min"`
	Max     float32 `yaml:"max"     json:"max"`
	Current float32 `yaml:"current" json:"current"`
}

// CollectionItemInfo describes a node's position inside a list or grid.
type CollectionItemInfo struct {
	RowIndex    int32 `yaml:"row"                json:"row"`
	ColumnIndex int32 `yaml:"column"             json:"column"`
	RowSpan     int32 `yaml:"row_span,omitempty" json:"row_span,omitempty"`
	ColumnSpan  int32 `yaml:"col_span,omitempty" json:"col_span,omitempty"`
	Selected    bool  `yaml:"selected,omitempty" json:"selected,omitempty"`
}

// NodeInfo is one Android accessibility node as delivered with an event.
type NodeInfo struct {
	ID             int32                           `yaml:"id"                        json:"id"`
	WindowID       int32                           `yaml:"window"                    json:"window"`
	Bounds         Rect                            `yaml:"bounds"                    json:"bounds"`
	IsVirtual      bool                            `yaml:"virtual,omitempty"         json:"virtual,omitempty"`
	Bools          map[NodeBoolProperty]bool       `yaml:"bools,omitempty"           json:"bools,omitempty"`
	Ints           map[NodeIntProperty]int32       `yaml:"ints,omitempty"            json:"ints,omitempty"`
	Strings        map[NodeStringProperty]string   `yaml:"strings,omitempty"         json:"strings,omitempty"`
	IntLists       map[NodeIntListProperty][]int32 `yaml:"int_lists,omitempty"       json:"int_lists,omitempty"`
	RangeInfo      *RangeInfo                      `yaml:"range,omitempty"           json:"range,omitempty"`
	CollectionItem *CollectionItemInfo             `yaml:"collection_item,omitempty" json:"collection_item,omitempty"`
}

// BoolProp returns a boolean node property. Absent properties are false.
func (n *NodeInfo) BoolProp(p NodeBoolProperty) bool {
	return n.Bools[p]
}

// HasBoolProp reports whether the boolean node property is present.
func (n *NodeInfo) HasBoolProp(p NodeBoolProperty) bool {
	_, ok := n.Bools[p]
	return ok
}

// IntProp returns an integer node property.
func (n *NodeInfo) IntProp(p NodeIntProperty) (int32, bool) {
	v, ok := n.Ints[p]
	return v, ok
}

// StringProp returns a string node property, or "" if absent.
func (n *NodeInfo) StringProp(p NodeStringProperty) string {
	return n.Strings[p]
}

// IntListProp returns an integer-list node property.
func (n *NodeInfo) IntListProp(p NodeIntListProperty) []int32 {
	return n.IntLists[p]
}

// ChildIDs returns the declared child node ids in declaration order.
func (n *NodeInfo) ChildIDs() []int32 {
	return n.IntLists[NodeChildNodeIDs]
}

// ClassName returns the Android view class of the node.
func (n *NodeInfo) ClassName() string {
	return n.Strings[NodeClassName]
}

// LiveRegion returns the node's live region type.
func (n *NodeInfo) LiveRegion() LiveRegionType {
	v, ok := n.Ints[NodeLiveRegion]
	if !ok {
		return LiveRegionNone
	}
	return LiveRegionType(v)
}
