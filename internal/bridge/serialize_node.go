package bridge

import (
	"strconv"
	"strings"

	"github.com/mj1618/axbridge/internal/model"
)

// AccessibleName computes the name of a record: a node's content description,
// else its text, else (when recursive) the names of its ordered children.
// Windows use their title.
func (t *Tree) AccessibleName(id int32, recursive bool) string {
	slot, ok := t.index[id]
	if !ok {
		return ""
	}
	in := &t.slots[slot]
	if !in.isNode() {
		return in.window.StringProp(model.WindowTitle)
	}
	if desc := in.node.StringProp(model.NodeContentDescription); desc != "" {
		return desc
	}
	if text := in.node.StringProp(model.NodeText); text != "" {
		return text
	}
	if !recursive {
		return ""
	}
	var parts []string
	for _, c := range t.OrderedChildren(id) {
		if name := t.AccessibleName(c, true); name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

// serializeContext is the per-event state node serialization depends on.
type serializeContext struct {
	fullFocus    bool
	notification bool
	liveStatus   map[int32]model.LiveRegionType
}

// serializeRecord converts one record into its host representation.
func serializeRecord(t *Tree, id int32, sc serializeContext) model.Element {
	slot, ok := t.index[id]
	if !ok {
		return model.Element{ID: id}
	}
	in := &t.slots[slot]
	el := model.Element{
		ID:       id,
		Bounds:   in.bounds().Array(),
		Children: t.OrderedChildren(id),
	}
	if in.isNode() {
		serializeNode(t, slot, sc, &el)
	} else {
		serializeWindow(t, slot, sc, &el)
	}
	return el
}

func serializeWindow(t *Tree, slot int, sc serializeContext, el *model.Element) {
	w := t.slots[slot].window
	isRoot := slot == t.root
	if sc.notification {
		el.Role = model.RoleGroup
	} else {
		el.Role = model.MapWindowRole(w.Type, isRoot)
	}
	el.Name = w.StringProp(model.WindowTitle)
	if isRoot {
		el.Modal = !sc.notification
		el.Focusable = true
	}
}

func serializeNode(t *Tree, slot int, sc serializeContext, el *model.Element) {
	n := t.slots[slot].node
	el.Role = model.MapRole(n)
	el.ClassName = n.ClassName()
	el.Description = n.StringProp(model.NodeStateDescription)

	focusable := n.BoolProp(model.NodeFocusable)
	if sc.fullFocus {
		focusable = t.isFocusableInFullFocusMode(slot)
	}
	el.Focusable = focusable

	if n.BoolProp(model.NodeEditable) {
		el.Value = n.StringProp(model.NodeText)
		el.Name = n.StringProp(model.NodeContentDescription)
		if el.Name == "" {
			el.Name = n.StringProp(model.NodeHintText)
		}
	} else {
		// Focus targets speak for their subtree.
		el.Name = t.AccessibleName(n.ID, focusable)
	}

	el.Selected = n.BoolProp(model.NodeSelected)
	if n.HasBoolProp(model.NodeEnabled) && !n.BoolProp(model.NodeEnabled) {
		disabled := false
		el.Enabled = &disabled
	}
	if live, ok := sc.liveStatus[n.ID]; ok && live != model.LiveRegionNone {
		el.LiveStatus = live.String()
	}

	if n.BoolProp(model.NodeFocusable) {
		el.Actions = append(el.Actions, "focus")
	}
	if n.BoolProp(model.NodeClickable) {
		el.Actions = append(el.Actions, "click")
	}
	if n.BoolProp(model.NodeLongClickable) {
		el.Actions = append(el.Actions, "long-click")
	}
	if n.BoolProp(model.NodeScrollable) {
		el.Actions = append(el.Actions, "scroll-forward", "scroll-backward")
	}
	if n.BoolProp(model.NodeEditable) {
		el.Actions = append(el.Actions, "set-text")
	}

	if n.BoolProp(model.NodeCheckable) {
		el.SetAttr("checked", strconv.FormatBool(n.BoolProp(model.NodeChecked)))
	}
	if r := n.RangeInfo; r != nil {
		el.Value = formatFloat(r.Current)
		el.SetAttr("min", formatFloat(r.Min))
		el.SetAttr("max", formatFloat(r.Max))
	}
	if ci := n.CollectionItem; ci != nil {
		el.SetAttr("row", strconv.Itoa(int(ci.RowIndex)))
		el.SetAttr("column", strconv.Itoa(int(ci.ColumnIndex)))
	}
	if res := n.StringProp(model.NodeViewIDResourceName); res != "" {
		el.SetAttr("resource-id", res)
	}
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
