package bridge

import (
	"github.com/mj1618/axbridge/internal/automation"
	"github.com/mj1618/axbridge/internal/model"
)

func rect(x, y, w, h int) model.Rect {
	return model.Rect{X: x, Y: y, Width: w, Height: h}
}

// window returns a focused application window.
func window(id, root int32, bounds model.Rect, childWindows ...int32) model.WindowInfo {
	w := model.WindowInfo{
		WindowID:   id,
		RootNodeID: root,
		Bounds:     bounds,
		Type:       model.WindowTypeApplication,
		Bools:      map[model.WindowBoolProperty]bool{model.WindowFocused: true},
	}
	if len(childWindows) > 0 {
		w.IntLists = map[model.WindowIntListProperty][]int32{model.WindowChildWindowIDs: childWindows}
	}
	return w
}

// node returns a visible, important node.
func node(id, win int32, bounds model.Rect, children ...int32) model.NodeInfo {
	n := model.NodeInfo{
		ID:       id,
		WindowID: win,
		Bounds:   bounds,
		Bools: map[model.NodeBoolProperty]bool{
			model.NodeVisibleToUser: true,
			model.NodeImportance:    true,
		},
	}
	if len(children) > 0 {
		n.IntLists = map[model.NodeIntListProperty][]int32{model.NodeChildNodeIDs: children}
	}
	return n
}

func with(n model.NodeInfo, props ...model.NodeBoolProperty) model.NodeInfo {
	for _, p := range props {
		n.Bools[p] = true
	}
	return n
}

func without(n model.NodeInfo, props ...model.NodeBoolProperty) model.NodeInfo {
	for _, p := range props {
		delete(n.Bools, p)
	}
	return n
}

func withString(n model.NodeInfo, p model.NodeStringProperty, v string) model.NodeInfo {
	if n.Strings == nil {
		n.Strings = make(map[model.NodeStringProperty]string)
	}
	n.Strings[p] = v
	return n
}

func withLive(n model.NodeInfo, l model.LiveRegionType) model.NodeInfo {
	n.Ints = map[model.NodeIntProperty]int32{model.NodeLiveRegion: int32(l)}
	return n
}

func event(typ model.EventType, source, win int32, windows []model.WindowInfo, nodes ...model.NodeInfo) *model.Event {
	return &model.Event{
		Type:     typ,
		SourceID: source,
		WindowID: win,
		Windows:  windows,
		Nodes:    nodes,
	}
}

func newTestBridge(fullFocus bool) (*Bridge, *automation.Recorder, *automation.ModeDelegate) {
	rec := automation.NewRecorder(nil)
	delegate := automation.NewModeDelegate(fullFocus)
	return New(delegate, rec, WithTreeID("test-tree")), rec, delegate
}

func focusedID(b *Bridge) int32 {
	id, ok := b.focus.focused()
	if !ok {
		return -1
	}
	return id
}
