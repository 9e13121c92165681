package bridge

import (
	"strings"

	"github.com/mj1618/axbridge/internal/model"
)

var drawerLayoutClasses = map[string]bool{
	"androidx.drawerlayout.widget.DrawerLayout": true,
	"android.support.v4.widget.DrawerLayout":    true,
}

// drawerLayoutHook exposes an opened navigation drawer as a menu.
type drawerLayoutHook struct {
	name string
}

// drawerLayoutCandidate proposes a hook when a drawer layout announces a
// window state change: its first visible, important child is the drawer.
func drawerLayoutCandidate(t *Tree, ev *model.Event) (hookCandidate, bool) {
	if ev.Type != model.EventWindowStateChanged {
		return hookCandidate{}, false
	}
	n, ok := t.Node(ev.SourceID)
	if !ok || !drawerLayoutClasses[n.ClassName()] {
		return hookCandidate{}, false
	}
	for _, c := range t.DeclaredChildren(ev.SourceID) {
		slot := t.index[c]
		in := &t.slots[slot]
		if in.isNode() && in.isVisibleToUser() && in.isImportant() {
			return hookCandidate{
				id:   c,
				kind: hookDrawerLayout,
				hook: &drawerLayoutHook{name: strings.Join(ev.Text, " ")},
			}, true
		}
	}
	return hookCandidate{}, false
}

func (h *drawerLayoutHook) PreDispatchEvent(*Tree, *model.Event) bool { return false }

func (h *drawerLayoutHook) PostSerializeNode(el *model.Element) {
	el.Role = model.RoleMenu
	if h.name != "" {
		el.Name = h.name
	}
}
