package model

// RoleMap maps Android view class names to compact role codes.
var RoleMap = map[string]string{
	"android.widget.Button":                     "btn",
	"android.widget.ImageButton":                "btn",
	"android.widget.TextView":                   "txt",
	"android.widget.EditText":                   "input",
	"android.widget.AutoCompleteTextView":       "combo",
	"android.widget.MultiAutoCompleteTextView":  "combo",
	"android.widget.CheckBox":                   "chk",
	"android.widget.CheckedTextView":            "chk",
	"android.widget.Switch":                     "toggle",
	"android.widget.ToggleButton":               "toggle",
	"android.widget.RadioButton":                "radio",
	"android.widget.ImageView":                  "img",
	"android.widget.ListView":                   "list",
	"android.widget.GridView":                   "list",
	"androidx.recyclerview.widget.RecyclerView": "list",
	"android.widget.ScrollView":                 "scroll",
	"android.widget.HorizontalScrollView":       "scroll",
	"android.widget.ProgressBar":                "progress",
	"android.widget.SeekBar":                    "slider",
	"android.widget.Spinner":                    "popup",
	"android.widget.TabWidget":                  "tab",
	"android.webkit.WebView":                    "web",
	"android.widget.FrameLayout":                "group",
	"android.widget.LinearLayout":               "group",
	"android.widget.RelativeLayout":             "group",
	"android.view.ViewGroup":                    "group",
	"androidx.drawerlayout.widget.DrawerLayout": "group",
	"android.support.v4.widget.DrawerLayout":    "group",
}

// Role codes assigned outside RoleMap.
const (
	RoleApplication = "app"
	RoleWindow      = "window"
	RoleGroup       = "group"
	RoleKeyboard    = "keyboard"
	RoleSplitter    = "splitter"
	RoleMenu        = "menu"
	RoleOther       = "other"
)

// MetaRoles maps meta-role names to the concrete roles they expand to.
// "interactive" matches roles a user can operate directly.
var MetaRoles = map[string][]string{
	"interactive": {"btn", "input", "combo", "chk", "toggle", "radio", "slider", "popup"},
	"container":   {"app", "window", "group", "list", "scroll", "menu"},
}

// ExpandRoles expands any meta-roles in the given list to their concrete roles.
// Non-meta roles are passed through unchanged. Duplicates are removed.
func ExpandRoles(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	var expanded []string
	for _, r := range roles {
		if concrete, ok := MetaRoles[r]; ok {
			for _, c := range concrete {
				if !seen[c] {
					seen[c] = true
					expanded = append(expanded, c)
				}
			}
		} else if !seen[r] {
			seen[r] = true
			expanded = append(expanded, r)
		}
	}
	return expanded
}

// MapRole converts an Android class name to a compact code. Unknown classes
// fall back on the node's capabilities.
func MapRole(n *NodeInfo) string {
	if short, ok := RoleMap[n.ClassName()]; ok {
		return short
	}
	switch {
	case n.BoolProp(NodeEditable):
		return "input"
	case n.BoolProp(NodeCheckable):
		return "chk"
	case n.BoolProp(NodeClickable):
		return "btn"
	case n.RangeInfo != nil:
		return "progress"
	case len(n.ChildIDs()) > 0:
		return RoleGroup
	case n.StringProp(NodeText) != "":
		return "txt"
	}
	return RoleOther
}

// MapWindowRole converts a window type to a compact code. isRoot marks the
// first window of the task.
func MapWindowRole(t WindowType, isRoot bool) string {
	switch t {
	case WindowTypeApplication:
		if isRoot {
			return RoleApplication
		}
		return RoleGroup
	case WindowTypeInputMethod:
		return RoleKeyboard
	case WindowTypeSplitScreenDivider:
		return RoleSplitter
	case WindowTypeSystem, WindowTypeAccessibilityOverlay:
		return RoleWindow
	}
	return RoleWindow
}
