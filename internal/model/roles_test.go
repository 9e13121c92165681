package model

import "testing"

func TestMapRole_KnownClasses(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"android.widget.Button", "btn"},
		{"android.widget.TextView", "txt"},
		{"android.widget.EditText", "input"},
		{"android.widget.AutoCompleteTextView", "combo"},
		{"android.widget.CheckBox", "chk"},
		{"android.widget.Switch", "toggle"},
		{"android.widget.ImageView", "img"},
		{"androidx.recyclerview.widget.RecyclerView", "list"},
		{"android.widget.ProgressBar", "progress"},
		{"android.webkit.WebView", "web"},
		{"androidx.drawerlayout.widget.DrawerLayout", "group"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := &NodeInfo{Strings: map[NodeStringProperty]string{NodeClassName: tt.input}}
			got := MapRole(n)
			if got != tt.want {
				t.Errorf("MapRole(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMapRole_CapabilityFallback(t *testing.T) {
	tests := []struct {
		name string
		node NodeInfo
		want string
	}{
		{"editable", NodeInfo{Bools: map[NodeBoolProperty]bool{NodeEditable: true}}, "input"},
		{"checkable", NodeInfo{Bools: map[NodeBoolProperty]bool{NodeCheckable: true}}, "chk"},
		{"clickable", NodeInfo{Bools: map[NodeBoolProperty]bool{NodeClickable: true}}, "btn"},
		{"range", NodeInfo{RangeInfo: &RangeInfo{Max: 100}}, "progress"},
		{"container", NodeInfo{IntLists: map[NodeIntListProperty][]int32{NodeChildNodeIDs: {3}}}, "group"},
		{"text", NodeInfo{Strings: map[NodeStringProperty]string{NodeText: "hi"}}, "txt"},
		{"empty", NodeInfo{}, "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRole(&tt.node)
			if got != tt.want {
				t.Errorf("MapRole(%s) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestMapWindowRole(t *testing.T) {
	tests := []struct {
		typ    WindowType
		isRoot bool
		want   string
	}{
		{WindowTypeApplication, true, "app"},
		{WindowTypeApplication, false, "group"},
		{WindowTypeInputMethod, false, "keyboard"},
		{WindowTypeSplitScreenDivider, false, "splitter"},
		{WindowTypeSystem, true, "window"},
		{WindowTypeAccessibilityOverlay, false, "window"},
		{"", false, "window"},
	}
	for _, tt := range tests {
		got := MapWindowRole(tt.typ, tt.isRoot)
		if got != tt.want {
			t.Errorf("MapWindowRole(%q, %v) = %q, want %q", tt.typ, tt.isRoot, got, tt.want)
		}
	}
}

func TestExpandRoles(t *testing.T) {
	got := ExpandRoles([]string{"interactive", "btn", "txt"})
	want := []string{"btn", "input", "combo", "chk", "toggle", "radio", "slider", "popup", "txt"}
	if len(got) != len(want) {
		t.Fatalf("expected %d roles, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("role %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
