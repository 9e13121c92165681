package model

import "slices"

// WebView content arrives as deep stacks of anonymous android.view.View
// nodes. Form fields inside it often have no widget class and no editable
// flag, so they map to RoleOther.

// HasWebContent reports whether a flattened tree holds a WebView.
func HasWebContent(elements []FlatElement) bool {
	return slices.ContainsFunc(elements, func(el FlatElement) bool { return el.Role == "web" })
}

// ExpandRolesForWeb adds RoleOther to a filter that asks for inputs when the
// tree holds web content, and reports whether it did.
func ExpandRolesForWeb(roles []string, hasWeb bool) ([]string, bool) {
	if !hasWeb || !slices.Contains(roles, "input") || slices.Contains(roles, RoleOther) {
		return roles, false
	}
	return append(slices.Clip(roles), RoleOther), true
}
