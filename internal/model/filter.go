package model

import "strings"

// FilterElements applies role and bounding box filters to a flattened tree,
// returning only matching elements. Path breadcrumbs are left untouched so
// matches keep their ancestry context.
func FilterElements(elements []FlatElement, roles []string, bbox *[4]int) []FlatElement {
	if len(roles) == 0 && bbox == nil {
		return elements
	}

	roleSet := make(map[string]bool, len(roles))
	for _, r := range ExpandRoles(roles) {
		roleSet[r] = true
	}

	var result []FlatElement
	for _, el := range elements {
		roleMatch := len(roleSet) == 0 || roleSet[el.Role]
		bboxMatch := bbox == nil || RectFromArray(el.Bounds).Intersects(RectFromArray(*bbox))
		if roleMatch && bboxMatch {
			result = append(result, el)
		}
	}
	return result
}

// FilterByText filters elements to those whose name, value, or description
// contains the given text (case-insensitive).
func FilterByText(elements []FlatElement, text string) []FlatElement {
	if text == "" {
		return elements
	}
	textLower := strings.ToLower(text)
	var result []FlatElement
	for _, el := range elements {
		if textMatchesElement(el, textLower) {
			result = append(result, el)
		}
	}
	return result
}

func textMatchesElement(el FlatElement, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Name), textLower) ||
		strings.Contains(strings.ToLower(el.Value), textLower) ||
		strings.Contains(strings.ToLower(el.Description), textLower)
}

// FilterByFocused keeps only the focused element.
func FilterByFocused(elements []FlatElement) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		if el.Focused {
			result = append(result, el)
		}
	}
	return result
}

// PruneEmptyGroups removes anonymous group/other elements (no name, value,
// or description). The path breadcrumbs of remaining elements are not
// modified, preserving full ancestry context.
func PruneEmptyGroups(elements []FlatElement) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		if (el.Role == RoleGroup || el.Role == RoleOther) &&
			el.Name == "" && el.Value == "" && el.Description == "" {
			continue
		}
		result = append(result, el)
	}
	return result
}

// ParseRoles splits a comma-separated --roles value, dropping blanks.
func ParseRoles(s string) []string {
	var roles []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// ElementFilter bundles the filters shared by the tree command and the
// read_tree tool.
type ElementFilter struct {
	Roles   []string
	BBox    *[4]int
	Text    string
	Focused bool
	// Prune drops anonymous groups. Web content is always pruned.
	Prune bool
}

// Apply runs every configured filter over a flattened tree.
func (f ElementFilter) Apply(elements []FlatElement) []FlatElement {
	hasWeb := HasWebContent(elements)
	if f.Prune || hasWeb {
		elements = PruneEmptyGroups(elements)
	}
	roles, _ := ExpandRolesForWeb(ExpandRoles(f.Roles), hasWeb)
	elements = FilterElements(elements, roles, f.BBox)
	elements = FilterByText(elements, f.Text)
	if f.Focused {
		elements = FilterByFocused(elements)
	}
	return elements
}
