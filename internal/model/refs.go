package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// slugRe matches characters that are not lowercase alphanumeric or hyphens.
var slugRe = regexp.MustCompile(`[^a-z0-9-]+`)

// slugify converts a label to a URL-safe slug: lowercase, hyphens for spaces/special chars.
func slugify(s string) string {
	s = strings.ToLower(s)
	s = slugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if len(s) > 40 {
		s = s[:40]
		s = strings.TrimRight(s, "-")
	}
	return s
}

// bestLabel returns the most stable label for an element: name, then state
// description. Value is excluded because it changes with user input.
func bestLabel(el Element) string {
	if el.Name != "" {
		return el.Name
	}
	return el.Description
}

// landmarkRoles always extend the ref path of their descendants.
var landmarkRoles = map[string]bool{
	RoleMenu: true,
	"list":   true,
	"tab":    true,
}

// skippedRoles never contribute to a ref path.
var skippedRoles = map[string]bool{
	RoleApplication: true,
	RoleWindow:      true,
	RoleKeyboard:    true,
	"scroll":        true,
	"web":           true,
}

func isLandmark(el Element) bool {
	if landmarkRoles[el.Role] {
		return true
	}
	// Labeled groups are landmarks.
	if el.Role == RoleGroup && bestLabel(el) != "" {
		return true
	}
	return false
}

// refSegment returns the path segment for an element.
func refSegment(el Element) string {
	if slug := slugify(bestLabel(el)); slug != "" {
		return slug
	}
	return el.Role
}

// isInteresting reports whether an element gets a ref: anything the user can
// operate, plus text that carries a name.
func isInteresting(el Element) bool {
	for _, a := range el.Actions {
		if a == "click" || a == "set-text" {
			return true
		}
	}
	switch el.Role {
	case "btn", "input", "combo", "chk", "toggle", "radio", "slider":
		return true
	case "txt":
		return el.Name != ""
	}
	return false
}

// Refs assigns stable path-based identifiers like "navigation-menu/settings"
// to the interesting elements reachable from the root. Refs survive id churn
// as long as an element's labels and landmarks stay the same. Duplicate refs
// get ".1", ".2" suffixes in pre-order.
func (t *ClientTree) Refs() map[int32]string {
	refs := make(map[int32]string)
	if !t.hasRoot {
		return refs
	}
	var order []int32
	visited := make(map[int32]bool, len(t.nodes))
	t.refsRecursive(t.rootID, "", visited, refs, &order)

	byRef := make(map[string][]int32, len(order))
	for _, id := range order {
		byRef[refs[id]] = append(byRef[refs[id]], id)
	}
	for ref, ids := range byRef {
		if len(ids) <= 1 {
			continue
		}
		for i, id := range ids {
			refs[id] = fmt.Sprintf("%s.%d", ref, i+1)
		}
	}
	return refs
}

func (t *ClientTree) refsRecursive(id int32, parentPath string, visited map[int32]bool, refs map[int32]string, order *[]int32) {
	el, ok := t.nodes[id]
	if !ok || visited[id] {
		return
	}
	visited[id] = true

	childPath := parentPath
	if isLandmark(el) && !skippedRoles[el.Role] {
		childPath = joinRef(parentPath, refSegment(el))
	}
	if isInteresting(el) {
		refs[id] = joinRef(parentPath, refSegment(el))
		*order = append(*order, id)
	}
	for _, child := range el.Children {
		t.refsRecursive(child, childPath, visited, refs, order)
	}
}

func joinRef(parent, seg string) string {
	if parent == "" {
		return seg
	}
	return parent + "/" + seg
}

// AnnotateRefs copies refs onto flattened elements.
func AnnotateRefs(elements []FlatElement, refs map[int32]string) {
	for i := range elements {
		elements[i].Ref = refs[elements[i].ID]
	}
}

// FindByRef returns the element whose ref is ref, or failing that the single
// element whose ref ends with "/"+ref. Ambiguous suffixes list the candidates.
func FindByRef(elements []FlatElement, ref string) (*FlatElement, error) {
	for i := range elements {
		if elements[i].Ref == ref {
			return &elements[i], nil
		}
	}

	var matches []*FlatElement
	for i := range elements {
		if strings.HasSuffix(elements[i].Ref, "/"+ref) {
			matches = append(matches, &elements[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, errors.Newf("no element matches ref %q", ref)
	case 1:
		return matches[0], nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "multiple elements match ref %q:\n", ref)
	for _, m := range matches {
		fmt.Fprintf(&b, "  ref=%q id=%d %s", m.Ref, m.ID, m.Role)
		if m.Name != "" {
			fmt.Fprintf(&b, " name=%q", m.Name)
		}
		fmt.Fprintln(&b)
	}
	return nil, errors.Newf("%s", b.String())
}
