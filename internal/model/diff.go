package model

import "fmt"

// ChangeType is the kind of change between two flattenings of the client
// tree.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
	// ChangeFocus reports that focus moved to another element, or away.
	ChangeFocus ChangeType = "focus"
	// ChangeLive reports new text in a live region, as the host would
	// announce it.
	ChangeLive ChangeType = "live"
)

// UIChange is one entry of a client tree diff. Which fields are set depends
// on Type:
//
//	added    Element, Path
//	removed  ID, Role, Name
//	changed  ID, Changes
//	focus    ID (0 when nothing is focused), From
//	live     ID, Live, Name, Changes
type UIChange struct {
	Type    ChangeType           `yaml:"type"              json:"type"`
	ID      int32                `yaml:"id,omitempty"      json:"id,omitempty"`
	Element *FlatElement         `yaml:"el,omitempty"      json:"el,omitempty"`
	Path    string               `yaml:"p,omitempty"       json:"p,omitempty"`
	Role    string               `yaml:"r,omitempty"       json:"r,omitempty"`
	Name    string               `yaml:"n,omitempty"       json:"n,omitempty"`
	From    int32                `yaml:"from,omitempty"    json:"from,omitempty"`
	Live    string               `yaml:"live,omitempty"    json:"live,omitempty"`
	Changes map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"`
}

// DiffElements compares two flattenings of the client tree. Elements are
// matched by Android id, which is stable across events. Added, changed and
// live entries follow curr's order, removals follow prev's, and a focus
// move comes last.
func DiffElements(prev, curr []FlatElement) []UIChange {
	before := make(map[int32]FlatElement, len(prev))
	for _, el := range prev {
		before[el.ID] = el
	}

	var changes []UIChange
	seen := make(map[int32]bool, len(curr))
	for _, el := range curr {
		seen[el.ID] = true
		old, ok := before[el.ID]
		if !ok {
			added := el
			changes = append(changes, UIChange{Type: ChangeAdded, Element: &added, Path: el.Path})
			continue
		}
		if c, ok := diffElement(old, el); ok {
			changes = append(changes, c)
		}
	}

	for _, el := range prev {
		if !seen[el.ID] {
			changes = append(changes, UIChange{Type: ChangeRemoved, ID: el.ID, Role: el.Role, Name: el.Name})
		}
	}

	if from, to := focusedID(prev), focusedID(curr); from != to {
		changes = append(changes, UIChange{Type: ChangeFocus, ID: to, From: from})
	}
	return changes
}

// diffElement describes how el changed. Text changes inside a live region
// become a live entry; everything else is a changed entry.
func diffElement(old, el FlatElement) (UIChange, bool) {
	diffs := diffProperties(old, el)
	if diffs == nil {
		return UIChange{}, false
	}
	_, textChanged := diffs["n"]
	if el.LiveStatus != "" && textChanged {
		return UIChange{Type: ChangeLive, ID: el.ID, Live: el.LiveStatus, Name: el.Name, Changes: diffs}, true
	}
	return UIChange{Type: ChangeChanged, ID: el.ID, Changes: diffs}, true
}

// diffProperties returns the fields that differ between two versions of an
// element, keyed by their short output names. Focus is left to the focus
// entry.
func diffProperties(prev, curr FlatElement) map[string][2]string {
	diffs := make(map[string][2]string)
	str := func(key, a, b string) {
		if a != b {
			diffs[key] = [2]string{a, b}
		}
	}
	flag := func(key string, a, b bool) {
		if a != b {
			diffs[key] = [2]string{fmt.Sprint(a), fmt.Sprint(b)}
		}
	}

	str("r", prev.Role, curr.Role)
	str("n", prev.Name, curr.Name)
	str("v", prev.Value, curr.Value)
	str("d", prev.Description, curr.Description)
	str("live", prev.LiveStatus, curr.LiveStatus)
	flag("s", prev.Selected, curr.Selected)
	if prev.Enabled != nil && curr.Enabled != nil {
		flag("e", *prev.Enabled, *curr.Enabled)
	}
	if prev.Bounds != curr.Bounds {
		diffs["b"] = [2]string{fmt.Sprint(prev.Bounds), fmt.Sprint(curr.Bounds)}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func focusedID(elements []FlatElement) int32 {
	for _, el := range elements {
		if el.Focused {
			return el.ID
		}
	}
	return 0
}
