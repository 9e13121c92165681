package model

// FlatElement is an element with a path breadcrumb instead of child ids.
type FlatElement struct {
	ID          int32    `yaml:"i"              json:"i"`
	Role        string   `yaml:"r"              json:"r"`
	Name        string   `yaml:"n,omitempty"    json:"n,omitempty"`
	Value       string   `yaml:"v,omitempty"    json:"v,omitempty"`
	Description string   `yaml:"d,omitempty"    json:"d,omitempty"`
	Bounds      [4]int   `yaml:"b"              json:"b"`
	Focused     bool     `yaml:"f,omitempty"    json:"f,omitempty"`
	Enabled     *bool    `yaml:"e,omitempty"    json:"e,omitempty"`
	Selected    bool     `yaml:"s,omitempty"    json:"s,omitempty"`
	LiveStatus  string   `yaml:"live,omitempty" json:"live,omitempty"`
	Actions     []string `yaml:"a,omitempty"    json:"a,omitempty"`
	Path        string   `yaml:"p,omitempty"    json:"p,omitempty"`
	Ref         string   `yaml:"ref,omitempty"  json:"ref,omitempty"`
}

// Flatten converts the client tree into a flat pre-order list. Each element
// gets a path string showing its location in the tree using abbreviated role
// names joined with " > ". Nodes not reachable from the root are skipped.
func (t *ClientTree) Flatten() []FlatElement {
	if !t.hasRoot {
		return nil
	}
	var result []FlatElement
	visited := make(map[int32]bool, len(t.nodes))
	t.flattenRecursive(t.rootID, "", visited, &result)
	return result
}

func (t *ClientTree) flattenRecursive(id int32, parentPath string, visited map[int32]bool, result *[]FlatElement) {
	el, ok := t.nodes[id]
	if !ok || visited[id] {
		return
	}
	visited[id] = true

	currentPath := el.Role
	if parentPath != "" {
		currentPath = parentPath + " > " + el.Role
	}

	flat := FlatElement{
		ID:          el.ID,
		Role:        el.Role,
		Name:        el.Name,
		Value:       el.Value,
		Description: el.Description,
		Bounds:      el.Bounds,
		Focused:     t.focusID != nil && *t.focusID == el.ID,
		Enabled:     el.Enabled,
		Selected:    el.Selected,
		LiveStatus:  el.LiveStatus,
		Actions:     el.Actions,
		Path:        currentPath,
	}
	*result = append(*result, flat)

	for _, child := range el.Children {
		t.flattenRecursive(child, currentPath, visited, result)
	}
}
