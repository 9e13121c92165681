package model

import "testing"

func focusPtr(id int32) *int32 { return &id }

func buildClientTree(t *testing.T, root int32, focus *int32, nodes ...Element) *ClientTree {
	t.Helper()
	ct := NewClientTree()
	err := ct.Apply(TreeUpdate{
		NodeIDToClear: root,
		RootID:        root,
		Nodes:         nodes,
		TreeData:      &TreeData{TreeID: "tree", FocusID: focus},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	return ct
}

func TestFlatten_NestedPath(t *testing.T) {
	ct := buildClientTree(t, 1, nil,
		Element{ID: 1, Role: "app", Name: "Main", Children: []int32{2}},
		Element{ID: 2, Role: "group", Name: "Nav", Children: []int32{3}},
		Element{ID: 3, Role: "btn", Name: "Back"},
	)
	result := ct.Flatten()
	if len(result) != 3 {
		t.Fatalf("expected 3 flat elements, got %d", len(result))
	}
	if result[0].Path != "app" {
		t.Errorf("expected path 'app', got %q", result[0].Path)
	}
	if result[1].Path != "app > group" {
		t.Errorf("expected path 'app > group', got %q", result[1].Path)
	}
	if result[2].Path != "app > group > btn" {
		t.Errorf("expected path 'app > group > btn', got %q", result[2].Path)
	}
}

func TestFlatten_TraversalOrder(t *testing.T) {
	ct := buildClientTree(t, 1, nil,
		Element{ID: 1, Role: "app", Children: []int32{2, 4}},
		Element{ID: 2, Role: "group", Children: []int32{3}},
		Element{ID: 3, Role: "btn", Name: "A"},
		Element{ID: 4, Role: "btn", Name: "B"},
	)
	result := ct.Flatten()
	expectedIDs := []int32{1, 2, 3, 4}
	if len(result) != len(expectedIDs) {
		t.Fatalf("expected %d elements, got %d", len(expectedIDs), len(result))
	}
	for i, want := range expectedIDs {
		if result[i].ID != want {
			t.Errorf("element %d: expected ID %d, got %d", i, want, result[i].ID)
		}
	}
}

func TestFlatten_PreservesFields(t *testing.T) {
	f := false
	ct := buildClientTree(t, 7, focusPtr(7), Element{
		ID:          7,
		Role:        "input",
		Name:        "Search",
		Value:       "hello",
		Description: "Search field",
		Bounds:      [4]int{100, 200, 300, 40},
		Enabled:     &f,
		Selected:    true,
		LiveStatus:  "polite",
		Actions:     []string{"click"},
	})
	result := ct.Flatten()
	if len(result) != 1 {
		t.Fatalf("expected 1 element, got %d", len(result))
	}
	el := result[0]
	if el.Name != "Search" || el.Value != "hello" || el.Description != "Search field" {
		t.Errorf("unexpected text fields: %+v", el)
	}
	if el.Bounds != [4]int{100, 200, 300, 40} {
		t.Errorf("unexpected bounds: %v", el.Bounds)
	}
	if !el.Focused {
		t.Error("expected focused=true from tree data")
	}
	if el.Enabled == nil || *el.Enabled != false {
		t.Error("expected enabled=false")
	}
	if !el.Selected || el.LiveStatus != "polite" {
		t.Errorf("unexpected state: %+v", el)
	}
	if len(el.Actions) != 1 || el.Actions[0] != "click" {
		t.Errorf("unexpected actions: %v", el.Actions)
	}
}

func TestFlatten_Empty(t *testing.T) {
	if result := NewClientTree().Flatten(); len(result) != 0 {
		t.Errorf("expected 0 elements for empty tree, got %d", len(result))
	}
}
