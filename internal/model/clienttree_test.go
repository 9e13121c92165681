package model

import (
	"strings"
	"testing"
)

func TestClientTree_ApplyClearsSubtree(t *testing.T) {
	ct := buildClientTree(t, 1, nil,
		Element{ID: 1, Role: "app", Children: []int32{2}},
		Element{ID: 2, Role: "group", Children: []int32{3, 4}},
		Element{ID: 3, Role: "btn"},
		Element{ID: 4, Role: "btn"},
	)
	err := ct.Apply(TreeUpdate{
		NodeIDToClear: 2,
		RootID:        1,
		Nodes: []Element{
			{ID: 2, Role: "group", Children: []int32{5}},
			{ID: 5, Role: "txt", Name: "new"},
		},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	for _, id := range []int32{3, 4} {
		if _, ok := ct.Get(id); ok {
			t.Errorf("expected node %d to be cleared", id)
		}
	}
	if el, ok := ct.Get(5); !ok || el.Name != "new" {
		t.Errorf("expected node 5 installed, got %+v", el)
	}
	if ct.Len() != 3 {
		t.Errorf("expected 3 nodes, got %d", ct.Len())
	}
}

func TestClientTree_ApplyPrunesDroppedChildren(t *testing.T) {
	ct := buildClientTree(t, 1, nil,
		Element{ID: 1, Role: "app", Children: []int32{2, 3}},
		Element{ID: 2, Role: "group", Children: []int32{4}},
		Element{ID: 3, Role: "btn"},
		Element{ID: 4, Role: "btn"},
	)
	err := ct.Apply(TreeUpdate{
		NodeIDToClear: 3,
		RootID:        1,
		Nodes:         []Element{{ID: 1, Role: "app", Children: []int32{3}}},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	for _, id := range []int32{2, 4} {
		if _, ok := ct.Get(id); ok {
			t.Errorf("expected node %d to be pruned", id)
		}
	}
	if _, ok := ct.Get(3); !ok {
		t.Error("expected node 3 to survive")
	}
}

func TestClientTree_ApplyUnknownChild(t *testing.T) {
	ct := NewClientTree()
	err := ct.Apply(TreeUpdate{
		NodeIDToClear: 1,
		RootID:        1,
		Nodes:         []Element{{ID: 1, Role: "app", Children: []int32{9}}},
	})
	if err == nil {
		t.Fatal("expected error for unknown child")
	}
}

func TestClientTree_TreeDataAndReset(t *testing.T) {
	ct := buildClientTree(t, 1, focusPtr(1), Element{ID: 1, Role: "app"})
	if ct.TreeID() != "tree" {
		t.Errorf("expected tree id 'tree', got %q", ct.TreeID())
	}
	if id, ok := ct.FocusID(); !ok || id != 1 {
		t.Errorf("expected focus 1, got %d (%v)", id, ok)
	}
	if root, ok := ct.RootID(); !ok || root != 1 {
		t.Errorf("expected root 1, got %d (%v)", root, ok)
	}
	ct.Reset()
	if ct.Len() != 0 {
		t.Errorf("expected empty tree after reset, got %d", ct.Len())
	}
	if _, ok := ct.RootID(); ok {
		t.Error("expected no root after reset")
	}
}

func TestClientTree_ApplyBatch(t *testing.T) {
	ct := NewClientTree()
	err := ct.ApplyBatch(EventBatch{
		TreeID: "tree",
		Updates: []TreeUpdate{
			{NodeIDToClear: 1, RootID: 1, Nodes: []Element{{ID: 1, Role: "app", Children: []int32{2}}, {ID: 2, Role: "btn"}}},
			{NodeIDToClear: 2, RootID: 1, Nodes: []Element{{ID: 2, Role: "btn", Name: "OK"}}},
		},
	})
	if err != nil {
		t.Fatalf("apply batch: %v", err)
	}
	if el, _ := ct.Get(2); el.Name != "OK" {
		t.Errorf("expected second update to win, got %+v", el)
	}
}

func TestClientTree_ApplyRejectsSecondParent(t *testing.T) {
	ct := buildClientTree(t, 1, nil,
		Element{ID: 1, Role: "app", Children: []int32{2}},
		Element{ID: 2, Role: "group", Children: []int32{3, 4}},
		Element{ID: 3, Role: "group", Children: []int32{5}},
		Element{ID: 4, Role: "group"},
		Element{ID: 5, Role: "txt"},
	)
	err := ct.Apply(TreeUpdate{
		NodeIDToClear: 4,
		RootID:        1,
		Nodes: []Element{
			{ID: 4, Role: "group", Children: []int32{5}},
			{ID: 5, Role: "txt"},
		},
	})
	if err == nil {
		t.Fatal("expected an error when 3 still lists 5")
	}
	if !strings.Contains(err.Error(), "listed by both") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClientTree_ApplyMoveWithOldParent(t *testing.T) {
	ct := buildClientTree(t, 1, nil,
		Element{ID: 1, Role: "app", Children: []int32{2}},
		Element{ID: 2, Role: "group", Children: []int32{3, 4}},
		Element{ID: 3, Role: "group", Children: []int32{5}},
		Element{ID: 4, Role: "group"},
		Element{ID: 5, Role: "txt", Name: "moved"},
	)
	err := ct.Apply(TreeUpdate{
		NodeIDToClear: 4,
		RootID:        1,
		Nodes: []Element{
			{ID: 2, Role: "group", Children: []int32{3, 4}},
			{ID: 3, Role: "group"},
			{ID: 4, Role: "group", Children: []int32{5}},
			{ID: 5, Role: "txt", Name: "moved"},
		},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if el, _ := ct.Get(3); len(el.Children) != 0 {
		t.Errorf("expected 3 to have no children, got %v", el.Children)
	}
	if el, ok := ct.Get(5); !ok || el.Name != "moved" {
		t.Errorf("expected 5 kept under 4, got %+v", el)
	}
	if ct.Len() != 5 {
		t.Errorf("expected 5 nodes, got %d", ct.Len())
	}
}
