package model

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Search", "search"},
		{"Full Name", "full-name"},
		{"OK", "ok"},
		{"Navigation menu", "navigation-menu"},
		{"hello---world", "hello-world"},
		{"  spaces  ", "spaces"},
		{"Special!@#$%Chars", "special-chars"},
		{"Inbox (23288 unread)", "inbox-23288-unread"},
		{"", ""},
	}
	for _, tt := range tests {
		got := slugify(tt.input)
		if got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBestLabel(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want string
	}{
		{"name", Element{Name: "Search"}, "Search"},
		{"description", Element{Description: "Checked"}, "Checked"},
		{"name over description", Element{Name: "Search", Description: "Checked"}, "Search"},
		{"value ignored", Element{Value: "typed"}, ""},
		{"empty", Element{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bestLabel(tt.el); got != tt.want {
				t.Errorf("bestLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func refsFixture(t *testing.T) *ClientTree {
	return buildClientTree(t, 1, nil,
		Element{ID: 1, Role: "app", Children: []int32{2, 5, 9}},
		Element{ID: 2, Role: "group", Name: "Nav", Children: []int32{3, 4}},
		Element{ID: 3, Role: "btn", Name: "Back", Actions: []string{"click"}},
		Element{ID: 4, Role: "input", Name: "Search"},
		Element{ID: 5, Role: "scroll", Children: []int32{6}},
		Element{ID: 6, Role: "list", Children: []int32{7, 8}},
		Element{ID: 7, Role: "txt", Name: "Item"},
		Element{ID: 8, Role: "txt", Name: "Item"},
		Element{ID: 9, Role: "group", Children: []int32{10, 11}},
		Element{ID: 10, Role: "btn", Name: "Submit", Actions: []string{"click"}},
		Element{ID: 11, Role: "img"},
	)
}

func TestClientTree_Refs(t *testing.T) {
	refs := refsFixture(t).Refs()

	want := map[int32]string{
		3:  "nav/back",
		4:  "nav/search",
		7:  "list/item.1",
		8:  "list/item.2",
		10: "submit",
	}
	if len(refs) != len(want) {
		t.Errorf("expected %d refs, got %d: %v", len(want), len(refs), refs)
	}
	for id, ref := range want {
		if refs[id] != ref {
			t.Errorf("ref of %d = %q, want %q", id, refs[id], ref)
		}
	}
}

func TestClientTree_RefsEmptyTree(t *testing.T) {
	if refs := NewClientTree().Refs(); len(refs) != 0 {
		t.Errorf("expected no refs, got %v", refs)
	}
}

func TestFindByRef(t *testing.T) {
	ct := refsFixture(t)
	elements := ct.Flatten()
	AnnotateRefs(elements, ct.Refs())

	tests := []struct {
		ref    string
		wantID int32
	}{
		{"nav/back", 3},
		{"search", 4},
		{"item.1", 7},
		{"submit", 10},
	}
	for _, tt := range tests {
		el, err := FindByRef(elements, tt.ref)
		if err != nil {
			t.Errorf("FindByRef(%q): %v", tt.ref, err)
			continue
		}
		if el.ID != tt.wantID {
			t.Errorf("FindByRef(%q) = %d, want %d", tt.ref, el.ID, tt.wantID)
		}
	}

	if _, err := FindByRef(elements, "item"); err == nil {
		t.Error("expected no match for a ref without its suffix")
	}
}

func TestFindByRef_Ambiguous(t *testing.T) {
	elements := []FlatElement{
		{ID: 2, Role: "btn", Name: "OK", Ref: "dialog/ok"},
		{ID: 4, Role: "btn", Name: "OK", Ref: "menu/ok"},
	}
	_, err := FindByRef(elements, "ok")
	if err == nil {
		t.Fatal("expected error for ambiguous ref")
	}
	if !strings.Contains(err.Error(), "menu/ok") {
		t.Errorf("expected candidates in error, got %v", err)
	}
}
