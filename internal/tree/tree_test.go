package tree

import (
	"testing"

	"github.com/groblegark/procmap/internal/model"
)

func proc(id, name string, parentID *string, order int) *model.Process {
	return &model.Process{
		ID:       id,
		Name:     name,
		AreaID:   "ar-test",
		ParentID: parentID,
		Order:    order,
	}
}

func ptr(s string) *string { return &s }

func TestAssembleEmpty(t *testing.T) {
	forest := Assemble(nil)
	if len(forest) != 0 {
		t.Fatalf("expected empty forest, got %d roots", len(forest))
	}

	forest = Assemble([]*model.Process{})
	if len(forest) != 0 {
		t.Fatalf("expected empty forest, got %d roots", len(forest))
	}
}

func TestAssembleRoots(t *testing.T) {
	forest := Assemble([]*model.Process{
		proc("1", "Root A", nil, 0),
		proc("2", "Root B", nil, 1),
	})

	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}
	for _, root := range forest {
		if len(root.Children) != 0 {
			t.Errorf("root %s: expected no children, got %d", root.ID, len(root.Children))
		}
		if root.Children == nil {
			t.Errorf("root %s: children must be non-nil for JSON output", root.ID)
		}
	}
	if forest[0].Name != "Root A" || forest[1].Name != "Root B" {
		t.Errorf("roots out of order: %s, %s", forest[0].Name, forest[1].Name)
	}
}

func TestAssembleNesting(t *testing.T) {
	forest := Assemble([]*model.Process{
		proc("1", "Level 0", nil, 0),
		proc("2", "Level 1", ptr("1"), 0),
		proc("3", "Level 2", ptr("2"), 0),
	})

	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	level2 := forest[0].Children[0].Children[0]
	if level2.Name != "Level 2" {
		t.Errorf("expected Level 2 at depth 2, got %q", level2.Name)
	}
}

func TestAssembleDropsOrphans(t *testing.T) {
	forest := Assemble([]*model.Process{
		proc("1", "Root", nil, 0),
		proc("2", "Orphan", ptr("does-not-exist"), 0),
	})

	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	if len(forest[0].Children) != 0 {
		t.Errorf("orphan must not appear as a child, got %d children", len(forest[0].Children))
	}
}

func TestAssembleSiblingOrderStable(t *testing.T) {
	forest := Assemble([]*model.Process{
		proc("1", "Root", nil, 0),
		proc("2", "First", ptr("1"), 0),
		proc("3", "Second", ptr("1"), 1),
		proc("4", "Third", ptr("1"), 2),
	})

	children := forest[0].Children
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if children[i].Name != want {
			t.Errorf("child %d: got %q, want %q", i, children[i].Name, want)
		}
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	input := []*model.Process{
		proc("1", "A", nil, 0),
		proc("2", "A.1", ptr("1"), 0),
		proc("3", "A.2", ptr("1"), 1),
		proc("4", "A.2.1", ptr("3"), 0),
		proc("5", "B", nil, 1),
	}

	flat := Flatten(Assemble(input))
	if len(flat) != len(input) {
		t.Fatalf("expected %d records, got %d", len(input), len(flat))
	}

	// Pre-order: A, A.1, A.2, A.2.1, B.
	want := []string{"1", "2", "3", "4", "5"}
	for i, id := range want {
		if flat[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, flat[i].ID, id)
		}
	}

	// Every parent edge from the input survives.
	index := make(map[string]*model.Process)
	for _, p := range flat {
		index[p.ID] = p
	}
	for _, p := range input {
		got, ok := index[p.ID]
		if !ok {
			t.Fatalf("record %s missing after round trip", p.ID)
		}
		switch {
		case p.ParentID == nil && got.ParentID != nil:
			t.Errorf("record %s: gained a parent", p.ID)
		case p.ParentID != nil && (got.ParentID == nil || *got.ParentID != *p.ParentID):
			t.Errorf("record %s: parent edge lost", p.ID)
		}
	}
}

func TestFilter(t *testing.T) {
	forest := Assemble([]*model.Process{
		proc("1", "Finance", nil, 0),
		proc("2", "Accounts payable", ptr("1"), 0),
		proc("3", "Invoice validation", ptr("2"), 0),
		proc("4", "Hiring", nil, 1),
	})

	got := Filter(forest, "invoice")
	if len(got) != 1 {
		t.Fatalf("expected 1 root, got %d", len(got))
	}
	// Ancestors of a match are kept, siblings that don't match are pruned.
	if got[0].Name != "Finance" {
		t.Errorf("expected Finance root, got %q", got[0].Name)
	}
	if got[0].Children[0].Children[0].Name != "Invoice validation" {
		t.Errorf("match not reachable in filtered tree")
	}

	// A matching interior node keeps only matching descendants.
	got = Filter(forest, "accounts")
	if len(got) != 1 || got[0].Children[0].Name != "Accounts payable" {
		t.Fatalf("expected Accounts payable under Finance")
	}

	// Empty query is a no-op.
	if got := Filter(forest, "  "); len(got) != len(forest) {
		t.Errorf("blank query should return the forest unchanged")
	}

	// No match.
	if got := Filter(forest, "zzz"); len(got) != 0 {
		t.Errorf("expected empty result, got %d roots", len(got))
	}
}
