package registry

import "testing"

func TestResolveAssignsDenseIDs(t *testing.T) {
	reg := New()
	if id := reg.Resolve("Alice"); id != 0 {
		t.Fatalf("expected first id 0, got %d", id)
	}
	if id := reg.Resolve("Bob"); id != 1 {
		t.Fatalf("expected second id 1, got %d", id)
	}
	if id := reg.Resolve("Alice"); id != 0 {
		t.Fatalf("expected repeated name to keep id 0, got %d", id)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 senders, got %d", reg.Len())
	}
}

func TestNameLookup(t *testing.T) {
	reg := New()
	reg.Resolve("Alice")
	if name := reg.Name(0); name != "Alice" {
		t.Fatalf("expected Alice, got %q", name)
	}
	if name := reg.Name(5); name != "" {
		t.Fatalf("expected empty name for unknown id, got %q", name)
	}
	if name := reg.Name(-1); name != "" {
		t.Fatalf("expected empty name for negative id, got %q", name)
	}
}
