package graph

import (
	"errors"
	"testing"
)

func TestFollowRedirectChain(t *testing.T) {
	g := New()
	a := g.AddClass(NewClass(Inferred("a")))
	b := g.Allocate()
	c := g.Allocate()
	g.Redirect(c, b)
	g.Redirect(b, a)

	if got := g.Follow(c); got != a {
		t.Errorf("Follow(%d) = %d, expected %d", c, got, a)
	}
	if g.Class(c) != g.Class(a) {
		t.Error("Class should resolve through redirect chains")
	}
}

func TestAddClassMergesEqualShapes(t *testing.T) {
	g := New()

	first := NewClass(Inferred("p"))
	first.Set("a", Prim(KindInteger))
	second := NewClass(Inferred("q"))
	second.Set("a", Prim(KindInteger))

	i := g.AddClass(first)
	j := g.AddClass(second)
	if i != j {
		t.Fatalf("equal shapes should share one entry, got %d and %d", i, j)
	}

	names := g.Class(i).Names.Names()
	if len(names) != 2 || names[0] != "p" || names[1] != "q" {
		t.Errorf("merged names = %v, expected [p q]", names)
	}

	third := NewClass(Inferred("r"))
	third.Set("a", Prim(KindString))
	if k := g.AddClass(third); k == i {
		t.Error("different shapes must not share an entry")
	}
}

func TestClassPropertyOrder(t *testing.T) {
	c := NewClass(Inferred("x"))
	c.Set("b", Prim(KindString))
	c.Set("a", Prim(KindInteger))
	c.Set("b", Prim(KindBool))

	props := c.Properties()
	if len(props) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(props))
	}
	if props[0].Name != "b" || props[1].Name != "a" {
		t.Errorf("property order = [%s %s], expected [b a]", props[0].Name, props[1].Name)
	}
	if props[0].Type.Kind != KindBool {
		t.Error("Set on an existing property should replace its type in place")
	}
}

func TestValidateReportsDanglingSlots(t *testing.T) {
	g := New()
	c := NewClass(Inferred("x"))
	c.Set("a", ArrayOf(None()))
	id := g.AddClass(c)
	g.AddTopLevel("X", ClassRef(id))

	var invErr *InvariantError
	if err := g.Validate(); !errors.As(err, &invErr) {
		t.Fatalf("expected an InvariantError for a dangling slot, got %v", err)
	}

	Canonicalize(g, true)
	if err := g.Validate(); err != nil {
		t.Errorf("canonicalized graph should validate, got %v", err)
	}
}

func TestValidateReportsEmptyEntries(t *testing.T) {
	g := New()
	id := g.Allocate()
	g.AddTopLevel("X", ClassRef(id))

	if err := g.Validate(); err == nil {
		t.Error("expected an error for a reference to an unfilled entry")
	}
}

func TestNameSetMerge(t *testing.T) {
	tests := []struct {
		name  string
		a, b  NameSet
		names []string
		given bool
	}{
		{"inferred union", Inferred("a"), Inferred("b", "a"), []string{"a", "b"}, false},
		{"given dominates left", Given("x"), Inferred("y"), []string{"x"}, true},
		{"given dominates right", Inferred("y"), Given("x"), []string{"x"}, true},
		{"given union", Given("x"), Given("y"), []string{"x", "y"}, true},
	}

	for _, test := range tests {
		got := MergeNames(test.a, test.b)
		if got.IsGiven() != test.given {
			t.Errorf("%s: IsGiven = %v, expected %v", test.name, got.IsGiven(), test.given)
		}
		names := got.Names()
		if len(names) != len(test.names) {
			t.Errorf("%s: names = %v, expected %v", test.name, names, test.names)
			continue
		}
		for i := range names {
			if names[i] != test.names[i] {
				t.Errorf("%s: names = %v, expected %v", test.name, names, test.names)
				break
			}
		}
	}
}

func TestNameSetAddGivenDiscardsInferred(t *testing.T) {
	s := Inferred("guess")
	s.AddGiven("Root")
	if !s.IsGiven() {
		t.Error("set should be given after AddGiven")
	}
	if len(s.Names()) != 1 || s.Primary() != "Root" {
		t.Errorf("names = %v, expected [Root]", s.Names())
	}
	s.AddInferred("other")
	if len(s.Names()) != 1 {
		t.Error("AddInferred must not extend a given set")
	}
}
