package graph

import (
	"testing"
)

func TestUnifyPrimitives(t *testing.T) {
	g := New()
	u := NewUnifier(g, true)

	if got := u.Unify(Prim(KindString), Prim(KindString)); got.Kind != KindString {
		t.Errorf("string with string = %s, expected string", got.Kind)
	}

	mixed := u.Unify(Prim(KindInteger), Prim(KindDouble))
	if mixed.Kind != KindUnion {
		t.Fatalf("integer with double = %s, expected union", mixed.Kind)
	}
	if !mixed.Union.Has(PrimInteger) || !mixed.Union.Has(PrimDouble) {
		t.Error("both numeric bits should be set")
	}
	if single, ok := mixed.Union.Single(); !ok || single.Kind != KindDouble {
		t.Error("mixed numbers should render as double")
	}

	cross := u.Unify(Prim(KindString), Prim(KindBool))
	if cross.Kind != KindUnion || !cross.Union.Has(PrimString) || !cross.Union.Has(PrimBool) {
		t.Errorf("string with bool should be a two-member union, got %v", cross)
	}
}

func TestUnifyNoInformation(t *testing.T) {
	g := New()
	u := NewUnifier(g, true)

	if got := u.Unify(None(), Prim(KindInteger)); got.Kind != KindInteger {
		t.Errorf("none with integer = %s, expected integer", got.Kind)
	}
	if got := u.Unify(ArrayOf(None()), ArrayOf(Prim(KindInteger))); got.Items.Kind != KindInteger {
		t.Errorf("empty array element should be replaced, got %s", got.Items.Kind)
	}
}

func TestUnifyAnyAbsorbs(t *testing.T) {
	g := New()
	u := NewUnifier(g, true)
	if got := u.Unify(Any(), Prim(KindString)); got.Kind != KindAny {
		t.Errorf("any with string = %s, expected any", got.Kind)
	}
}

func TestUnifyClassesMergesProperties(t *testing.T) {
	g := New()
	u := NewUnifier(g, true)

	left := NewClass(Inferred("point"))
	left.Set("x", Prim(KindInteger))
	left.Set("shared", Prim(KindString))
	a := g.AddClass(left)

	right := NewClass(Inferred("point"))
	right.Set("shared", Prim(KindString))
	right.Set("y", Prim(KindInteger))
	b := g.AddClass(right)

	got := u.Unify(ClassRef(a), ClassRef(b))
	if got.Kind != KindClass {
		t.Fatalf("class with class = %s, expected class", got.Kind)
	}
	if g.Follow(b) != g.Follow(a) {
		t.Error("the right class should redirect to the left")
	}

	merged := g.Class(got.Class)
	props := merged.Properties()
	if len(props) != 3 {
		t.Fatalf("merged class has %d properties, expected 3", len(props))
	}
	if props[0].Name != "x" || props[1].Name != "shared" || props[2].Name != "y" {
		t.Errorf("property order = [%s %s %s], expected [x shared y]",
			props[0].Name, props[1].Name, props[2].Name)
	}

	x, _ := merged.Get("x")
	if inner, ok := x.Union.Nullable(); x.Kind != KindUnion || !ok || inner.Kind != KindInteger {
		t.Errorf("one-sided property x should become nullable integer, got %v", x)
	}
	shared, _ := merged.Get("shared")
	if shared.Kind != KindString {
		t.Errorf("shared property should stay string, got %s", shared.Kind)
	}
}

func TestUnifyCommutativeUpToRedirects(t *testing.T) {
	build := func() (*Graph, Type, Type) {
		g := New()
		left := NewClass(Inferred("l"))
		left.Set("a", Prim(KindInteger))
		right := NewClass(Inferred("r"))
		right.Set("a", Prim(KindDouble))
		right.Set("b", Prim(KindBool))
		return g, ClassRef(g.AddClass(left)), ClassRef(g.AddClass(right))
	}

	g1, a1, b1 := build()
	r1 := NewUnifier(g1, true).Unify(a1, b1)
	g2, a2, b2 := build()
	r2 := NewUnifier(g2, true).Unify(b2, a2)

	c1, c2 := g1.Class(r1.Class), g2.Class(r2.Class)
	if c1.Len() != c2.Len() {
		t.Fatalf("merged classes differ in size: %d vs %d", c1.Len(), c2.Len())
	}
	for _, p := range c1.Properties() {
		q, ok := c2.Get(p.Name)
		if !ok {
			t.Errorf("property %s missing from the flipped merge", p.Name)
			continue
		}
		if p.Type.Kind != q.Kind {
			t.Errorf("property %s: %s vs %s", p.Name, p.Type.Kind, q.Kind)
		}
	}
}

func TestUnifyRecursiveClasses(t *testing.T) {
	g := New()
	u := NewUnifier(g, true)

	// Two mutually recursive shapes; unification must terminate through the
	// currently-unifying guard.
	a := g.Allocate()
	b := g.Allocate()
	ca := NewClass(Inferred("node"))
	ca.Set("next", ClassRef(a))
	g.Fill(a, ca)
	cb := NewClass(Inferred("node"))
	cb.Set("next", ClassRef(b))
	g.Fill(b, cb)

	got := u.Unify(ClassRef(a), ClassRef(b))
	if got.Kind != KindClass {
		t.Fatalf("expected a class, got %s", got.Kind)
	}
	live := g.Follow(got.Class)
	next, _ := g.Class(live).Get("next")
	if next.Kind != KindClass || g.Follow(next.Class) != live {
		t.Errorf("recursive property should point back at the merged class")
	}
}

func TestUnifyClassWithMap(t *testing.T) {
	g := New()
	u := NewUnifier(g, true)

	c := NewClass(Inferred("counts"))
	c.Set("a", Prim(KindInteger))
	c.Set("b", Prim(KindInteger))
	id := g.AddClass(c)

	got := u.Unify(ClassRef(id), MapOf(Prim(KindInteger)))
	if got.Kind != KindMap {
		t.Fatalf("class with map = %s, expected map", got.Kind)
	}
	if got.Items.Kind != KindInteger {
		t.Errorf("map element = %s, expected integer", got.Items.Kind)
	}

	g2 := New()
	c2 := NewClass(Inferred("counts"))
	c2.Set("a", Prim(KindInteger))
	id2 := g2.AddClass(c2)
	noMaps := NewUnifier(g2, false)
	got2 := noMaps.Unify(ClassRef(id2), MapOf(Prim(KindInteger)))
	if got2.Kind != KindUnion || got2.Union.Class == nil || got2.Union.Map == nil {
		t.Errorf("without map inference the kinds should share a union, got %v", got2)
	}
}

func TestUnifyUnions(t *testing.T) {
	g := New()
	u := NewUnifier(g, true)

	a := UnionOf(&Union{Primitives: PrimInteger | PrimNull})
	b := UnionOf(&Union{Primitives: PrimString})
	got := u.Unify(a, b)
	if got.Kind != KindUnion {
		t.Fatalf("expected union, got %s", got.Kind)
	}
	for _, p := range []Primitive{PrimInteger, PrimNull, PrimString} {
		if !got.Union.Has(p) {
			t.Errorf("missing primitive bit %b", p)
		}
	}
}
