package graph

import "github.com/blimu-dev/typegen/pkg/utils"

// mapThreshold is the minimum number of properties a class needs before it
// is considered for demotion to a map.
const mapThreshold = 2

// Canonicalize finalizes a graph after the last sample or schema has been
// consumed: classes that look like maps are demoted, inferred names are
// gathered onto classes, enums and unions, redirects are collapsed so every
// class reference points at a live entry, and surviving no-information slots
// are widened to Any. Canonicalizing twice yields the same graph.
func Canonicalize(g *Graph, inferMaps bool) {
	if inferMaps {
		demoteMaps(g)
	}
	regatherClassNames(g)
	regatherUnionNames(g)
	collapseRedirects(g)
	scrubNoInformation(g)
}

// demoteMaps rewrites references to classes that are better described as
// string-keyed maps: at least mapThreshold properties, no user-supplied
// name, and all property types unifying to a common type that is not Any.
// Absent keys are the null case of a map, so Null is stripped from the
// common type.
func demoteMaps(g *Graph) {
	u := NewUnifier(g, true)
	for _, id := range g.ClassIDs() {
		c := g.Class(id)
		if c.Names.IsGiven() || c.Len() < mapThreshold {
			continue
		}
		elem, ok := commonElement(u, id)
		if !ok {
			continue
		}
		rewriteClassRefs(g, u, id, MapOf(elem))
	}
}

// commonElement folds a class's property types into one element type and
// reports whether the result is specific enough to carry a map.
func commonElement(u *Unifier, id ClassID) (Type, bool) {
	folded := u.classElement(id)
	if folded.Kind != KindUnion {
		return folded, folded.Kind != KindAny && folded.Kind != KindNone
	}
	_, rest := folded.Union.RemoveNull()
	members := rest.Members()
	switch {
	case len(members) == 1:
		return members[0], members[0].Kind != KindAny
	case len(members) == 2 && rest.Has(PrimInteger) && rest.Has(PrimDouble):
		return Prim(KindDouble), true
	default:
		return Type{}, false
	}
}

// rewriteClassRefs replaces every reachable reference to class id with repl.
// References held in union class slots migrate to the slot repl's kind
// occupies.
func rewriteClassRefs(g *Graph, u *Unifier, id ClassID, repl Type) {
	id = g.Follow(id)
	for i := range g.topLevels {
		rewriteRef(g, u, &g.topLevels[i].Type, id, repl)
	}
	for _, cid := range g.ClassIDs() {
		if cid == id {
			continue
		}
		props := g.Class(cid).Properties()
		for j := range props {
			rewriteRef(g, u, &props[j].Type, id, repl)
		}
	}
}

func rewriteRef(g *Graph, u *Unifier, t *Type, id ClassID, repl Type) {
	switch t.Kind {
	case KindClass:
		if g.Follow(t.Class) == id {
			*t = repl
		}
	case KindArray, KindMap:
		rewriteRef(g, u, t.Items, id, repl)
	case KindUnion:
		un := t.Union
		if un.Array != nil {
			rewriteRef(g, u, un.Array, id, repl)
		}
		if un.Map != nil {
			rewriteRef(g, u, un.Map, id, repl)
		}
		if un.Class != nil && g.Follow(*un.Class) == id {
			un.Class = nil
			merged := u.unifyUnions(un, u.toUnion(repl))
			*un = *merged
		}
	}
}

// regatherClassNames walks every property slot and adds the property's name
// to the inferred names of each class and enum reached through it. Element
// slots of arrays and maps use the singular form of the property name.
func regatherClassNames(g *Graph) {
	for _, id := range g.ClassIDs() {
		for _, p := range g.Class(id).Properties() {
			gatherTypeNames(g, p.Type, p.Name)
		}
	}
}

func gatherTypeNames(g *Graph, t Type, name string) {
	switch t.Kind {
	case KindClass:
		g.Class(t.Class).Names.AddInferred(name)
	case KindEnum:
		t.Enum.Names.AddInferred(name)
	case KindArray, KindMap:
		gatherTypeNames(g, *t.Items, utils.Singular(name))
	case KindUnion:
		u := t.Union
		if u.Class != nil {
			g.Class(*u.Class).Names.AddInferred(name)
		}
		if u.Enum != nil {
			u.Enum.Names.AddInferred(name)
		}
		if u.Array != nil {
			gatherTypeNames(g, *u.Array, utils.Singular(name))
		}
		if u.Map != nil {
			gatherTypeNames(g, *u.Map, utils.Singular(name))
		}
	}
}

// regatherUnionNames propagates each containing property's name onto the
// unions nested under it, so a union that must be materialized as a named
// type has the same name candidates its position would give a class.
func regatherUnionNames(g *Graph) {
	for _, id := range g.ClassIDs() {
		for _, p := range g.Class(id).Properties() {
			gatherUnionNames(p.Type, p.Name)
		}
	}
}

func gatherUnionNames(t Type, name string) {
	switch t.Kind {
	case KindArray, KindMap:
		gatherUnionNames(*t.Items, utils.Singular(name))
	case KindUnion:
		u := t.Union
		u.Names.AddInferred(name)
		if u.Array != nil {
			gatherUnionNames(*u.Array, utils.Singular(name))
		}
		if u.Map != nil {
			gatherUnionNames(*u.Map, utils.Singular(name))
		}
	}
}

// collapseRedirects rewrites every class reference to the live entry its
// redirect chain ends at. Redirect entries themselves stay in the arena so
// held ids remain valid.
func collapseRedirects(g *Graph) {
	g.eachType(func(t *Type) {
		if t.Kind == KindClass {
			t.Class = g.Follow(t.Class)
		}
	})
}

// scrubNoInformation widens surviving no-information slots to Any. A lone
// empty array is the usual source: nothing was ever unified into its element
// slot.
func scrubNoInformation(g *Graph) {
	g.eachType(func(t *Type) {
		if t.Kind == KindNone {
			*t = Any()
		}
	})
}
