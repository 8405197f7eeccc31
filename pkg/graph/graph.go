package graph

import "fmt"

// ClassID is an index into a Graph's class arena. Indices stay stable for
// the life of the graph; unification redirects entries instead of moving
// them.
type ClassID int

// InvariantError reports a violated internal invariant. It indicates a bug
// in the mutators, not bad input, and aborts the session.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("graph invariant violated (%s): %s", e.Invariant, e.Detail)
}

// Property is one named slot of a class.
type Property struct {
	Name string
	Type Type
}

// ClassData holds a class's candidate names and its properties. Property
// order is the insertion order from the first sample that contributed each
// property, and unification preserves it.
type ClassData struct {
	Names      NameSet
	properties []Property
	index      map[string]int
}

// NewClass builds an empty class with the given names.
func NewClass(names NameSet) *ClassData {
	return &ClassData{Names: names, index: map[string]int{}}
}

// Set inserts or replaces a property. New properties append in order.
func (c *ClassData) Set(name string, t Type) {
	if i, ok := c.index[name]; ok {
		c.properties[i].Type = t
		return
	}
	c.index[name] = len(c.properties)
	c.properties = append(c.properties, Property{Name: name, Type: t})
}

// Get returns the type of a property and whether it exists.
func (c *ClassData) Get(name string) (Type, bool) {
	if i, ok := c.index[name]; ok {
		return c.properties[i].Type, true
	}
	return Type{}, false
}

// Properties returns the properties in insertion order. The returned slice
// is the class's own storage; callers may rewrite types in place.
func (c *ClassData) Properties() []Property { return c.properties }

// Len returns the number of properties.
func (c *ClassData) Len() int { return len(c.properties) }

// equalShape reports whether two classes have the same property mapping
// (same property names with equal types), irrespective of property order
// and of the classes' own name sets.
func equalShape(g *Graph, a, b *ClassData) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, p := range a.properties {
		bt, ok := b.Get(p.Name)
		if !ok || !equalTypes(g, p.Type, bt) {
			return false
		}
	}
	return true
}

type entryKind int

const (
	entryEmpty entryKind = iota
	entryLive
	entryRedirect
)

// entry is one arena slot: empty (allocated but not yet filled), live, or a
// redirect to the entry its class was unified into.
type entry struct {
	kind   entryKind
	class  *ClassData
	target ClassID
}

// TopLevel is a named entry point into the graph.
type TopLevel struct {
	Name string
	Type Type
}

// Graph is the arena of class entries plus the ordered top-level entry
// points. It is owned by a single inference session and is not safe for
// concurrent mutation.
type Graph struct {
	entries   []entry
	topLevels []TopLevel
}

// New returns an empty graph.
func New() *Graph { return &Graph{} }

// Allocate reserves an arena slot so that recursive schemas can reference a
// class before its properties are translated. The slot must be filled before
// rendering.
func (g *Graph) Allocate() ClassID {
	g.entries = append(g.entries, entry{kind: entryEmpty})
	return ClassID(len(g.entries) - 1)
}

// Fill places class data into a previously allocated slot.
func (g *Graph) Fill(id ClassID, c *ClassData) {
	g.entries[id] = entry{kind: entryLive, class: c}
}

// AddClass inserts a class, unifying it with an existing live class of equal
// shape if one exists. Matching classes merge their name sets.
func (g *Graph) AddClass(c *ClassData) ClassID {
	for i := range g.entries {
		e := &g.entries[i]
		if e.kind != entryLive {
			continue
		}
		if equalShape(g, e.class, c) {
			e.class.Names = MergeNames(e.class.Names, c.Names)
			return ClassID(i)
		}
	}
	g.entries = append(g.entries, entry{kind: entryLive, class: c})
	return ClassID(len(g.entries) - 1)
}

// Redirect forwards the entry at from to the entry at to. The redirected
// entry's data is dropped; held ClassIDs keep resolving through Follow.
func (g *Graph) Redirect(from, to ClassID) {
	if from == to {
		return
	}
	g.entries[from] = entry{kind: entryRedirect, target: to}
}

// Follow walks redirect chains from id to a live entry. Chains are finite
// and acyclic by construction; Validate checks the invariant.
func (g *Graph) Follow(id ClassID) ClassID {
	for g.entries[id].kind == entryRedirect {
		id = g.entries[id].target
	}
	return id
}

// Class returns the class data id resolves to, or nil for an empty entry.
func (g *Graph) Class(id ClassID) *ClassData {
	return g.entries[g.Follow(id)].class
}

// ClassIDs returns the ids of all live entries in arena order.
func (g *Graph) ClassIDs() []ClassID {
	var out []ClassID
	for i := range g.entries {
		if g.entries[i].kind == entryLive {
			out = append(out, ClassID(i))
		}
	}
	return out
}

// AddTopLevel appends a named entry point.
func (g *Graph) AddTopLevel(name string, t Type) {
	g.topLevels = append(g.topLevels, TopLevel{Name: name, Type: t})
}

// TopLevels returns the entry points in insertion order. The returned slice
// is the graph's own storage.
func (g *Graph) TopLevels() []TopLevel { return g.topLevels }

// Validate checks the arena invariants: every redirect chain terminates at a
// live entry within len(entries) steps, no reachable type references an
// empty entry, and no reachable type is KindNone.
func (g *Graph) Validate() error {
	for i := range g.entries {
		if g.entries[i].kind != entryRedirect {
			continue
		}
		id := ClassID(i)
		for steps := 0; g.entries[id].kind == entryRedirect; steps++ {
			if steps > len(g.entries) {
				return &InvariantError{Invariant: "redirect chain", Detail: fmt.Sprintf("entry %d does not reach a live entry", i)}
			}
			id = g.entries[id].target
		}
		if g.entries[id].kind != entryLive {
			return &InvariantError{Invariant: "redirect chain", Detail: fmt.Sprintf("entry %d forwards to non-live entry %d", i, id)}
		}
	}
	var err error
	g.eachType(func(t *Type) {
		if err != nil {
			return
		}
		switch t.Kind {
		case KindNone:
			err = &InvariantError{Invariant: "no dangling slots", Detail: "reachable type has no information"}
		case KindClass:
			if g.Class(t.Class) == nil {
				err = &InvariantError{Invariant: "live class references", Detail: fmt.Sprintf("class %d resolves to an empty entry", t.Class)}
			}
		}
	})
	return err
}

// eachType visits every type slot held by the graph: top levels, class
// properties of live entries, and the element and member slots nested inside
// them. The callback may rewrite the slot in place.
func (g *Graph) eachType(f func(t *Type)) {
	for i := range g.topLevels {
		walkType(&g.topLevels[i].Type, f)
	}
	for i := range g.entries {
		if g.entries[i].kind != entryLive {
			continue
		}
		props := g.entries[i].class.properties
		for j := range props {
			walkType(&props[j].Type, f)
		}
	}
}

func walkType(t *Type, f func(t *Type)) {
	f(t)
	switch t.Kind {
	case KindArray, KindMap:
		walkType(t.Items, f)
	case KindUnion:
		u := t.Union
		if u.Array != nil {
			walkType(u.Array, f)
		}
		if u.Map != nil {
			walkType(u.Map, f)
		}
		if u.Class != nil {
			ref := ClassRef(*u.Class)
			f(&ref)
			*u.Class = ref.Class
		}
	}
}

// NameType attaches a name to the named payload of t, if it has one: class
// names for class references, otherwise the union or enum name set.
func (g *Graph) NameType(t Type, name string, given bool) {
	var names *NameSet
	switch t.Kind {
	case KindClass:
		names = &g.Class(t.Class).Names
	case KindUnion:
		names = &t.Union.Names
	case KindEnum:
		names = &t.Enum.Names
	default:
		return
	}
	if given {
		names.AddGiven(name)
	} else {
		names.AddInferred(name)
	}
}
