package graph

// Unifier merges types into their least common description, mutating the
// arena when classes merge. One unifier serves one inference session.
type Unifier struct {
	g         *Graph
	inferMaps bool

	// active guards against infinite recursion on mutually recursive
	// classes. It is keyed by unordered pairs of class ids; on re-entry the
	// already-assigned target id is returned.
	active map[classPair]ClassID
}

type classPair struct {
	lo, hi ClassID
}

func pairOf(a, b ClassID) classPair {
	if a > b {
		a, b = b, a
	}
	return classPair{lo: a, hi: b}
}

// NewUnifier returns a unifier over g. When inferMaps is set, a class meeting
// a map demotes into the map.
func NewUnifier(g *Graph, inferMaps bool) *Unifier {
	return &Unifier{g: g, inferMaps: inferMaps, active: map[classPair]ClassID{}}
}

// Unify returns the union of the value sets a and b describe.
func (u *Unifier) Unify(a, b Type) Type {
	switch {
	case a.Kind == KindNone:
		return b
	case b.Kind == KindNone:
		return a
	case a.Kind == KindAny || b.Kind == KindAny:
		return Any()
	}

	if a.Kind == b.Kind {
		switch a.Kind {
		case KindArray:
			return ArrayOf(u.Unify(*a.Items, *b.Items))
		case KindMap:
			return MapOf(u.Unify(*a.Items, *b.Items))
		case KindClass:
			return ClassRef(u.unifyClasses(a.Class, b.Class))
		case KindEnum:
			return EnumOf(u.unifyEnums(a.Enum, b.Enum))
		case KindUnion:
			return UnionOf(u.unifyUnions(a.Union, b.Union))
		default:
			return a
		}
	}

	if u.inferMaps {
		if a.Kind == KindClass && b.Kind == KindMap {
			return MapOf(u.Unify(u.classElement(a.Class), *b.Items))
		}
		if a.Kind == KindMap && b.Kind == KindClass {
			return MapOf(u.Unify(*a.Items, u.classElement(b.Class)))
		}
	}

	return UnionOf(u.unifyUnions(u.toUnion(a), u.toUnion(b)))
}

// Nullify makes t optional by unifying it with Null.
func (u *Unifier) Nullify(t Type) Type {
	return u.Unify(t, UnionOf(&Union{Primitives: PrimNull}))
}

// toUnion lifts a non-union type into its one-member union form.
func (u *Unifier) toUnion(t Type) *Union {
	out := NewUnion()
	switch t.Kind {
	case KindNone:
	case KindArray:
		out.Array = t.Items
	case KindClass:
		id := t.Class
		out.Class = &id
	case KindMap:
		out.Map = t.Items
	case KindEnum:
		out.Enum = t.Enum
	case KindUnion:
		return t.Union
	default:
		out.InsertPrimitive(t.Kind)
	}
	return out
}

// unifyUnions merges two unions pointwise: bitsets OR, compound slots merged
// by the rules for their element types.
func (u *Unifier) unifyUnions(a, b *Union) *Union {
	out := &Union{
		Names:      MergeNames(a.Names, b.Names),
		Primitives: a.Primitives | b.Primitives,
	}
	out.Array = u.mergeSlot(a.Array, b.Array)
	out.Map = u.mergeSlot(a.Map, b.Map)
	switch {
	case a.Class != nil && b.Class != nil:
		id := u.unifyClasses(*a.Class, *b.Class)
		out.Class = &id
	case a.Class != nil:
		id := *a.Class
		out.Class = &id
	case b.Class != nil:
		id := *b.Class
		out.Class = &id
	}
	switch {
	case a.Enum != nil && b.Enum != nil:
		out.Enum = u.unifyEnums(a.Enum, b.Enum)
	case a.Enum != nil:
		out.Enum = a.Enum
	case b.Enum != nil:
		out.Enum = b.Enum
	}
	// A class and a map cannot share a union when map inference is on; the
	// class folds into the map's element type.
	if u.inferMaps && out.Class != nil && out.Map != nil {
		elem := u.Unify(u.classElement(*out.Class), *out.Map)
		out.Map = &elem
		out.Class = nil
	}
	return out
}

func (u *Unifier) mergeSlot(a, b *Type) *Type {
	switch {
	case a != nil && b != nil:
		t := u.Unify(*a, *b)
		return &t
	case a != nil:
		return a
	default:
		return b
	}
}

func (u *Unifier) unifyEnums(a, b *Enum) *Enum {
	out := NewEnum(MergeNames(a.Names, b.Names), a.Values()...)
	for _, v := range b.Values() {
		out.Add(v)
	}
	return out
}

// unifyClasses merges two arena classes into one entry, redirecting the
// other. Property order is the left class's order with the right class's
// extra properties appended; one-sided properties become optional.
func (u *Unifier) unifyClasses(a, b ClassID) ClassID {
	a, b = u.g.Follow(a), u.g.Follow(b)
	if a == b {
		return a
	}
	key := pairOf(a, b)
	if target, ok := u.active[key]; ok {
		return target
	}
	u.active[key] = a
	defer delete(u.active, key)

	ca, cb := u.g.Class(a), u.g.Class(b)
	merged := NewClass(MergeNames(ca.Names, cb.Names))
	for _, p := range ca.Properties() {
		if bt, ok := cb.Get(p.Name); ok {
			merged.Set(p.Name, u.Unify(p.Type, bt))
		} else {
			merged.Set(p.Name, u.Nullify(p.Type))
		}
	}
	for _, p := range cb.Properties() {
		if _, ok := ca.Get(p.Name); !ok {
			merged.Set(p.Name, u.Nullify(p.Type))
		}
	}

	u.g.Fill(a, merged)
	u.g.Redirect(b, a)
	return a
}

// classElement folds a class's property types into a single map element
// type.
func (u *Unifier) classElement(id ClassID) Type {
	elem := None()
	for _, p := range u.g.Class(id).Properties() {
		elem = u.Unify(elem, p.Type)
	}
	return elem
}
