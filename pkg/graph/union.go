package graph

// Primitive is a bitset over the primitive kinds a union may carry.
type Primitive uint8

const (
	PrimNull Primitive = 1 << iota
	PrimInteger
	PrimDouble
	PrimBool
	PrimString
)

// primitiveOrder is the canonical iteration order of primitive members.
var primitiveOrder = []struct {
	bit  Primitive
	kind Kind
}{
	{PrimNull, KindNull},
	{PrimInteger, KindInteger},
	{PrimDouble, KindDouble},
	{PrimBool, KindBool},
	{PrimString, KindString},
}

// primitiveBit maps a primitive kind to its bit, or 0 for non-primitives.
func primitiveBit(k Kind) Primitive {
	switch k {
	case KindNull:
		return PrimNull
	case KindInteger:
		return PrimInteger
	case KindDouble:
		return PrimDouble
	case KindBool:
		return PrimBool
	case KindString:
		return PrimString
	}
	return 0
}

// Union describes a disjunction of kinds: a bitset for the primitives plus at
// most one slot for each compound kind. When two classes would occupy the
// class slot they are unified into one arena entry, so the slot form never
// grows beyond one member per kind.
//
// A union carrying both Integer and Double keeps both bits so renderers can
// tell mixed integer/double origin apart, but it is renderable only as
// Double.
type Union struct {
	Names      NameSet
	Primitives Primitive
	Array      *Type
	Class      *ClassID
	Map        *Type
	Enum       *Enum
}

// NewUnion returns an empty union.
func NewUnion() *Union { return &Union{} }

// InsertPrimitive sets the bit for a primitive kind. Kinds without a bit are
// ignored.
func (u *Union) InsertPrimitive(k Kind) {
	u.Primitives |= primitiveBit(k)
}

// Has reports whether the given primitive bit is set.
func (u *Union) Has(p Primitive) bool { return u.Primitives&p != 0 }

// Empty reports whether the union carries no kinds at all. The empty union
// is not a legal type; it is represented as KindNone by callers.
func (u *Union) Empty() bool {
	return u.Primitives == 0 && u.Array == nil && u.Class == nil && u.Map == nil && u.Enum == nil
}

// ForEach visits the union's members in the canonical order Null, Integer,
// Double, Bool, String, Array, Class, Map, Enum.
func (u *Union) ForEach(f func(t Type)) {
	for _, p := range primitiveOrder {
		if u.Has(p.bit) {
			f(Prim(p.kind))
		}
	}
	if u.Array != nil {
		f(ArrayOf(*u.Array))
	}
	if u.Class != nil {
		f(ClassRef(*u.Class))
	}
	if u.Map != nil {
		f(MapOf(*u.Map))
	}
	if u.Enum != nil {
		f(EnumOf(u.Enum))
	}
}

// Members returns the union's members in canonical order.
func (u *Union) Members() []Type {
	var out []Type
	u.ForEach(func(t Type) { out = append(out, t) })
	return out
}

// IsMember reports whether the union carries the given kind of member.
func (u *Union) IsMember(t Type) bool {
	switch t.Kind {
	case KindArray:
		return u.Array != nil
	case KindClass:
		return u.Class != nil
	case KindMap:
		return u.Map != nil
	case KindEnum:
		return u.Enum != nil
	default:
		return u.Has(primitiveBit(t.Kind))
	}
}

// RemoveNull returns a copy of the union without the null bit, and whether
// null was present.
func (u *Union) RemoveNull() (bool, *Union) {
	had := u.Has(PrimNull)
	if !had {
		return false, u
	}
	out := *u
	out.Primitives &^= PrimNull
	return true, &out
}

// Nullable returns the sole non-null member if the union consists of exactly
// one other kind plus Null. Integer and Double count as the single kind
// Double for this purpose. Renderers may represent such a union as an
// optional value of the member type.
func (u *Union) Nullable() (Type, bool) {
	hadNull, rest := u.RemoveNull()
	if !hadNull {
		return Type{}, false
	}
	members := rest.Members()
	if len(members) == 1 {
		return members[0], true
	}
	if len(members) == 2 && rest.Has(PrimInteger) && rest.Has(PrimDouble) {
		return Prim(KindDouble), true
	}
	return Type{}, false
}

// Single returns the union's sole member if it carries exactly one kind,
// with Integer and Double together collapsing to Double.
func (u *Union) Single() (Type, bool) {
	members := u.Members()
	if len(members) == 1 {
		return members[0], true
	}
	if len(members) == 2 && u.Has(PrimInteger) && u.Has(PrimDouble) {
		return Prim(KindDouble), true
	}
	return Type{}, false
}

// equalUnions reports structural equality of two unions within g.
func equalUnions(g *Graph, a, b *Union) bool {
	if a.Primitives != b.Primitives {
		return false
	}
	am, bm := a.Members(), b.Members()
	if len(am) != len(bm) {
		return false
	}
	for i := range am {
		if !equalTypes(g, am[i], bm[i]) {
			return false
		}
	}
	return true
}
