package graph

// Kind identifies the variant of a Type. The family is closed: every switch
// over Kind in this module handles all of them.
type Kind int

const (
	// KindNone marks a slot about which nothing is known yet, such as the
	// element type of an empty array. It must not survive canonicalization.
	KindNone Kind = iota
	KindAny
	KindNull
	KindInteger
	KindDouble
	KindBool
	KindString
	KindArray
	KindClass
	KindMap
	KindEnum
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAny:
		return "any"
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindClass:
		return "class"
	case KindMap:
		return "map"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	}
	return "invalid"
}

// Type is one variant of the inferred type family. Only the payload fields
// for its Kind are set: Items for arrays and maps, Class for class
// references, Enum and Union for those kinds.
type Type struct {
	Kind  Kind
	Items *Type
	Class ClassID
	Enum  *Enum
	Union *Union
}

// None returns the no-information placeholder type.
func None() Type { return Type{Kind: KindNone} }

// Any returns the top type.
func Any() Type { return Type{Kind: KindAny} }

// Prim returns a primitive type for one of the primitive kinds.
func Prim(k Kind) Type { return Type{Kind: k} }

// ArrayOf returns an array type with the given element type.
func ArrayOf(elem Type) Type { return Type{Kind: KindArray, Items: &elem} }

// MapOf returns a string-keyed map type with the given element type.
func MapOf(elem Type) Type { return Type{Kind: KindMap, Items: &elem} }

// ClassRef returns a reference to a class arena entry.
func ClassRef(id ClassID) Type { return Type{Kind: KindClass, Class: id} }

// EnumOf returns an enum type over the given data.
func EnumOf(e *Enum) Type { return Type{Kind: KindEnum, Enum: e} }

// UnionOf returns a union type over the given representation.
func UnionOf(u *Union) Type { return Type{Kind: KindUnion, Union: u} }

// Enum is a closed set of string values.
type Enum struct {
	Names  NameSet
	values []string
}

// NewEnum builds an enum over the given values, dropping duplicates while
// preserving first-seen order.
func NewEnum(names NameSet, values ...string) *Enum {
	e := &Enum{Names: names}
	for _, v := range values {
		e.Add(v)
	}
	return e
}

// Add inserts a value unless it is already present.
func (e *Enum) Add(value string) {
	for _, v := range e.values {
		if v == value {
			return
		}
	}
	e.values = append(e.values, value)
}

// Has reports whether value is a member of the enum.
func (e *Enum) Has(value string) bool {
	for _, v := range e.values {
		if v == value {
			return true
		}
	}
	return false
}

// Values returns the enum values in first-seen order.
func (e *Enum) Values() []string { return e.values }

// equalTypes reports structural equality of two types within g, following
// redirects on class references.
func equalTypes(g *Graph, a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindArray, KindMap:
		return equalTypes(g, *a.Items, *b.Items)
	case KindClass:
		return g.Follow(a.Class) == g.Follow(b.Class)
	case KindEnum:
		if len(a.Enum.values) != len(b.Enum.values) {
			return false
		}
		for _, v := range a.Enum.values {
			if !b.Enum.Has(v) {
				return false
			}
		}
		return true
	case KindUnion:
		return equalUnions(g, a.Union, b.Union)
	default:
		return true
	}
}
