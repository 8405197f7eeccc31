package renderer

import (
	"sort"

	"github.com/blimu-dev/typegen/pkg/graph"
)

// forEach emits n items under a blank policy.
func (r *Renderer) forEach(bp BlankPolicy, n int, emit func(i int)) {
	for i := 0; i < n; i++ {
		if bp == BlankBetweenAll || (bp == BlankInterposing && i > 0) {
			r.Blank()
		}
		emit(i)
	}
	if bp == BlankBetweenAll && n > 0 {
		r.Blank()
	}
}

// ForEachTopLevel visits the graph's entry points in declaration order. name
// is the resolved identifier for the top level: the named type's identifier
// when the top level is a class, enum, or named union, otherwise a spelling
// styled by the language's top-level rule.
func (r *Renderer) ForEachTopLevel(bp BlankPolicy, emit func(t graph.Type, name string)) {
	tops := r.g.TopLevels()
	r.forEach(bp, len(tops), func(i int) {
		tl := tops[i]
		if n, err := r.nameOfNamedType(tl.Type); err == nil {
			emit(tl.Type, n.Spelling())
			return
		}
		emit(tl.Type, r.topNames[tl.Name].Spelling())
	})
}

// ForEachClass visits every reachable class in discovery order.
func (r *Renderer) ForEachClass(bp BlankPolicy, emit func(id graph.ClassID, name string)) {
	r.forEach(bp, len(r.classes), func(i int) {
		id := r.classes[i]
		emit(id, r.classNames[id].Spelling())
	})
}

// ForEachEnum visits every reachable enum in discovery order.
func (r *Renderer) ForEachEnum(bp BlankPolicy, emit func(e *graph.Enum, name string)) {
	r.forEach(bp, len(r.enums), func(i int) {
		emit(r.enums[i], r.enumNames[r.enums[i]].Spelling())
	})
}

// ForEachUnion visits every reachable named union in discovery order.
// Unions that collapse to a single kind or a plain optional are not named
// and are not visited.
func (r *Renderer) ForEachUnion(bp BlankPolicy, emit func(u *graph.Union, name string)) {
	r.forEach(bp, len(r.unions), func(i int) {
		emit(r.unions[i], r.unionNames[r.unions[i]].Spelling())
	})
}

// ForEachNamedType visits all named types: classes, then enums, then named
// unions, each group in discovery order.
func (r *Renderer) ForEachNamedType(bp BlankPolicy, emit func(t graph.Type, name string)) {
	total := len(r.classes) + len(r.enums) + len(r.unions)
	r.forEach(bp, total, func(i int) {
		switch {
		case i < len(r.classes):
			id := r.classes[i]
			emit(graph.ClassRef(id), r.classNames[id].Spelling())
		case i < len(r.classes)+len(r.enums):
			e := r.enums[i-len(r.classes)]
			emit(graph.EnumOf(e), r.enumNames[e].Spelling())
		default:
			u := r.unions[i-len(r.classes)-len(r.enums)]
			emit(graph.UnionOf(u), r.unionNames[u].Spelling())
		}
	})
}

// ForEachProperty visits a class's properties sorted by their resolved
// names. name is the resolved identifier, jsonName the original key.
func (r *Renderer) ForEachProperty(id graph.ClassID, bp BlankPolicy, emit func(name, jsonName string, t graph.Type)) {
	id = r.g.Follow(id)
	props := r.g.Class(id).Properties()
	names := r.propNames[id]

	order := make([]int, len(props))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return names[props[order[a]].Name].Spelling() < names[props[order[b]].Name].Spelling()
	})

	r.forEach(bp, len(props), func(i int) {
		p := props[order[i]]
		emit(names[p.Name].Spelling(), p.Name, p.Type)
	})
}

// NameForNamedType returns the resolved identifier of a named type. It is a
// lookup, not a creation: asking for a type that is not named is an internal
// error.
func (r *Renderer) NameForNamedType(t graph.Type) (string, error) {
	n, err := r.nameOfNamedType(t)
	if err != nil {
		return "", err
	}
	return n.Spelling(), nil
}
