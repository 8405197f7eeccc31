package golang

import (
	"fmt"
	"strings"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/renderer"
)

// goType converts a graph type to its Go type expression.
func goType(r *renderer.Renderer, t graph.Type) string {
	switch t.Kind {
	case graph.KindAny, graph.KindNull:
		return "any"
	case graph.KindInteger:
		return "int64"
	case graph.KindDouble:
		return "float64"
	case graph.KindBool:
		return "bool"
	case graph.KindString:
		return "string"
	case graph.KindArray:
		return "[]" + goType(r, *t.Items)
	case graph.KindMap:
		return "map[string]" + goType(r, *t.Items)
	case graph.KindClass, graph.KindEnum:
		name, err := r.NameForNamedType(t)
		if err != nil {
			return "any"
		}
		return name
	case graph.KindUnion:
		return goUnionType(r, t.Union)
	default:
		return "any"
	}
}

func goUnionType(r *renderer.Renderer, u *graph.Union) string {
	if single, ok := u.Single(); ok {
		return goType(r, single)
	}
	if inner, ok := u.Nullable(); ok {
		return optional(goType(r, inner))
	}
	name, err := r.NameForNamedType(graph.UnionOf(u))
	if err != nil {
		return "any"
	}
	return name
}

// optional wraps a Go type for a nullable slot. Types that already have a
// nil value stay as they are.
func optional(t string) string {
	if t == "any" || strings.HasPrefix(t, "[]") || strings.HasPrefix(t, "map[") {
		return t
	}
	return "*" + t
}

// unionMember is one emitted member of a named union.
type unionMember struct {
	field  string
	local  string
	goType string
}

// unionMembers lists a union's non-null members in canonical order, with
// Integer and Double collapsed to one Double member. Field names come from
// the member kind, or the member's type name for classes and enums.
func unionMembers(r *renderer.Renderer, u *graph.Union) []unionMember {
	var out []unionMember
	u.ForEach(func(t graph.Type) {
		if t.Kind == graph.KindNull {
			return
		}
		if t.Kind == graph.KindInteger && u.Has(graph.PrimDouble) {
			return
		}
		var field string
		switch t.Kind {
		case graph.KindInteger:
			field = "Integer"
		case graph.KindDouble:
			field = "Double"
		case graph.KindBool:
			field = "Bool"
		case graph.KindString:
			field = "String"
		case graph.KindArray:
			field = "Array"
		case graph.KindMap:
			field = "Map"
		case graph.KindClass, graph.KindEnum:
			name, err := r.NameForNamedType(t)
			if err != nil {
				name = "Value"
			}
			field = name
		default:
			field = "Value"
		}
		out = append(out, unionMember{
			field:  field,
			local:  fmt.Sprintf("v%d", len(out)),
			goType: goType(r, t),
		})
	})
	return out
}

// sanitizePackageName lowers a name into a legal Go package identifier.
func sanitizePackageName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.String()[0] >= '0' && b.String()[0] <= '9' {
		return "generated"
	}
	return b.String()
}
