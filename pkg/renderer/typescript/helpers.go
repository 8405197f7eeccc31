package typescript

import (
	"strconv"
	"strings"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/renderer"
)

// tsType converts a graph type to its TypeScript type expression.
func tsType(r *renderer.Renderer, t graph.Type) string {
	switch t.Kind {
	case graph.KindAny:
		return "unknown"
	case graph.KindNull:
		return "null"
	case graph.KindInteger, graph.KindDouble:
		return "number"
	case graph.KindBool:
		return "boolean"
	case graph.KindString:
		return "string"
	case graph.KindArray:
		inner := tsType(r, *t.Items)
		if strings.Contains(inner, " | ") {
			inner = "(" + inner + ")"
		}
		return "Array<" + inner + ">"
	case graph.KindMap:
		return "Record<string, " + tsType(r, *t.Items) + ">"
	case graph.KindClass, graph.KindEnum:
		name, err := r.NameForNamedType(t)
		if err != nil {
			return "unknown"
		}
		return name
	case graph.KindUnion:
		return tsUnionType(r, t.Union)
	default:
		return "unknown"
	}
}

func tsUnionType(r *renderer.Renderer, u *graph.Union) string {
	if single, ok := u.Single(); ok {
		return tsType(r, single)
	}
	if inner, ok := u.Nullable(); ok {
		return tsType(r, inner) + " | null"
	}
	name, err := r.NameForNamedType(graph.UnionOf(u))
	if err != nil {
		return unionMembers(r, u)
	}
	return name
}

// unionMembers renders a union's members inline, in canonical order with
// Integer and Double collapsed to one number arm.
func unionMembers(r *renderer.Renderer, u *graph.Union) string {
	var parts []string
	u.ForEach(func(t graph.Type) {
		if t.Kind == graph.KindInteger && u.Has(graph.PrimDouble) {
			return
		}
		parts = append(parts, tsType(r, t))
	})
	return strings.Join(parts, " | ")
}

// literalUnion renders an enum as a union of string literals.
func literalUnion(e *graph.Enum) string {
	values := e.Values()
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Quote(v))
	}
	return strings.Join(parts, " | ")
}

// quotePropertyName quotes property names that contain special characters
func quotePropertyName(name string) string {
	needsQuoting := len(name) == 0
	for _, char := range name {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '_' || char == '$') {
			needsQuoting = true
			break
		}
	}

	// Also quote if the name starts with a number
	if len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
		needsQuoting = true
	}

	if needsQuoting {
		return strconv.Quote(name)
	}
	return name
}
