// Package infer derives a type graph from JSON sample documents. Samples for
// the same top level unify into a single minimal description; classes with
// matching shapes collapse into one arena entry.
package infer

import (
	"regexp"

	gojson "github.com/goccy/go-json"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/utils"
)

// integerPattern matches numeric literals with no fractional or exponent
// part. The distinction rides on the number's textual form; Decode keeps
// numbers textual for exactly this reason.
var integerPattern = regexp.MustCompile(`^-?\d+$`)

// Inferrer turns decoded sample values into types within one graph.
type Inferrer struct {
	g *graph.Graph
	u *graph.Unifier
}

// New returns an inferrer writing into g.
func New(g *graph.Graph, inferMaps bool) *Inferrer {
	return &Inferrer{g: g, u: graph.NewUnifier(g, inferMaps)}
}

// TopLevel infers one type from all samples of a named top level, registers
// it as an entry point, and attaches the user-supplied name to it.
func (in *Inferrer) TopLevel(name string, samples ...any) graph.Type {
	t := graph.None()
	for _, s := range samples {
		t = in.u.Unify(t, in.Value(s, name))
	}
	in.g.NameType(t, name, true)
	in.g.AddTopLevel(name, t)
	return t
}

// Value infers the type of a single decoded JSON value. name is the property
// path context the value was found under; classes and element types draw
// their inferred names from it.
func (in *Inferrer) Value(v any, name string) graph.Type {
	switch v := v.(type) {
	case nil:
		return graph.UnionOf(&graph.Union{Primitives: graph.PrimNull})
	case bool:
		return graph.Prim(graph.KindBool)
	case gojson.Number:
		return numberType(v.String())
	case int, int64:
		return graph.Prim(graph.KindInteger)
	case float64:
		return graph.Prim(graph.KindDouble)
	case string:
		return graph.Prim(graph.KindString)
	case []any:
		elem := graph.None()
		for _, e := range v {
			elem = in.u.Unify(elem, in.Value(e, utils.Singular(name)))
		}
		return graph.ArrayOf(elem)
	case *Object:
		data := graph.NewClass(graph.Inferred(name))
		for _, m := range v.Members {
			data.Set(m.Key, in.Value(m.Value, m.Key))
		}
		return graph.ClassRef(in.g.AddClass(data))
	default:
		return graph.Any()
	}
}

func numberType(text string) graph.Type {
	if integerPattern.MatchString(text) {
		return graph.Prim(graph.KindInteger)
	}
	return graph.Prim(graph.KindDouble)
}
