// Package schema renders a type graph back out as a JSON Schema document
// with one definition per named type.
package schema

import (
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/naming"
	"github.com/blimu-dev/typegen/pkg/renderer"
	"github.com/blimu-dev/typegen/pkg/utils"
)

// SchemaRenderer implements the renderer.Language interface for JSON
// Schema output.
type SchemaRenderer struct{}

// NewSchemaRenderer creates a new JSON Schema renderer.
func NewSchemaRenderer() *SchemaRenderer {
	return &SchemaRenderer{}
}

// Name returns the language identifier.
func (g *SchemaRenderer) Name() string {
	return "schema"
}

// Keywords returns the reserved words; JSON Schema definition names have
// none.
func (g *SchemaRenderer) Keywords() []string {
	return nil
}

// NamedTypeNamer styles definition names as PascalCase.
func (g *SchemaRenderer) NamedTypeNamer() *naming.Namer {
	return &naming.Namer{Style: utils.ToPascalCase, Prefixes: []string{"the"}}
}

// PropertyNamer keeps property names as they appeared in the input.
func (g *SchemaRenderer) PropertyNamer() *naming.Namer {
	return &naming.Namer{Style: func(s string) string { return s }}
}

// TopLevelName styles top-level definition names.
func (g *SchemaRenderer) TopLevelName(name string) string {
	return utils.ToPascalCase(name)
}

// Emit writes the schema document: the top level (or a oneOf of several)
// plus a definitions object holding every named type.
func (g *SchemaRenderer) Emit(r *renderer.Renderer) error {
	doc := map[string]any{
		"$schema": "http://json-schema.org/draft-06/schema#",
	}

	var tops []any
	r.ForEachTopLevel(renderer.BlankNone, func(t graph.Type, name string) {
		tops = append(tops, typeSchema(r, t))
	})
	switch len(tops) {
	case 0:
	case 1:
		for k, v := range tops[0].(map[string]any) {
			doc[k] = v
		}
	default:
		doc["oneOf"] = tops
	}

	defs := map[string]any{}
	r.ForEachNamedType(renderer.BlankNone, func(t graph.Type, name string) {
		defs[name] = definitionSchema(r, t)
	})
	if len(defs) > 0 {
		doc["definitions"] = defs
	}

	data, err := gojson.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		r.Line(line)
	}
	return nil
}

// definitionSchema renders the body of a named type's definition.
func definitionSchema(r *renderer.Renderer, t graph.Type) map[string]any {
	switch t.Kind {
	case graph.KindClass:
		id := r.Graph().Follow(t.Class)
		props := map[string]any{}
		var required []string
		r.ForEachProperty(id, renderer.BlankNone, func(_, jsonName string, pt graph.Type) {
			props[jsonName] = typeSchema(r, pt)
			if !isNullable(pt) {
				required = append(required, jsonName)
			}
		})
		out := map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties":           props,
		}
		if len(required) > 0 {
			out["required"] = required
		}
		return out
	case graph.KindEnum:
		values := t.Enum.Values()
		anyValues := make([]any, len(values))
		for i, v := range values {
			anyValues[i] = v
		}
		return map[string]any{"type": "string", "enum": anyValues}
	case graph.KindUnion:
		var arms []any
		t.Union.ForEach(func(m graph.Type) {
			if m.Kind == graph.KindInteger && t.Union.Has(graph.PrimDouble) {
				return
			}
			arms = append(arms, typeSchema(r, m))
		})
		return map[string]any{"anyOf": arms}
	default:
		return typeSchema(r, t)
	}
}

// typeSchema renders a type reference: named types become $refs, the rest
// inline.
func typeSchema(r *renderer.Renderer, t graph.Type) map[string]any {
	if name, err := r.NameForNamedType(t); err == nil {
		return map[string]any{"$ref": "#/definitions/" + name}
	}
	switch t.Kind {
	case graph.KindAny, graph.KindNone:
		return map[string]any{}
	case graph.KindNull:
		return map[string]any{"type": "null"}
	case graph.KindInteger:
		return map[string]any{"type": "integer"}
	case graph.KindDouble:
		return map[string]any{"type": "number"}
	case graph.KindBool:
		return map[string]any{"type": "boolean"}
	case graph.KindString:
		return map[string]any{"type": "string"}
	case graph.KindArray:
		return map[string]any{"type": "array", "items": typeSchema(r, *t.Items)}
	case graph.KindMap:
		return map[string]any{"type": "object", "additionalProperties": typeSchema(r, *t.Items)}
	case graph.KindUnion:
		if single, ok := t.Union.Single(); ok {
			return typeSchema(r, single)
		}
		return definitionSchema(r, t)
	default:
		return map[string]any{}
	}
}

func isNullable(t graph.Type) bool {
	return t.Kind == graph.KindUnion && t.Union.Has(graph.PrimNull)
}
