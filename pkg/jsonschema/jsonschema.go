// Package jsonschema translates a JSON Schema document (the draft-6 subset
// the inference core models) into a type graph. The parsed document model is
// kin-openapi's schema representation, which preserves $ref strings; the
// translator resolves definitions itself so recursive schemas become cycles
// through the class arena.
package jsonschema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	gojson "github.com/goccy/go-json"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/utils"
)

// Issue is a structured diagnostic for a schema construct the translation
// degraded. Translation never fails for such constructs; it produces the
// least specific compatible type and records the gap.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Translate parses data as a JSON Schema document and registers its type
// under name as a top level of g.
func Translate(g *graph.Graph, inferMaps bool, name string, data []byte) (graph.Type, []Issue, error) {
	var root openapi3.SchemaRef
	if err := gojson.Unmarshal(data, &root); err != nil {
		return graph.Type{}, nil, fmt.Errorf("failed to parse JSON Schema: %w", err)
	}
	var doc struct {
		Definitions map[string]*openapi3.SchemaRef `json:"definitions"`
		Defs        map[string]*openapi3.SchemaRef `json:"$defs"`
	}
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return graph.Type{}, nil, fmt.Errorf("failed to parse JSON Schema: %w", err)
	}

	t := &translator{
		g:         g,
		u:         graph.NewUnifier(g, inferMaps),
		defs:      map[string]*openapi3.SchemaRef{},
		classes:   map[string]graph.ClassID{},
		resolving: map[string]bool{},
	}
	for k, v := range doc.Definitions {
		t.defs[k] = v
	}
	for k, v := range doc.Defs {
		t.defs[k] = v
	}

	typ := t.schema(&root, name)
	g.NameType(typ, name, true)
	g.AddTopLevel(name, typ)
	return typ, t.issues, nil
}

type translator struct {
	g      *graph.Graph
	u      *graph.Unifier
	defs   map[string]*openapi3.SchemaRef
	issues []Issue

	// classes maps resolved definition names to their arena entries; ids
	// register before their properties translate so self-references land on
	// the allocated entry.
	classes   map[string]graph.ClassID
	resolving map[string]bool
}

func (t *translator) issue(path, message string) {
	t.issues = append(t.issues, Issue{Path: path, Message: message})
}

func (t *translator) schema(sr *openapi3.SchemaRef, name string) graph.Type {
	if sr == nil || (sr.Ref == "" && sr.Value == nil) {
		return graph.Any()
	}
	if sr.Ref != "" {
		return t.ref(sr.Ref, name)
	}
	s := sr.Value

	t.reportRefinements(s, name)

	if len(s.OneOf) > 0 {
		return t.alternatives(s.OneOf, name)
	}
	if len(s.AnyOf) > 0 {
		return t.alternatives(s.AnyOf, name)
	}
	if len(s.AllOf) > 0 {
		if len(s.AllOf) == 1 {
			return t.schema(s.AllOf[0], name)
		}
		t.issue(name, "allOf intersections are not supported")
		return graph.Any()
	}
	if s.Not != nil {
		t.issue(name, "not schemas are not supported")
		return graph.Any()
	}

	if len(s.Enum) > 0 {
		if values, ok := stringValues(s.Enum); ok {
			return graph.EnumOf(graph.NewEnum(t.names(s, name), values...))
		}
		t.issue(name, "only string enums are supported")
	}

	if s.Type != nil {
		types := s.Type.Slice()
		if len(types) > 1 {
			out := graph.None()
			for _, ty := range types {
				out = t.u.Unify(out, t.single(s, ty, name))
			}
			return out
		}
		if len(types) == 1 {
			return t.single(s, types[0], name)
		}
	}
	if len(s.Properties) > 0 {
		return t.object(s, name)
	}
	return graph.Any()
}

func (t *translator) single(s *openapi3.Schema, ty string, name string) graph.Type {
	switch ty {
	case "string":
		return graph.Prim(graph.KindString)
	case "integer":
		return graph.Prim(graph.KindInteger)
	case "number":
		return graph.Prim(graph.KindDouble)
	case "boolean":
		return graph.Prim(graph.KindBool)
	case "null":
		return graph.UnionOf(&graph.Union{Primitives: graph.PrimNull})
	case "array":
		if s.Items == nil {
			return graph.ArrayOf(graph.None())
		}
		return graph.ArrayOf(t.schema(s.Items, utils.Singular(name)))
	case "object":
		return t.object(s, name)
	default:
		t.issue(name, fmt.Sprintf("unknown type %q", ty))
		return graph.Any()
	}
}

// object translates an object schema: a map when it declares only
// additionalProperties, otherwise a class whose optional properties unify
// with Null.
func (t *translator) object(s *openapi3.Schema, name string) graph.Type {
	if len(s.Properties) == 0 && additionalAllowed(s) {
		if s.AdditionalProperties.Schema != nil {
			return graph.MapOf(t.schema(s.AdditionalProperties.Schema, utils.Singular(name)))
		}
		return graph.MapOf(graph.Any())
	}

	id := t.g.Allocate()
	data := graph.NewClass(t.names(s, name))

	required := map[string]bool{}
	for _, r := range s.Required {
		required[r] = true
	}

	// The parsed document model does not keep declaration order; sorted
	// names keep the output deterministic.
	propNames := make([]string, 0, len(s.Properties))
	for n := range s.Properties {
		propNames = append(propNames, n)
	}
	sort.Strings(propNames)
	for _, n := range propNames {
		pt := t.schema(s.Properties[n], n)
		if !required[n] {
			pt = t.u.Nullify(pt)
		}
		data.Set(n, pt)
	}

	t.g.Fill(id, data)
	return graph.ClassRef(id)
}

// ref resolves a $ref against the document's definitions. A reference to an
// object registers its class id before translating the body, so cycles in
// $ref become cycles through the arena.
func (t *translator) ref(ref, name string) graph.Type {
	key := ref
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		key = key[idx+1:]
	}
	if id, ok := t.classes[key]; ok {
		return graph.ClassRef(id)
	}
	target, ok := t.defs[key]
	if !ok {
		t.issue(name, fmt.Sprintf("unresolvable $ref %q", ref))
		return graph.Any()
	}
	if t.resolving[key] {
		t.issue(name, fmt.Sprintf("cyclic $ref %q through a non-object schema", ref))
		return graph.Any()
	}

	if target.Value != nil && isObjectSchema(target.Value) {
		id := t.g.Allocate()
		t.classes[key] = id
		typ := t.object(target.Value, key)
		if typ.Kind == graph.KindClass && typ.Class != id {
			t.g.Redirect(id, typ.Class)
		}
		return typ
	}

	t.resolving[key] = true
	typ := t.schema(target, key)
	delete(t.resolving, key)
	if typ.Kind == graph.KindClass {
		t.classes[key] = typ.Class
	}
	return typ
}

func (t *translator) alternatives(refs openapi3.SchemaRefs, name string) graph.Type {
	out := graph.None()
	for _, sr := range refs {
		out = t.u.Unify(out, t.schema(sr, name))
	}
	return out
}

// names builds the name set for a named type: the schema's title is a given
// name, the property context an inferred one.
func (t *translator) names(s *openapi3.Schema, name string) graph.NameSet {
	if s.Title != "" {
		return graph.Given(s.Title)
	}
	return graph.Inferred(name)
}

// reportRefinements records the refinement constraints the type graph does
// not model.
func (t *translator) reportRefinements(s *openapi3.Schema, name string) {
	if s.Pattern != "" {
		t.issue(name, "pattern constraints are not supported")
	}
	if s.Min != nil || s.Max != nil {
		t.issue(name, "numeric range constraints are not supported")
	}
	if s.MinLength != 0 || s.MaxLength != nil {
		t.issue(name, "string length constraints are not supported")
	}
}

func isObjectSchema(s *openapi3.Schema) bool {
	if s.Type != nil && s.Type.Is("object") {
		return true
	}
	return len(s.Properties) > 0
}

// additionalAllowed reports whether the schema admits additional properties:
// present and not false.
func additionalAllowed(s *openapi3.Schema) bool {
	ap := s.AdditionalProperties
	if ap.Schema != nil {
		return true
	}
	return ap.Has != nil && *ap.Has
}

func stringValues(values []any) ([]string, bool) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
