// Package graphql translates a GraphQL introspection result (the __schema
// query) into a type graph. Object and interface types become classes, enums
// become enums, and union types unify their members; fields are nullable
// unless wrapped in NON_NULL.
package graphql

import (
	"fmt"
	"sort"

	gojson "github.com/goccy/go-json"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/utils"
)

type introspection struct {
	Data   *payload   `json:"data"`
	Schema *schemaDoc `json:"__schema"`
}

type payload struct {
	Schema *schemaDoc `json:"__schema"`
}

type schemaDoc struct {
	QueryType *typeRef   `json:"queryType"`
	Types     []fullType `json:"types"`
}

type fullType struct {
	Kind          string      `json:"kind"`
	Name          string      `json:"name"`
	Fields        []field     `json:"fields"`
	InputFields   []inputItem `json:"inputFields"`
	EnumValues    []enumValue `json:"enumValues"`
	PossibleTypes []typeRef   `json:"possibleTypes"`
}

type field struct {
	Name string  `json:"name"`
	Type typeRef `json:"type"`
}

type inputItem struct {
	Name string  `json:"name"`
	Type typeRef `json:"type"`
}

type enumValue struct {
	Name string `json:"name"`
}

type typeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	OfType *typeRef `json:"ofType"`
}

// Translate parses data as an introspection result and registers the query
// root's type under name as a top level of g.
func Translate(g *graph.Graph, name string, data []byte) (graph.Type, error) {
	var doc introspection
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return graph.Type{}, fmt.Errorf("failed to parse GraphQL introspection: %w", err)
	}
	schema := doc.Schema
	if schema == nil && doc.Data != nil {
		schema = doc.Data.Schema
	}
	if schema == nil {
		return graph.Type{}, fmt.Errorf("introspection result has no __schema")
	}
	if schema.QueryType == nil || schema.QueryType.Name == "" {
		return graph.Type{}, fmt.Errorf("introspection result has no query type")
	}

	t := &translator{
		g:       g,
		u:       graph.NewUnifier(g, false),
		types:   map[string]*fullType{},
		classes: map[string]graph.ClassID{},
		enums:   map[string]*graph.Enum{},
	}
	for i := range schema.Types {
		ft := &schema.Types[i]
		if ft.Name != "" {
			t.types[ft.Name] = ft
		}
	}

	typ, err := t.namedType(schema.QueryType.Name)
	if err != nil {
		return graph.Type{}, err
	}
	g.NameType(typ, name, true)
	g.AddTopLevel(name, typ)
	return typ, nil
}

type translator struct {
	g       *graph.Graph
	u       *graph.Unifier
	types   map[string]*fullType
	classes map[string]graph.ClassID
	enums   map[string]*graph.Enum
}

// namedType translates a type by name from the introspection's type list.
func (t *translator) namedType(name string) (graph.Type, error) {
	ft, ok := t.types[name]
	if !ok {
		return graph.Type{}, fmt.Errorf("introspection does not define type %q", name)
	}
	switch ft.Kind {
	case "OBJECT", "INTERFACE", "INPUT_OBJECT":
		id, err := t.class(ft)
		if err != nil {
			return graph.Type{}, err
		}
		return graph.ClassRef(id), nil
	case "ENUM":
		return graph.EnumOf(t.enum(ft)), nil
	case "UNION":
		out := graph.None()
		for _, m := range ft.PossibleTypes {
			mt, err := t.namedType(m.Name)
			if err != nil {
				return graph.Type{}, err
			}
			out = t.u.Unify(out, mt)
		}
		if out.Kind == graph.KindNone {
			return graph.Type{}, fmt.Errorf("union type %q has no members", name)
		}
		return out, nil
	case "SCALAR":
		return scalarType(name), nil
	default:
		return graph.Type{}, fmt.Errorf("unsupported type kind %q for %q", ft.Kind, name)
	}
}

// class translates an object-like type, registering its arena entry before
// the fields so recursive types resolve onto it.
func (t *translator) class(ft *fullType) (graph.ClassID, error) {
	if id, ok := t.classes[ft.Name]; ok {
		return id, nil
	}
	id := t.g.Allocate()
	t.classes[ft.Name] = id

	data := graph.NewClass(graph.Given(ft.Name))
	for _, f := range ft.Fields {
		pt, err := t.fieldType(&f.Type, f.Name)
		if err != nil {
			return 0, err
		}
		data.Set(f.Name, pt)
	}
	for _, f := range ft.InputFields {
		pt, err := t.fieldType(&f.Type, f.Name)
		if err != nil {
			return 0, err
		}
		data.Set(f.Name, pt)
	}
	t.g.Fill(id, data)
	return id, nil
}

func (t *translator) enum(ft *fullType) *graph.Enum {
	if e, ok := t.enums[ft.Name]; ok {
		return e
	}
	values := make([]string, 0, len(ft.EnumValues))
	for _, v := range ft.EnumValues {
		values = append(values, v.Name)
	}
	sort.Strings(values)
	e := graph.NewEnum(graph.Given(ft.Name), values...)
	t.enums[ft.Name] = e
	return e
}

// fieldType translates a field's type reference. GraphQL types are nullable
// by default; NON_NULL unwraps to the plain inner type.
func (t *translator) fieldType(ref *typeRef, name string) (graph.Type, error) {
	if ref.Kind == "NON_NULL" {
		return t.typeRef(ref.OfType, name)
	}
	inner, err := t.typeRef(ref, name)
	if err != nil {
		return graph.Type{}, err
	}
	return t.u.Nullify(inner), nil
}

func (t *translator) typeRef(ref *typeRef, name string) (graph.Type, error) {
	if ref == nil {
		return graph.Type{}, fmt.Errorf("field %q has an incomplete type reference", name)
	}
	switch ref.Kind {
	case "NON_NULL":
		return t.typeRef(ref.OfType, name)
	case "LIST":
		elem, err := t.fieldType(ref.OfType, utils.Singular(name))
		if err != nil {
			return graph.Type{}, err
		}
		return graph.ArrayOf(elem), nil
	case "SCALAR":
		return scalarType(ref.Name), nil
	default:
		return t.namedType(ref.Name)
	}
}

// scalarType maps the built-in scalars; custom scalars travel as strings.
func scalarType(name string) graph.Type {
	switch name {
	case "Int":
		return graph.Prim(graph.KindInteger)
	case "Float":
		return graph.Prim(graph.KindDouble)
	case "Boolean":
		return graph.Prim(graph.KindBool)
	default:
		return graph.Prim(graph.KindString)
	}
}
