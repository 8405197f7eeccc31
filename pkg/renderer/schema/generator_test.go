package schema

import (
	"testing"

	gojson "github.com/goccy/go-json"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/jsonschema"
	"github.com/blimu-dev/typegen/pkg/renderer"
)

func renderDoc(t *testing.T, g *graph.Graph) map[string]any {
	t.Helper()
	res, err := renderer.Render(g, NewSchemaRenderer(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var doc map[string]any
	if err := gojson.Unmarshal([]byte(res.String()), &doc); err != nil {
		t.Fatalf("rendered schema is not valid JSON: %v\n%s", err, res.String())
	}
	return doc
}

func personGraph() *graph.Graph {
	g := graph.New()
	c := graph.NewClass(graph.Given("Person"))
	c.Set("name", graph.Prim(graph.KindString))
	c.Set("age", graph.UnionOf(&graph.Union{Primitives: graph.PrimNull | graph.PrimInteger}))
	g.AddTopLevel("Person", graph.ClassRef(g.AddClass(c)))
	graph.Canonicalize(g, true)
	return g
}

func TestEmitSchemaDocument(t *testing.T) {
	doc := renderDoc(t, personGraph())

	if doc["$schema"] != "http://json-schema.org/draft-06/schema#" {
		t.Errorf("$schema = %v", doc["$schema"])
	}
	if doc["$ref"] != "#/definitions/Person" {
		t.Errorf("$ref = %v, expected #/definitions/Person", doc["$ref"])
	}

	defs, ok := doc["definitions"].(map[string]any)
	if !ok {
		t.Fatal("missing definitions")
	}
	person, ok := defs["Person"].(map[string]any)
	if !ok {
		t.Fatal("missing Person definition")
	}
	props := person["properties"].(map[string]any)
	name := props["name"].(map[string]any)
	if name["type"] != "string" {
		t.Errorf("name type = %v", name["type"])
	}
	age := props["age"].(map[string]any)
	if _, hasAnyOf := age["anyOf"]; !hasAnyOf {
		t.Errorf("nullable age should render as anyOf, got %v", age)
	}
	required, ok := person["required"].([]any)
	if !ok || len(required) != 1 || required[0] != "name" {
		t.Errorf("required = %v, expected [name]", person["required"])
	}
}

func TestEmitSchemaRoundTripsThroughTranslator(t *testing.T) {
	res, err := renderer.Render(personGraph(), NewSchemaRenderer(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// The emitted schema must be readable back into an equivalent graph.
	g := graph.New()
	typ, issues, err := jsonschema.Translate(g, true, "Person", []byte(res.String()))
	if err != nil {
		t.Fatalf("Translate of the rendered schema failed: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("rendered schema should translate cleanly, got %v", issues)
	}
	if typ.Kind != graph.KindClass {
		t.Fatalf("round trip lost the class, got %s", typ.Kind)
	}
	age, ok := g.Class(typ.Class).Get("age")
	if !ok {
		t.Fatal("round trip lost property age")
	}
	inner, nullable := age.Union.Nullable()
	if age.Kind != graph.KindUnion || !nullable || inner.Kind != graph.KindInteger {
		t.Errorf("round trip changed age to %v, expected nullable integer", age)
	}
}

func TestEmitSchemaStable(t *testing.T) {
	g := personGraph()
	first, err := renderer.Render(g, NewSchemaRenderer(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := renderer.Render(g, NewSchemaRenderer(), nil)
	if err != nil {
		t.Fatalf("second Render failed: %v", err)
	}
	if first.String() != second.String() {
		t.Error("schema output should be byte-identical across renders")
	}
}

func TestEmitMultipleTopLevels(t *testing.T) {
	g := graph.New()
	a := graph.NewClass(graph.Given("A"))
	a.Set("x", graph.Prim(graph.KindInteger))
	g.AddTopLevel("A", graph.ClassRef(g.AddClass(a)))
	b := graph.NewClass(graph.Given("B"))
	b.Set("y", graph.Prim(graph.KindString))
	g.AddTopLevel("B", graph.ClassRef(g.AddClass(b)))
	graph.Canonicalize(g, true)

	doc := renderDoc(t, g)
	oneOf, ok := doc["oneOf"].([]any)
	if !ok || len(oneOf) != 2 {
		t.Fatalf("expected a two-member oneOf, got %v", doc["oneOf"])
	}
}
