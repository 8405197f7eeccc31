package typescript

import (
	"strings"
	"testing"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/renderer"
)

func renderGraph(t *testing.T, g *graph.Graph, opts renderer.Options) renderer.Result {
	t.Helper()
	res, err := renderer.Render(g, NewTypeScriptRenderer(), opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return res
}

func TestEmitInterface(t *testing.T) {
	g := graph.New()
	c := graph.NewClass(graph.Given("Person"))
	c.Set("name", graph.Prim(graph.KindString))
	c.Set("age", graph.Prim(graph.KindInteger))
	c.Set("nickname", graph.UnionOf(&graph.Union{Primitives: graph.PrimNull | graph.PrimString}))
	g.AddTopLevel("Person", graph.ClassRef(g.AddClass(c)))
	graph.Canonicalize(g, true)

	got := renderGraph(t, g, nil).String()
	want := "export interface Person {\n" +
		"\tage: number;\n" +
		"\tname: string;\n" +
		"\tnickname: string | null;\n" +
		"}\n"
	if got != want {
		t.Errorf("rendered output:\n%s\nexpected:\n%s", got, want)
	}
}

func TestEmitQuotedProperties(t *testing.T) {
	g := graph.New()
	c := graph.NewClass(graph.Given("Doc"))
	c.Set("content-type", graph.Prim(graph.KindString))
	c.Set("0count", graph.Prim(graph.KindInteger))
	g.AddTopLevel("Doc", graph.ClassRef(g.AddClass(c)))
	graph.Canonicalize(g, true)

	got := renderGraph(t, g, nil).String()
	for _, want := range []string{`"content-type": string;`, `"0count": number;`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestEmitTopLevelAlias(t *testing.T) {
	g := graph.New()
	g.AddTopLevel("Matrix", graph.ArrayOf(graph.ArrayOf(graph.Prim(graph.KindDouble))))
	graph.Canonicalize(g, true)

	got := renderGraph(t, g, nil).String()
	if !strings.Contains(got, "export type Matrix = Array<Array<number>>;") {
		t.Errorf("expected a top-level alias, got:\n%s", got)
	}
}

func TestEmitEnumRecordsIssue(t *testing.T) {
	g := graph.New()
	c := graph.NewClass(graph.Given("Root"))
	c.Set("color", graph.EnumOf(graph.NewEnum(graph.Inferred("color"), "red", "blue")))
	g.AddTopLevel("Root", graph.ClassRef(g.AddClass(c)))
	graph.Canonicalize(g, false)

	res := renderGraph(t, g, nil)
	got := res.String()
	if !strings.Contains(got, `export type Color = "red" | "blue";`) {
		t.Errorf("expected a literal union placeholder, got:\n%s", got)
	}

	var issues []renderer.Annotation
	for _, a := range res.Annotations {
		if a.Kind == renderer.AnnotationIssue {
			issues = append(issues, a)
		}
	}
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "enum") {
		t.Errorf("expected one enum issue annotation, got %v", res.Annotations)
	}
	if issues[0].Span.Start >= len(res.Lines) || !strings.Contains(res.Lines[issues[0].Span.Start], "Color") {
		t.Errorf("issue should anchor to the placeholder line, got span %v", issues[0].Span)
	}
}

func TestEmitNamedUnion(t *testing.T) {
	g := graph.New()
	c := graph.NewClass(graph.Given("Root"))
	c.Set("id", graph.UnionOf(&graph.Union{Primitives: graph.PrimInteger | graph.PrimString}))
	g.AddTopLevel("Root", graph.ClassRef(g.AddClass(c)))
	graph.Canonicalize(g, false)

	got := renderGraph(t, g, nil).String()
	if !strings.Contains(got, "export type Id = number | string;") {
		t.Errorf("expected a named union alias, got:\n%s", got)
	}
	if !strings.Contains(got, "id: Id;") {
		t.Errorf("the property should reference the named union, got:\n%s", got)
	}
}

func TestEmitReadonlyOption(t *testing.T) {
	g := graph.New()
	c := graph.NewClass(graph.Given("Root"))
	c.Set("a", graph.Prim(graph.KindInteger))
	g.AddTopLevel("Root", graph.ClassRef(g.AddClass(c)))
	graph.Canonicalize(g, true)

	got := renderGraph(t, g, renderer.Options{"readonly": "true"}).String()
	if !strings.Contains(got, "readonly a: number;") {
		t.Errorf("expected readonly properties, got:\n%s", got)
	}
}

func TestEmitMixedNumbersCollapse(t *testing.T) {
	g := graph.New()
	c := graph.NewClass(graph.Given("Root"))
	c.Set("n", graph.UnionOf(&graph.Union{Primitives: graph.PrimInteger | graph.PrimDouble}))
	g.AddTopLevel("Root", graph.ClassRef(g.AddClass(c)))
	graph.Canonicalize(g, true)

	got := renderGraph(t, g, nil).String()
	if !strings.Contains(got, "n: number;") {
		t.Errorf("mixed numbers should collapse to number, got:\n%s", got)
	}
}
