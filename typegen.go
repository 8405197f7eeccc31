// Package typegen turns JSON samples, JSON Schema documents, and GraphQL
// introspection results into statically typed source code.
//
// The pipeline infers a canonical type graph from the inputs, unifying
// samples of the same top level into one minimal description, then resolves
// collision-free identifiers and renders the graph through a per-language
// renderer.
//
// Quick Start:
//
//	import "github.com/blimu-dev/typegen"
//
//	result, err := typegen.GenerateFromSamples("go", "Person",
//		[][]byte{[]byte(`{"name": "Ada", "age": 36}`)})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(result.String())
//
// For configuration-driven use (several top levels, schema inputs, renderer
// options), see Generate and the config package.
package typegen

import (
	"fmt"
	"os"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/graphql"
	"github.com/blimu-dev/typegen/pkg/infer"
	"github.com/blimu-dev/typegen/pkg/jsonschema"
	"github.com/blimu-dev/typegen/pkg/renderer"
	"github.com/blimu-dev/typegen/pkg/renderer/golang"
	"github.com/blimu-dev/typegen/pkg/renderer/schema"
	"github.com/blimu-dev/typegen/pkg/renderer/typescript"
)

// DefaultRegistry returns a registry with all built-in languages.
func DefaultRegistry() *renderer.Registry {
	registry := renderer.NewRegistry()
	registry.Register(golang.NewGoRenderer())
	registry.Register(typescript.NewTypeScriptRenderer())
	registry.Register(schema.NewSchemaRenderer())
	return registry
}

// Output is the result of a generation run: the rendered artifact plus the
// diagnostics the schema translators produced before emission.
type Output struct {
	Result       renderer.Result
	SchemaIssues []jsonschema.Issue
}

// Generate runs the full pipeline for a configuration: read inputs, build
// and canonicalize the type graph, resolve names, and render.
func Generate(cfg *config.Config) (*Output, error) {
	return GenerateWithRegistry(DefaultRegistry(), cfg)
}

// GenerateWithRegistry is Generate with a custom language registry.
func GenerateWithRegistry(registry *renderer.Registry, cfg *config.Config) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lang, ok := registry.Get(cfg.Language)
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", cfg.Language)
	}

	g := graph.New()
	inferrer := infer.New(g, cfg.InferMaps())
	out := &Output{}

	for _, tl := range cfg.TopLevels {
		switch {
		case len(tl.Samples) > 0:
			values := make([]any, 0, len(tl.Samples))
			for _, path := range tl.Samples {
				data, err := os.ReadFile(path)
				if err != nil {
					return nil, err
				}
				v, err := infer.Decode(data)
				if err != nil {
					return nil, fmt.Errorf("sample %s: %w", path, err)
				}
				values = append(values, v)
			}
			inferrer.TopLevel(tl.Name, values...)
		case tl.Schema != "":
			data, err := os.ReadFile(tl.Schema)
			if err != nil {
				return nil, err
			}
			_, issues, err := jsonschema.Translate(g, cfg.InferMaps(), tl.Name, data)
			if err != nil {
				return nil, fmt.Errorf("schema %s: %w", tl.Schema, err)
			}
			out.SchemaIssues = append(out.SchemaIssues, issues...)
		case tl.GraphQL != "":
			data, err := os.ReadFile(tl.GraphQL)
			if err != nil {
				return nil, err
			}
			if _, err := graphql.Translate(g, tl.Name, data); err != nil {
				return nil, fmt.Errorf("graphql %s: %w", tl.GraphQL, err)
			}
		}
	}

	graph.Canonicalize(g, cfg.InferMaps())

	result, err := renderer.Render(g, lang, renderer.Options(cfg.RendererOptions))
	if err != nil {
		return nil, err
	}
	out.Result = result
	return out, nil
}

// GenerateFromSamples infers types for one top level from in-memory JSON
// samples and renders them in the given language.
func GenerateFromSamples(language, name string, samples [][]byte, options ...map[string]string) (renderer.Result, error) {
	g := graph.New()
	inferrer := infer.New(g, true)
	values := make([]any, 0, len(samples))
	for _, data := range samples {
		v, err := infer.Decode(data)
		if err != nil {
			return renderer.Result{}, err
		}
		values = append(values, v)
	}
	inferrer.TopLevel(name, values...)
	graph.Canonicalize(g, true)
	return render(language, g, options)
}

// GenerateFromSchema translates an in-memory JSON Schema document for one
// top level and renders it in the given language.
func GenerateFromSchema(language, name string, schemaData []byte, options ...map[string]string) (renderer.Result, error) {
	g := graph.New()
	if _, _, err := jsonschema.Translate(g, true, name, schemaData); err != nil {
		return renderer.Result{}, err
	}
	graph.Canonicalize(g, true)
	return render(language, g, options)
}

func render(language string, g *graph.Graph, options []map[string]string) (renderer.Result, error) {
	lang, ok := DefaultRegistry().Get(language)
	if !ok {
		return renderer.Result{}, fmt.Errorf("unsupported language: %s", language)
	}
	opts := renderer.Options{}
	for _, m := range options {
		for k, v := range m {
			opts[k] = v
		}
	}
	return renderer.Render(g, lang, opts)
}
