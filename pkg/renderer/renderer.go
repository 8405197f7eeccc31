// Package renderer is the language-independent emission layer. It assigns
// collision-free names to every named type of a canonical graph and hands
// per-language renderers a deterministic iteration API over top levels,
// classes, enums, and named unions.
package renderer

import (
	"fmt"
	"sort"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/naming"
)

// Options carries renderer-specific settings from the configuration, as
// loosely typed strings; languages coerce them as needed.
type Options map[string]string

// Language is the capability set a target language implements. The
// scaffolding is parameterized over this interface; concrete renderers hold
// no other state.
type Language interface {
	// Name returns the language identifier used in configuration.
	Name() string
	// Keywords returns the language's reserved words; no assigned name may
	// collide with them.
	Keywords() []string
	// NamedTypeNamer styles class, enum, and named-union identifiers.
	NamedTypeNamer() *naming.Namer
	// PropertyNamer styles property identifiers.
	PropertyNamer() *naming.Namer
	// TopLevelName styles the identifier of a top-level entry point whose
	// type is not itself a named type.
	TopLevelName(name string) string
	// Emit writes the source structure for the graph through r.
	Emit(r *Renderer) error
}

// Registry manages available languages.
type Registry struct {
	languages map[string]Language
}

// NewRegistry creates an empty language registry.
func NewRegistry() *Registry {
	return &Registry{languages: make(map[string]Language)}
}

// Register adds a language to the registry.
func (r *Registry) Register(lang Language) {
	r.languages[lang.Name()] = lang
}

// Get retrieves a language by name.
func (r *Registry) Get(name string) (Language, bool) {
	lang, ok := r.languages[name]
	return lang, ok
}

// Available returns all registered language names, sorted.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.languages))
	for n := range r.languages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Render validates the graph, resolves names, and emits source through the
// given language. The graph must already be canonicalized.
func Render(g *graph.Graph, lang Language, opts Options) (Result, error) {
	if err := g.Validate(); err != nil {
		return Result{}, err
	}
	if opts == nil {
		opts = Options{}
	}
	r := &Renderer{
		Source:  &Source{},
		Options: opts,
		g:       g,
		lang:    lang,
	}
	r.collectNamedTypes()
	if err := r.assignNames(); err != nil {
		return Result{}, err
	}
	if err := lang.Emit(r); err != nil {
		return Result{}, err
	}
	return r.Source.Result(), nil
}

// Renderer is the per-session emission state handed to a Language.
type Renderer struct {
	*Source
	Options Options

	g    *graph.Graph
	lang Language

	// Named types in discovery order (a stable depth-first walk of the top
	// levels), keyed for lookup by followed class id or payload pointer.
	classes    []graph.ClassID
	enums      []*graph.Enum
	unions     []*graph.Union
	classNames map[graph.ClassID]*naming.Name
	enumNames  map[*graph.Enum]*naming.Name
	unionNames map[*graph.Union]*naming.Name
	propNames  map[graph.ClassID]map[string]*naming.Name
	topNames   map[string]*naming.Name
}

// Graph returns the graph being rendered.
func (r *Renderer) Graph() *graph.Graph { return r.g }

// UnionNeedsName reports whether a union must be materialized as a named
// type: it is not a single kind and not a plain optional.
func UnionNeedsName(u *graph.Union) bool {
	if _, ok := u.Single(); ok {
		return false
	}
	if _, ok := u.Nullable(); ok {
		return false
	}
	return true
}

// collectNamedTypes walks the top levels depth-first and records every
// class, enum, and named union in discovery order.
func (r *Renderer) collectNamedTypes() {
	r.classNames = map[graph.ClassID]*naming.Name{}
	r.enumNames = map[*graph.Enum]*naming.Name{}
	r.unionNames = map[*graph.Union]*naming.Name{}
	r.propNames = map[graph.ClassID]map[string]*naming.Name{}
	r.topNames = map[string]*naming.Name{}

	seenClasses := map[graph.ClassID]bool{}
	seenEnums := map[*graph.Enum]bool{}
	seenUnions := map[*graph.Union]bool{}

	var visit func(t graph.Type)
	visit = func(t graph.Type) {
		switch t.Kind {
		case graph.KindArray, graph.KindMap:
			visit(*t.Items)
		case graph.KindClass:
			id := r.g.Follow(t.Class)
			if seenClasses[id] {
				return
			}
			seenClasses[id] = true
			r.classes = append(r.classes, id)
			for _, p := range r.g.Class(id).Properties() {
				visit(p.Type)
			}
		case graph.KindEnum:
			if !seenEnums[t.Enum] {
				seenEnums[t.Enum] = true
				r.enums = append(r.enums, t.Enum)
			}
		case graph.KindUnion:
			u := t.Union
			if UnionNeedsName(u) && !seenUnions[u] {
				seenUnions[u] = true
				r.unions = append(r.unions, u)
			}
			u.ForEach(func(m graph.Type) {
				if m.Kind != graph.KindUnion {
					visit(m)
				}
			})
		}
	}
	for _, tl := range r.g.TopLevels() {
		visit(tl.Type)
	}
}

// assignNames builds the naming forest and resolves it. The root namespace
// carries only the language keywords; named types share one child namespace,
// and each class gets its own child for properties, so a field may spell the
// same as a type but never the same as a keyword or a sibling field.
func (r *Renderer) assignNames() error {
	root := naming.NewNamespace(r.lang.Keywords()...)
	types := root.Child()
	typeNamer := r.lang.NamedTypeNamer()

	for _, id := range r.classes {
		raw := r.g.Class(id).Names.Primary()
		r.classNames[id] = types.AddSimple(raw, typeNamer)
	}
	for _, e := range r.enums {
		r.enumNames[e] = types.AddSimple(e.Names.Primary(), typeNamer)
	}
	for _, u := range r.unions {
		r.unionNames[u] = types.AddSimple(u.Names.Primary(), typeNamer)
	}

	topLevelNamer := &naming.Namer{Style: r.lang.TopLevelName}
	for _, tl := range r.g.TopLevels() {
		if _, err := r.nameOfNamedType(tl.Type); err == nil {
			continue
		}
		r.topNames[tl.Name] = types.AddSimple(tl.Name, topLevelNamer)
	}

	propNamer := r.lang.PropertyNamer()
	for _, id := range r.classes {
		ns := root.Child()
		names := map[string]*naming.Name{}
		for _, p := range r.g.Class(id).Properties() {
			names[p.Name] = ns.AddSimple(p.Name, propNamer)
		}
		r.propNames[id] = names
	}

	return naming.Resolve(root)
}

// nameOfNamedType looks up the Name assigned to a named type.
func (r *Renderer) nameOfNamedType(t graph.Type) (*naming.Name, error) {
	switch t.Kind {
	case graph.KindClass:
		if n, ok := r.classNames[r.g.Follow(t.Class)]; ok {
			return n, nil
		}
	case graph.KindEnum:
		if n, ok := r.enumNames[t.Enum]; ok {
			return n, nil
		}
	case graph.KindUnion:
		if n, ok := r.unionNames[t.Union]; ok {
			return n, nil
		}
	}
	return nil, fmt.Errorf("no name assigned for %s type", t.Kind)
}
