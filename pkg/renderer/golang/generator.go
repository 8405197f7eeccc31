// Package golang renders a type graph as Go source: one struct per class,
// a string type with constants per enum, and a struct of optional members
// per named union.
package golang

import (
	"github.com/spf13/cast"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/naming"
	"github.com/blimu-dev/typegen/pkg/renderer"
	"github.com/blimu-dev/typegen/pkg/utils"
)

// GoRenderer implements the renderer.Language interface for Go.
type GoRenderer struct{}

// NewGoRenderer creates a new Go renderer.
func NewGoRenderer() *GoRenderer {
	return &GoRenderer{}
}

// Name returns the language identifier.
func (g *GoRenderer) Name() string {
	return "go"
}

// Keywords returns Go's reserved words.
func (g *GoRenderer) Keywords() []string {
	return []string{
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var",
	}
}

// NamedTypeNamer styles type identifiers as exported PascalCase.
func (g *GoRenderer) NamedTypeNamer() *naming.Namer {
	return &naming.Namer{Style: utils.ToPascalCase, Prefixes: []string{"the"}}
}

// PropertyNamer styles field identifiers as exported PascalCase.
func (g *GoRenderer) PropertyNamer() *naming.Namer {
	return &naming.Namer{Style: utils.ToPascalCase, Prefixes: []string{"field"}}
}

// TopLevelName styles top-level alias identifiers.
func (g *GoRenderer) TopLevelName(name string) string {
	return utils.ToPascalCase(name)
}

// Emit writes the Go source structure for the graph.
func (g *GoRenderer) Emit(r *renderer.Renderer) error {
	pkg := r.Options["package"]
	if pkg == "" {
		pkg = "main"
	}
	r.Linef("package %s", sanitizePackageName(pkg))

	var hasUnions bool
	r.ForEachUnion(renderer.BlankNone, func(*graph.Union, string) { hasUnions = true })
	if hasUnions {
		r.Blank()
		r.Line("import (")
		r.Indented(func() {
			r.Line(`"encoding/json"`)
			r.Line(`"fmt"`)
		})
		r.Line(")")
	}

	r.ForEachTopLevel(renderer.BlankNone, func(t graph.Type, name string) {
		if _, err := r.NameForNamedType(t); err == nil {
			return
		}
		r.Blank()
		r.Linef("type %s = %s", name, goType(r, t))
	})

	r.ForEachClass(renderer.BlankNone, func(id graph.ClassID, name string) {
		r.Blank()
		g.emitClass(r, id, name)
	})

	r.ForEachEnum(renderer.BlankNone, func(e *graph.Enum, name string) {
		r.Blank()
		g.emitEnum(r, e, name)
	})

	r.ForEachUnion(renderer.BlankNone, func(u *graph.Union, name string) {
		r.Blank()
		g.emitUnion(r, u, name)
	})

	return nil
}

func (g *GoRenderer) emitClass(r *renderer.Renderer, id graph.ClassID, name string) {
	omitEmpty := cast.ToBool(r.Options["omit-empty"])
	r.Linef("type %s struct {", name)
	r.Indented(func() {
		r.ForEachProperty(id, renderer.BlankNone, func(fieldName, jsonName string, t graph.Type) {
			tag := jsonName
			if omitEmpty && isNullable(t) {
				tag += ",omitempty"
			}
			r.Linef("%s %s `json:%q`", fieldName, goType(r, t), tag)
		})
	})
	r.Line("}")
}

func isNullable(t graph.Type) bool {
	if t.Kind != graph.KindUnion {
		return false
	}
	return t.Union.Has(graph.PrimNull)
}

func (g *GoRenderer) emitEnum(r *renderer.Renderer, e *graph.Enum, name string) {
	r.Linef("type %s string", name)
	r.Blank()
	r.Line("const (")
	r.Indented(func() {
		namer := g.NamedTypeNamer()
		forbidden := map[string]bool{}
		for _, v := range e.Values() {
			spelling := namer.Assign(v, forbidden)
			forbidden[spelling] = true
			r.Linef("%s%s %s = %q", name, spelling, name, v)
		}
	})
	r.Line(")")
}

// emitUnion renders a named union as a struct of pointer members with
// serializers that keep at most one member set.
func (g *GoRenderer) emitUnion(r *renderer.Renderer, u *graph.Union, name string) {
	members := unionMembers(r, u)

	r.Linef("type %s struct {", name)
	r.Indented(func() {
		for _, m := range members {
			r.Linef("%s *%s", m.field, m.goType)
		}
	})
	r.Line("}")

	r.Blank()
	r.Linef("func (x *%s) UnmarshalJSON(data []byte) error {", name)
	r.Indented(func() {
		r.Linef("*x = %s{}", name)
		r.Line(`if string(data) == "null" {`)
		r.Indented(func() { r.Line("return nil") })
		r.Line("}")
		for _, m := range members {
			r.Blank()
			r.Linef("var %s %s", m.local, m.goType)
			r.Linef("if err := json.Unmarshal(data, &%s); err == nil {", m.local)
			r.Indented(func() {
				r.Linef("x.%s = &%s", m.field, m.local)
				r.Line("return nil")
			})
			r.Line("}")
		}
		r.Blank()
		r.Linef("return fmt.Errorf(\"cannot unmarshal %%s into %s\", data)", name)
	})
	r.Line("}")

	r.Blank()
	r.Linef("func (x %s) MarshalJSON() ([]byte, error) {", name)
	r.Indented(func() {
		r.Line("switch {")
		for _, m := range members {
			r.Linef("case x.%s != nil:", m.field)
			r.Indented(func() { r.Linef("return json.Marshal(x.%s)", m.field) })
		}
		r.Line("}")
		r.Line(`return []byte("null"), nil`)
	})
	r.Line("}")
}
