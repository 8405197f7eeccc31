// Package typescript renders a type graph as TypeScript type declarations:
// one interface per class, a type alias per named union, a string-literal
// union alias per enum, and a type alias per top level whose type is not
// itself a named type.
package typescript

import (
	"github.com/spf13/cast"

	"github.com/blimu-dev/typegen/pkg/graph"
	"github.com/blimu-dev/typegen/pkg/naming"
	"github.com/blimu-dev/typegen/pkg/renderer"
	"github.com/blimu-dev/typegen/pkg/utils"
)

// TypeScriptRenderer implements the renderer.Language interface for
// TypeScript.
type TypeScriptRenderer struct{}

// NewTypeScriptRenderer creates a new TypeScript renderer.
func NewTypeScriptRenderer() *TypeScriptRenderer {
	return &TypeScriptRenderer{}
}

// Name returns the language identifier.
func (g *TypeScriptRenderer) Name() string {
	return "typescript"
}

// Keywords returns TypeScript's reserved words.
func (g *TypeScriptRenderer) Keywords() []string {
	return []string{
		"any", "as", "boolean", "break", "case", "catch", "class", "const",
		"continue", "debugger", "declare", "default", "delete", "do", "else",
		"enum", "export", "extends", "false", "finally", "for", "function",
		"get", "if", "implements", "import", "in", "instanceof", "interface",
		"let", "module", "new", "null", "number", "object", "package",
		"private", "protected", "public", "require", "return", "set",
		"static", "string", "super", "switch", "symbol", "this", "throw",
		"true", "try", "type", "typeof", "var", "void", "while", "with",
		"yield",
	}
}

// NamedTypeNamer styles type identifiers as PascalCase.
func (g *TypeScriptRenderer) NamedTypeNamer() *naming.Namer {
	return &naming.Namer{Style: utils.ToPascalCase, Prefixes: []string{"the"}}
}

// PropertyNamer styles property identifiers as camelCase. Emission uses the
// original JSON key so parsed data needs no renaming; the styled name only
// orders properties.
func (g *TypeScriptRenderer) PropertyNamer() *naming.Namer {
	return &naming.Namer{Style: utils.ToCamelCase, Prefixes: []string{"property"}}
}

// TopLevelName styles top-level alias identifiers.
func (g *TypeScriptRenderer) TopLevelName(name string) string {
	return utils.ToPascalCase(name)
}

// Emit writes the TypeScript source structure for the graph.
func (g *TypeScriptRenderer) Emit(r *renderer.Renderer) error {
	readonly := cast.ToBool(r.Options["readonly"])

	first := true
	sep := func() {
		if !first {
			r.Blank()
		}
		first = false
	}

	r.ForEachTopLevel(renderer.BlankNone, func(t graph.Type, name string) {
		if _, err := r.NameForNamedType(t); err == nil {
			return
		}
		sep()
		r.Linef("export type %s = %s;", name, tsType(r, t))
	})

	r.ForEachClass(renderer.BlankNone, func(id graph.ClassID, name string) {
		sep()
		r.Linef("export interface %s {", name)
		r.Indented(func() {
			r.ForEachProperty(id, renderer.BlankNone, func(_, jsonName string, t graph.Type) {
				prefix := ""
				if readonly {
					prefix = "readonly "
				}
				r.Linef("%s%s: %s;", prefix, quotePropertyName(jsonName), tsType(r, t))
			})
		})
		r.Line("}")
	})

	// Enums are not part of the TypeScript surface this renderer targets; a
	// literal union stands in and the gap is surfaced as an issue.
	r.ForEachEnum(renderer.BlankNone, func(e *graph.Enum, name string) {
		sep()
		r.Issue("enum " + name + " has no TypeScript representation; emitted a string literal union")
		r.Linef("export type %s = %s;", name, literalUnion(e))
	})

	r.ForEachUnion(renderer.BlankNone, func(u *graph.Union, name string) {
		sep()
		r.Linef("export type %s = %s;", name, unionMembers(r, u))
	})

	return nil
}
