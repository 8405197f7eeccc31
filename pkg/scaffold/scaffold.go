// Package scaffold writes the support files around a generated source file:
// a module manifest and a README for the output package, rendered from
// embedded templates.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*
var templatesFS embed.FS

// Data is the template context for scaffold files.
type Data struct {
	// PackageName is the generated package or module name.
	PackageName string
	// Language is the target language identifier.
	Language string
	// SourceFile is the name of the generated source file.
	SourceFile string
	// TopLevels are the generated entry point names.
	TopLevels []string
}

// Write renders the scaffold files for a language into outDir. Languages
// without scaffolding are a no-op.
func Write(outDir string, data Data) error {
	var files map[string]string
	switch data.Language {
	case "go":
		files = map[string]string{
			"go.mod.gotmpl":    "go.mod",
			"README.md.gotmpl": "README.md",
		}
	case "typescript":
		files = map[string]string{
			"package.json.gotmpl": "package.json",
			"README.md.gotmpl":    "README.md",
		}
	default:
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for tmplName, target := range files {
		if err := renderFile(tmplName, filepath.Join(outDir, target), data); err != nil {
			return err
		}
	}
	return nil
}

// renderFile renders a template file to the target path
func renderFile(templateName, targetPath string, data Data) error {
	tmplContent, err := templatesFS.ReadFile("templates/" + templateName)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	tmpl, err := template.New(templateName).Funcs(sprig.TxtFuncMap()).Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	file, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", targetPath, err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return nil
}
