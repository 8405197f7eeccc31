package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	typegen "github.com/blimu-dev/typegen"
	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/scaffold"
)

func main() {
	root := &cobra.Command{
		Use:   "typegen",
		Short: "Generate typed source code from JSON samples and schemas",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newLanguagesCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var lang string
	var topLevel string
	var out string
	var samples []string
	var schemaPath string
	var graphqlPath string
	var noMaps bool
	var options map[string]string
	var withScaffold bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate types for one or more top levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
				if out != "" {
					cfg.Out = out
				}
			} else {
				cfg = &config.Config{
					Language:        lang,
					Out:             out,
					NoMaps:          noMaps,
					RendererOptions: options,
					TopLevels: []config.TopLevel{
						{
							Name:    topLevel,
							Samples: samples,
							Schema:  schemaPath,
							GraphQL: graphqlPath,
						},
					},
				}
			}

			output, err := typegen.Generate(cfg)
			if err != nil {
				return err
			}

			for _, issue := range output.SchemaIssues {
				log.Printf("schema issue: %s", issue)
			}
			for _, a := range output.Result.Annotations {
				log.Printf("%s at line %d: %s", a.Kind, a.Span.Start+1, a.Message)
			}

			if cfg.Out == "" {
				fmt.Print(output.Result.String())
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(cfg.Out), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfg.Out, []byte(output.Result.String()), 0o644); err != nil {
				return err
			}

			if withScaffold {
				names := make([]string, 0, len(cfg.TopLevels))
				for _, tl := range cfg.TopLevels {
					names = append(names, tl.Name)
				}
				pkg := cfg.RendererOptions["package"]
				if pkg == "" {
					pkg = "generated"
				}
				return scaffold.Write(filepath.Dir(cfg.Out), scaffold.Data{
					PackageName: pkg,
					Language:    cfg.Language,
					SourceFile:  filepath.Base(cfg.Out),
					TopLevels:   names,
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to typegen.yaml config")
	// Fallback single top-level flags
	cmd.Flags().StringVar(&lang, "lang", "go", "Target language")
	cmd.Flags().StringVar(&topLevel, "top-level", "TopLevel", "Name of the top-level type")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (stdout when omitted)")
	cmd.Flags().StringArrayVar(&samples, "src", nil, "JSON sample file (repeatable)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "JSON Schema file")
	cmd.Flags().StringVar(&graphqlPath, "graphql", "", "GraphQL introspection file")
	cmd.Flags().BoolVar(&noMaps, "no-maps", false, "Disable map inference")
	cmd.Flags().StringToStringVar(&options, "option", nil, "Renderer option key=value (repeatable)")
	cmd.Flags().BoolVar(&withScaffold, "scaffold", false, "Write package scaffolding next to the output file")

	return cmd
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List available target languages",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range typegen.DefaultRegistry().Available() {
				fmt.Println(name)
			}
		},
	}
}
