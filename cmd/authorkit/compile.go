package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"authoring-kit/internal/analyze"
	"authoring-kit/internal/compile"
	"authoring-kit/internal/config"
	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/output"
	"authoring-kit/internal/render"
	"authoring-kit/internal/source"
)

const outputFileMode = 0o644

func newCompileCmd() *cobra.Command {
	var (
		typeNames []string
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "compile <packages...>",
		Short: "Compile the component types of Go packages",
		Long: `Load the given Go packages, compile every struct type carrying a facet
descriptor (Component, Dialog, DesignDialog, EditConfig, ChildEditConfig,
HTMLTag) and print one tree per class and scope.

With --output the trees are written to <dir>/<Class>/<scope>.<format>.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, typeNames, noColor)
		},
	}

	f := cmd.Flags()
	f.StringSliceVarP(&typeNames, "type", "t", nil, "only compile these types (repeatable)")
	f.String("format", "", "output format: yaml or json")
	f.StringP("output", "o", "", "write trees into this directory instead of stdout")
	f.Bool("strict", false, "exit non-zero when any error diagnostic is reported")
	f.String("tag-key", "", "struct tag key and directive prefix (default authorkit)")
	f.String("name-prefix", "", "prefix of rendered field names (default ./)")
	f.StringSlice("scopes", nil, "only emit these scopes")
	f.BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	return cmd
}

func runCompile(cmd *cobra.Command, patterns, typeNames []string, noColor bool) error {
	loader := config.NewLoader()

	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags()} {
		if err := loader.BindFlags(fs); err != nil {
			return err
		}
	}

	cfg, err := loader.Load(flagConfig)
	if err != nil {
		return err
	}

	if used := loader.ConfigFileUsed(); used != "" {
		output.Debug("config loaded", "file", used)
	}

	format, _ := render.ParseFormat(cfg.Format)
	diags := &diagnostic.Diagnostics{}

	analyzer := analyze.NewAnalyzer(
		analyze.WithTagKey(cfg.TagKey),
		analyze.WithSink(diags),
		analyze.WithLogger(output.Logger),
	)

	classes, err := analyzer.LoadPackages(patterns...)
	if err != nil {
		return err
	}

	classes, err = selectClasses(classes, typeNames)
	if err != nil {
		return err
	}

	compiler := compile.New(nil, cfg.CompileConfig(), output.Logger)

	batch, compileErr := compiler.CompileAll(classes)
	diags.Merge(batch.Diagnostics)

	if err := emit(cmd.OutOrStdout(), batch.Results, cfg.Output, format); err != nil {
		return err
	}

	output.PrintDiagnostics(cmd.ErrOrStderr(), diags, output.DiagnosticOptions{NoColor: noColor})

	if compileErr != nil {
		return compileErr
	}

	if cfg.Strict && diags.HasErrors() {
		return compile.ErrStrict
	}

	return nil
}

// selectClasses keeps the named classes, or every class when none is
// named. Unknown names are an error.
func selectClasses(classes []*source.Class, names []string) ([]*source.Class, error) {
	if len(names) == 0 {
		return classes, nil
	}

	var (
		out  []*source.Class
		errs []error
	)

	for _, name := range names {
		i := slices.IndexFunc(classes, func(c *source.Class) bool {
			return c.Name() == name || c.QualifiedName() == name
		})

		if i < 0 {
			errs = append(errs, fmt.Errorf("type %q not found", name))
			continue
		}

		out = append(out, classes[i])
	}

	return out, errors.Join(errs...)
}

// emit prints every root to w, or writes one file per root under dir.
func emit(w io.Writer, results []*compile.Result, dir string, format render.Format) error {
	for _, res := range results {
		for _, root := range res.Roots {
			if dir == "" {
				fmt.Fprintf(w, "# %s %s\n", res.Class.Name(), root.Scope)

				if err := render.Encode(w, root.Node, format); err != nil {
					return err
				}

				continue
			}

			path := filepath.Join(dir, render.FileName(res.Class.Name(), root.Scope, format))
			if err := writeFile(path, root, format); err != nil {
				return err
			}

			output.Info("written", "file", path)
		}
	}

	return nil
}

func writeFile(path string, root compile.Root, format render.Format) error {
	data, err := render.Marshal(root.Node, format)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, data, outputFileMode); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}

	return nil
}
