package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"authoring-kit/internal/kinds"
	"authoring-kit/internal/meta"
	"authoring-kit/internal/output"
	"authoring-kit/internal/target"
)

func newKindsCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "kinds [kind...]",
		Short: "List the descriptor kinds and their properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKinds(cmd, args, noColor)
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func runKinds(cmd *cobra.Command, names []string, noColor bool) error {
	catalog := kinds.DefaultCatalog()

	selected := catalog.Kinds()
	if len(names) > 0 {
		selected = selected[:0:0]

		for _, name := range names {
			k, ok := catalog.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown kind %q", name)
			}

			selected = append(selected, k)
		}
	}

	w := cmd.OutOrStdout()

	for i, k := range selected {
		if i > 0 {
			fmt.Fprintln(w)
		}

		scopes := strings.Join(kinds.ScopesOf(k.Name()), ", ")
		if scopes == "" {
			scopes = "-"
		}

		fmt.Fprintf(w, "%s (scopes: %s)\n", k.Name(), scopes)

		tbl := newPropertyTable(w, noColor)
		for _, p := range k.Properties() {
			tbl.AddRow(p.Name, p.Type.String(), p.Attr, defaultText(p), flagsText(p))
		}

		tbl.Render()
	}

	return nil
}

func newPropertyTable(w io.Writer, noColor bool) *output.Table {
	return output.NewTable(w, noColor, "PROPERTY", "TYPE", "ATTRIBUTE", "DEFAULT", "FLAGS")
}

func defaultText(p *meta.PropertySpec) string {
	if !p.HasDefault {
		return ""
	}

	if s, ok := target.RenderValue(p.Default); ok {
		return s
	}

	return fmt.Sprint(p.Default)
}

func flagsText(p *meta.PropertySpec) string {
	var flags []string

	if p.Node != "" {
		flags = append(flags, "node="+p.Node)
	}

	if p.Skip {
		flags = append(flags, "skip")
	}

	if p.ListMerge {
		flags = append(flags, "list")
	}

	return strings.Join(flags, ",")
}
