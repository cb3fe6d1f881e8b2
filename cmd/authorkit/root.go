package main

import (
	"github.com/spf13/cobra"

	"authoring-kit/internal/output"
)

var (
	// Global flags
	flagConfig  string
	flagVerbose bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "authorkit",
		Short: "Compile component metadata into authoring trees",
		Long: `authorkit compiles descriptors attached to Go component types into
authoring trees: component properties, dialogs, edit configs and html tags.

Descriptors are declared with authorkit struct tags on fields and
//authorkit: directives in type and method doc comments.`,
		PersistentPreRunE: initializeGlobals,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file (default ./authorkit.yaml)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "increase output verbosity")

	root.AddCommand(newCompileCmd())
	root.AddCommand(newKindsCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// initializeGlobals sets up logging based on global flags.
func initializeGlobals(_ *cobra.Command, _ []string) error {
	output.SetupLogging(flagVerbose)
	output.Debug("authorkit started", "version", version)

	return nil
}
