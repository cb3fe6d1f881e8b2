// Package main is the entry point of the authorkit CLI.
//
// authorkit reads component types from Go packages and compiles the
// metadata attached to them into authoring trees:
//   - loads packages and discovers classes (struct types)
//   - builds one tree per class and scope (.content, cq:dialog, ...)
//   - prints or writes the trees as YAML or JSON
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
