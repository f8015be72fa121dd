// Snav moves a keyboard "interest" cursor around a document laid out in the
// terminal.
//
// Usage:
//
//	snav [command] [flags]
//
// Documents are YAML layouts or HTML files with inline geometry.
// See 'snav --help' for available commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
