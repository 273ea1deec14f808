package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slab-dev/slab/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬  ┌─┐┌┐
  └─┐│  ├─┤├┴┐
  └─┘┴─┘┴ ┴└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "slab",
		Short: "Compile slab templates to Go",
		Long: `Slab compiles indentation-based markup templates into Go source code.

Templates are compiled ahead of time into plain Go functions that
write to a strings.Builder, so rendering needs no runtime parser.

  • Tags with #id and .class shorthand
  • Escaped (=) and raw (==) output expressions
  • Inline Go statements (-) with automatic block closing
  • Whitespace control with trailing < and >
  • HTML, XHTML and XML output formats`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		initCmd(),
		buildCmd(),
		devCmd(),
		deployCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the slab ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
