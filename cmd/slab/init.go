package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slab-dev/slab/internal/config"
)

// The starter compiles into the generated render function, where only
// _buf and data are in scope, so the output expression binds its own
// local first.
const starterTemplate = `doctype 5
html
  head
    title My slab site
  body
    - greeting := "Hello from slab"
    h1.greeting= greeting
    p
      | Edit templates/index.slab and run
      code slab build
`

func initCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new slab project",
		Long: `Create a new slab project in the given directory (default ".").

Writes a slab.json with default settings and a starter template in
the templates directory.

Examples:
  slab init
  slab init my-site
  slab init my-site --name=marketing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir, name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (default: directory name)")

	return cmd
}

func runInit(dir, name string) error {
	if config.Exists(dir) {
		return fmt.Errorf("%s already contains a slab.json", dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	cfg := config.New()
	cfg.Name = name
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		return err
	}

	templatesDir := filepath.Join(dir, cfg.Paths.Templates)
	if err := os.MkdirAll(templatesDir, 0755); err != nil {
		return err
	}

	starterPath := filepath.Join(templatesDir, "index.slab")
	if err := os.WriteFile(starterPath, []byte(starterTemplate), 0644); err != nil {
		return err
	}

	printBanner()
	fmt.Println()
	success("Created project %s", name)
	info("slab.json")
	info(filepath.Join(cfg.Paths.Templates, "index.slab"))
	fmt.Println()
	fmt.Println("  Next steps:")
	if dir != "." {
		fmt.Printf("    cd %s\n", dir)
	}
	fmt.Println("    slab build")
	fmt.Println()

	return nil
}
