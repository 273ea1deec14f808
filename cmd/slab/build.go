package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/slab-dev/slab/internal/config"
	"github.com/slab-dev/slab/internal/errors"
	"github.com/slab-dev/slab/pkg/codegen"
	"github.com/slab-dev/slab/pkg/parser"
)

func buildCmd() *cobra.Command {
	var (
		output string
		pkg    string
		clean  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile templates to Go source",
		Long: `Compile every .slab template in the templates directory into Go
source files in the output directory.

Each template file produces one generated .go file containing a
Render function that writes the markup to a strings.Builder.

Examples:
  slab build
  slab build --output=internal/views
  slab build --package=views`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(output, pkg, clean)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from slab.json)")
	cmd.Flags().StringVar(&pkg, "package", "", "Package name for generated code (default from slab.json)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Clean output directory before build")

	return cmd
}

func runBuild(output, pkg string, clean bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if output != "" {
		cfg.Paths.Output = output
	}
	if pkg != "" {
		cfg.Paths.Package = pkg
	}

	if clean {
		info("Cleaning %s...", cfg.Paths.Output)
		if err := os.RemoveAll(cfg.OutputPath()); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	generator := codegen.NewGenerator(codegen.Options{
		Package:          cfg.Paths.Package,
		Format:           cfg.ASTFormat(),
		EscapeHTML:       cfg.EscapeHTML(),
		EscapeAttributes: cfg.EscapeAttributes(),
	})

	start := time.Now()
	count, err := generator.CompileDir(ctx, cfg.TemplatesPath(), cfg.OutputPath())
	if err != nil {
		var pe *parser.ParseError
		if stderrors.As(err, &pe) {
			code := "E001"
			if strings.Contains(pe.Message, "indent") {
				code = "E002"
			}
			return errors.New(code).WithDetail(err.Error())
		}
		return errors.FromError(err, "E201")
	}

	fmt.Println()
	success("Compiled %d templates in %s", count, time.Since(start).Round(time.Millisecond))
	info("Output: %s/", cfg.Paths.Output)
	fmt.Println()

	return nil
}
