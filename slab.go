// Package slab provides the public API for the slab template compiler.
//
// Slab compiles indentation-based markup templates into Go source code.
// Most applications only need Compile or CompileFile:
//
//	out, err := slab.Compile("index", src, slab.Options{Package: "views"})
package slab

import (
	"context"

	"github.com/slab-dev/slab/pkg/ast"
	"github.com/slab-dev/slab/pkg/codegen"
)

// Options configures template compilation.
type Options struct {
	// Package is the package name of the generated file. Defaults to
	// "templates".
	Package string

	// Format selects the markup dialect. Defaults to HTML.
	Format ast.Format

	// RawOutput disables escaping of buffered output expressions.
	RawOutput bool

	// RawAttributes disables escaping of static attribute values.
	RawAttributes bool
}

// Compile compiles a single template source into a Go source file.
// name becomes the render function name ("user-card" produces
// RenderUserCard).
func Compile(name string, src []byte, opts Options) ([]byte, error) {
	g := codegen.NewGenerator(codegen.Options{
		Package:          opts.Package,
		Format:           opts.Format,
		EscapeHTML:       !opts.RawOutput,
		EscapeAttributes: !opts.RawAttributes,
	})
	out, err := g.GenerateFile(context.Background(), []codegen.Template{{Name: name, Source: src}})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// CompileDir compiles every .slab template under srcDir into Go files
// under outDir, mirroring the directory layout. It returns the number of
// templates compiled.
func CompileDir(ctx context.Context, srcDir, outDir string, opts Options) (int, error) {
	g := codegen.NewGenerator(codegen.Options{
		Package:          opts.Package,
		Format:           opts.Format,
		EscapeHTML:       !opts.RawOutput,
		EscapeAttributes: !opts.RawAttributes,
	})
	return g.CompileDir(ctx, srcDir, outDir)
}
