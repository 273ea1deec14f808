// Package codegen assembles slab templates into Go source files. It runs
// the parser, renders the node tree to statements, resolves whitespace
// trimming, and wraps the result in render functions targeting a
// strings.Builder.
package codegen

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/slab-dev/slab/pkg/ast"
	"github.com/slab-dev/slab/pkg/parser"
)

// Import path of the escaping helper referenced by generated code.
const escapeImport = "github.com/slab-dev/slab/pkg/escape"

// Options configures a Generator.
type Options struct {
	// Package is the package name of generated files.
	Package string

	// Format is the markup dialect (html, xhtml, xml).
	Format ast.Format

	// EscapeHTML enables escaping of buffered output expressions.
	EscapeHTML bool

	// EscapeAttributes enables escaping of static attribute values.
	EscapeAttributes bool
}

// DefaultOptions returns the options slab uses unless configured
// otherwise: HTML output with both escapers on.
func DefaultOptions() Options {
	return Options{
		Package:          "templates",
		Format:           ast.FormatHTML,
		EscapeHTML:       true,
		EscapeAttributes: true,
	}
}

// Generator compiles template source to Go functions.
type Generator struct {
	opts   Options
	tracer trace.Tracer
}

// NewGenerator creates a Generator. The tracer comes from the global
// OpenTelemetry provider; without one configured, spans are no-ops.
func NewGenerator(opts Options) *Generator {
	if opts.Package == "" {
		opts.Package = "templates"
	}
	return &Generator{
		opts:   opts,
		tracer: otel.Tracer("slab/codegen"),
	}
}

// Compile compiles one template to a single Go render function,
//
//	func Render<Name>(_buf *strings.Builder, data map[string]any)
//
// without the surrounding file. Use GenerateFile for a complete source
// file.
func (g *Generator) Compile(ctx context.Context, name string, src []byte) (string, error) {
	_, span := g.tracer.Start(ctx, "slab.compile",
		trace.WithAttributes(
			attribute.String("slab.template", name),
			attribute.Int("slab.source_bytes", len(src)),
		))
	defer span.End()

	tree, err := parser.Parse(src, parser.Options{
		Format:           g.opts.Format,
		EscapeHTML:       g.opts.EscapeHTML,
		EscapeAttributes: g.opts.EscapeAttributes,
	})
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	body := ResolveTrim(tree.Render())

	var b strings.Builder
	fmt.Fprintf(&b, "func Render%s(_buf *strings.Builder, data map[string]any) {\n", FuncName(name))
	b.WriteString(ast.CodeIndent(1) + "_ = data\n")
	b.WriteString(body)
	b.WriteString("}\n")

	span.SetStatus(codes.Ok, "")
	return b.String(), nil
}

// Template is one named template source handed to GenerateFile.
type Template struct {
	Name   string
	Source []byte
}

// GenerateFile compiles the given templates into one complete Go source
// file: header, package clause, imports, and a render function per
// template.
func (g *Generator) GenerateFile(ctx context.Context, templates []Template) (string, error) {
	var funcs []string
	needsEscape := false
	for _, t := range templates {
		fn, err := g.Compile(ctx, t.Name, t.Source)
		if err != nil {
			return "", err
		}
		if strings.Contains(fn, "escape.") {
			needsEscape = true
		}
		funcs = append(funcs, fn)
	}

	var b strings.Builder
	b.WriteString("// Code generated by slab. DO NOT EDIT.\n\n")
	b.WriteString("package " + g.opts.Package + "\n\n")
	if needsEscape {
		b.WriteString("import (\n")
		b.WriteString("\t\"strings\"\n\n")
		b.WriteString("\t\"" + escapeImport + "\"\n")
		b.WriteString(")\n\n")
	} else {
		b.WriteString("import \"strings\"\n\n")
	}
	b.WriteString(strings.Join(funcs, "\n"))
	return b.String(), nil
}

// FuncName derives an exported Go identifier from a template name:
// "user-card" becomes "UserCard".
func FuncName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Template"
	}
	return b.String()
}
