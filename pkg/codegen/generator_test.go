package codegen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/slab-dev/slab/pkg/ast"
)

func TestCompile(t *testing.T) {
	g := NewGenerator(DefaultOptions())

	src := strings.Join([]string{
		"div",
		"  p= name",
	}, "\n")

	want := strings.Join([]string{
		`func RenderCard(_buf *strings.Builder, data map[string]any) {`,
		`    _ = data`,
		`    _buf.WriteString("<div>")`,
		`    _buf.WriteString("  <p>")`,
		`    _buf.WriteString("    " + escape.HTML(name))`,
		`    _buf.WriteString("  </p>")`,
		`    _buf.WriteString("</div>")`,
		`}`,
		``,
	}, "\n")

	got, err := g.Compile(context.Background(), "card", []byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generated function mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileResolvesTrimSentinels(t *testing.T) {
	g := NewGenerator(DefaultOptions())

	got, err := g.Compile(context.Background(), "t", []byte("span<> tight"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if strings.Contains(got, ast.LeftTrim) || strings.Contains(got, ast.RightTrim) {
		t.Errorf("sentinels must not survive compilation:\n%s", got)
	}
}

func TestCompileParseErrorNamesTemplate(t *testing.T) {
	g := NewGenerator(DefaultOptions())

	_, err := g.Compile(context.Background(), "broken", []byte("div\n\t  p"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "broken:") {
		t.Errorf("error %q should be prefixed with the template name", err)
	}
}

func TestCompileRejectsNestedDoctype(t *testing.T) {
	g := NewGenerator(DefaultOptions())

	// A doctype cannot hold the document; accepting this silently drops
	// the DOCTYPE line from the output.
	_, err := g.Compile(context.Background(), "page", []byte("doctype\n  html\n    body"))
	if err == nil {
		t.Fatal("content nested under a doctype must not compile")
	}
	if !strings.Contains(err.Error(), "illegal nesting") {
		t.Errorf("error %q should report illegal nesting", err)
	}
}

func TestGenerateFile(t *testing.T) {
	g := NewGenerator(Options{Package: "views", EscapeHTML: true, EscapeAttributes: true})

	out, err := g.GenerateFile(context.Background(), []Template{
		{Name: "index", Source: []byte("h1= title")},
	})
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}

	for _, want := range []string{
		"// Code generated by slab. DO NOT EDIT.",
		"package views",
		`"strings"`,
		`"` + escapeImport + `"`,
		"func RenderIndex(_buf *strings.Builder, data map[string]any) {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateFileWithoutEscapeImport(t *testing.T) {
	g := NewGenerator(DefaultOptions())

	out, err := g.GenerateFile(context.Background(), []Template{
		{Name: "static", Source: []byte("p hello")},
	})
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	if strings.Contains(out, escapeImport) {
		t.Errorf("static template must not import the escape helper:\n%s", out)
	}
	if !strings.Contains(out, `import "strings"`) {
		t.Errorf("output missing the strings import:\n%s", out)
	}
}

func TestCompileDir(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(srcDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("index.slab", "h1 Home")
	write("partials/footer.slab", "footer= year")
	write("notes.txt", "not a template")

	g := NewGenerator(DefaultOptions())
	count, err := g.CompileDir(context.Background(), srcDir, outDir)
	if err != nil {
		t.Fatalf("CompileDir: %v", err)
	}
	if count != 2 {
		t.Errorf("compiled %d templates, want 2", count)
	}

	for _, rel := range []string{"index.slab.go", "partials/footer.slab.go"} {
		data, err := os.ReadFile(filepath.Join(outDir, rel))
		if err != nil {
			t.Fatalf("missing output %s: %v", rel, err)
		}
		if !strings.HasPrefix(string(data), "// Code generated by slab. DO NOT EDIT.") {
			t.Errorf("%s missing generated-code header", rel)
		}
	}
}

func TestFuncName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"index", "Index"},
		{"user-card", "UserCard"},
		{"user_card", "UserCard"},
		{"partials/footer", "PartialsFooter"},
		{"404", "404"},
		{"", "Template"},
	}

	for _, tt := range tests {
		if got := FuncName(tt.input); got != tt.want {
			t.Errorf("FuncName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
