package slab

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slab-dev/slab/pkg/ast"
)

func TestCompile(t *testing.T) {
	src := []byte("h1= title")

	out, err := Compile("index", src, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	code := string(out)
	for _, want := range []string{
		"// Code generated by slab. DO NOT EDIT.",
		"package templates",
		"func RenderIndex(_buf *strings.Builder, data map[string]any) {",
		"escape.HTML(title)",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("output missing %q:\n%s", want, code)
		}
	}
}

func TestCompileRawOutput(t *testing.T) {
	out, err := Compile("page", []byte("= body"), Options{RawOutput: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if strings.Contains(string(out), "escape.HTML") {
		t.Errorf("raw output must not escape:\n%s", out)
	}
}

func TestCompileFormat(t *testing.T) {
	out, err := Compile("page", []byte("br"), Options{Format: ast.FormatXHTML})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(string(out), "<br />") {
		t.Errorf("xhtml void element not closed:\n%s", out)
	}
}

func TestCompileDir(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "home.slab"), []byte("p hi"), 0644); err != nil {
		t.Fatal(err)
	}

	count, err := CompileDir(context.Background(), srcDir, outDir, Options{Package: "views"})
	if err != nil {
		t.Fatalf("CompileDir: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "home.slab.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "package views") {
		t.Errorf("generated file has wrong package:\n%s", data)
	}
}
