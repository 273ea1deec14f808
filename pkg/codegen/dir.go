package codegen

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TemplateExt is the file extension of slab templates.
const TemplateExt = ".slab"

// CompileDir compiles every *.slab file under srcDir into a *.slab.go
// file under outDir, mirroring the directory layout. It returns the
// number of templates compiled.
func (g *Generator) CompileDir(ctx context.Context, srcDir, outDir string) (int, error) {
	compiled := 0
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, TemplateExt) {
			return nil
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), TemplateExt)

		out, err := g.GenerateFile(ctx, []Template{{Name: name, Source: src}})
		if err != nil {
			return err
		}

		dest := filepath.Join(outDir, rel+".go")
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, []byte(out), 0644); err != nil {
			return err
		}
		compiled++
		return nil
	})
	return compiled, err
}
