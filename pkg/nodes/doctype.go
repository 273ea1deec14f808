package nodes

import (
	"strings"

	"github.com/slab-dev/slab/pkg/ast"
)

// Doctype emits a document type declaration. The expression selects the
// declaration; an empty expression falls back to the format's default.
type Doctype struct{}

// Evaluate implements ast.Evaluator.
func (Doctype) Evaluate(expr string, cfg ast.Config) ast.Evaluation {
	return ast.Evaluation{Opener: doctypeFor(strings.TrimSpace(expr), cfg.Format)}
}

func doctypeFor(name string, format ast.Format) string {
	switch name {
	case "xml":
		return `<?xml version="1.0" encoding="utf-8" ?>`
	case "strict":
		return `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`
	case "transitional":
		return `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">`
	case "", "html", "5":
		if format == ast.FormatXML {
			return `<?xml version="1.0" encoding="utf-8" ?>`
		}
		return "<!DOCTYPE html>"
	default:
		return "<!DOCTYPE " + name + ">"
	}
}
