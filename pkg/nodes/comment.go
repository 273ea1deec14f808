package nodes

import "github.com/slab-dev/slab/pkg/ast"

// Comment is a template-only comment. The node is silent: neither it nor
// its children reach the generated code.
type Comment struct{}

// Evaluate implements ast.Evaluator.
func (Comment) Evaluate(string, ast.Config) ast.Evaluation {
	return ast.Evaluation{Silent: true}
}

// HTMLComment renders as an HTML comment in the final document. Its text
// and any nested content become ordinary children between the markers.
type HTMLComment struct{}

// Evaluate implements ast.Evaluator.
func (HTMLComment) Evaluate(string, ast.Config) ast.Evaluation {
	return ast.Evaluation{Opener: "<!--", Closer: "-->"}
}
