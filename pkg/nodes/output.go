package nodes

import (
	"strings"

	"github.com/slab-dev/slab/pkg/ast"
)

// Output is a buffered output expression: the node's expression is Go code
// evaluated at run time and appended to the output buffer. Raw output
// (==) bypasses the escaping helper regardless of configuration.
type Output struct {
	Raw bool
}

// Evaluate implements ast.Evaluator.
func (Output) Evaluate(string, ast.Config) ast.Evaluation {
	return ast.Evaluation{}
}

// RenderNode emits one computed-value statement.
func (o Output) RenderNode(n *ast.Node) string {
	esc := !o.Raw && n.Config().EscapeHTML
	return n.ComputedValue(strings.TrimSpace(n.Expression()), esc)
}
