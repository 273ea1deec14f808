package nodes

import "github.com/slab-dev/slab/pkg/ast"

// Text is a literal text run. It carries no markup or flags; its payload
// is the node expression itself.
type Text struct{}

// Evaluate implements ast.Evaluator.
func (Text) Evaluate(string, ast.Config) ast.Evaluation {
	return ast.Evaluation{}
}

// RenderNode emits the text as a single static-text statement. Inside a
// preserved region it returns the raw text instead, so the preserving
// ancestor can fold it into one literal.
func (Text) RenderNode(n *ast.Node) string {
	if n.IsPreserved() {
		return n.Expression()
	}
	return n.StaticText(n.Expression())
}
