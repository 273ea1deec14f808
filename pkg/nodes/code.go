package nodes

import (
	"strings"

	"github.com/slab-dev/slab/pkg/ast"
)

// Code is a running-code line: a Go statement that produces no output of
// its own but wraps the emissions of its children (conditionals, loops).
type Code struct{}

// Evaluate implements ast.Evaluator.
func (Code) Evaluate(string, ast.Config) ast.Evaluation {
	return ast.Evaluation{}
}

// RenderNode emits the statement, then the children, then a closing brace
// when the statement opened a block. Children are constructed one
// code-block level deeper, so their statements indent into the block.
func (Code) RenderNode(n *ast.Node) string {
	stmt := strings.TrimSpace(n.Expression())

	var b strings.Builder
	b.WriteString(n.RunningCode(stmt))
	for _, c := range n.Children() {
		b.WriteString(c.Render())
	}
	if strings.HasSuffix(stmt, "{") {
		b.WriteString(n.RunningCode("}"))
	}
	return b.String()
}
