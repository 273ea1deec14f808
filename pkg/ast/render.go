package ast

import "strings"

// Render turns the subtree rooted at n into generated Go code. It is
// called once per tree, recurses depth-first in child order, and never
// mutates the tree. Branch selection is purely structural: the presence of
// children and of a full opener/closer pair decide the path, never the
// expression content.
func (n *Node) Render() string {
	if !n.evaluated {
		panic("ast: Render called on a node whose evaluation hook never ran")
	}

	if ov, ok := n.eval.(RenderOverride); ok {
		return ov.RenderNode(n)
	}

	hasPair := n.opener != "" && n.closer != ""

	if len(n.children) == 0 {
		switch {
		case hasPair:
			// Empty-content tag pair collapses into one statement.
			return n.StaticText(n.OpenerMarkup() + n.CloserMarkup())
		case n.opener != "":
			// Self-closing. Inside a preserved region the raw markup is
			// returned so an ancestor can fold it into its literal.
			if !n.preserve && n.IsPreserved() {
				return n.OpenerMarkup()
			}
			return n.StaticText(n.OpenerMarkup())
		default:
			return ""
		}
	}

	if hasPair {
		if n.preserve {
			// The whole subtree becomes one literal; per-child emission
			// would re-split and re-indent the preserved whitespace.
			parts := make([]string, 0, len(n.children))
			for _, c := range n.children {
				parts = append(parts, c.Render())
			}
			inner := strings.Join(parts, "\n")
			inner = strings.TrimSuffix(inner, "\n")
			return n.StaticText(n.OpenerMarkup() + inner + n.CloserMarkup())
		}
		var b strings.Builder
		b.WriteString(n.StaticText(n.OpenerMarkup()))
		for _, c := range n.children {
			b.WriteString(c.Render())
		}
		b.WriteString(n.StaticText(n.CloserMarkup()))
		return b.String()
	}

	// No tag pair. Silence is honored only here; a silenced node that
	// carries markup is the variant's responsibility, not this machine's.
	if n.silent {
		return ""
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.Render())
	}
	return b.String()
}
