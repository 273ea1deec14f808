package ast

import "strings"

// Format selects the markup dialect of the generated document.
type Format int

const (
	FormatHTML Format = iota
	FormatXHTML
	FormatXML
)

// String returns the string representation of the Format.
func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatXHTML:
		return "xhtml"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// Whitespace-trim sentinels embedded into opener/closer markup. They are
// private-use code points that never occur in legitimate template output;
// codegen.ResolveTrim consumes them after the whole tree has rendered.
const (
	LeftTrim  = "\uE000"
	RightTrim = "\uE001"
)

// Indentation units for generated code lines and generated markup.
const (
	codeIndentUnit = "    "
	htmlIndentUnit = "  "
)

// CodeIndent returns the indentation prefix for generated Go statements at
// the given code-block nesting level.
func CodeIndent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(codeIndentUnit, level)
}

// HTMLIndent returns the indentation prefix for generated markup at the
// given element nesting level.
func HTMLIndent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(htmlIndentUnit, level)
}

// Config is the compiler configuration a node is constructed with.
// It is fixed for the lifetime of the tree.
type Config struct {
	// EscapeHTML controls whether buffered output expressions are passed
	// through the HTML escaping helper.
	EscapeHTML bool

	// EscapeAttributes controls whether static attribute values are
	// escaped when tag markup is derived.
	EscapeAttributes bool

	// Format is the markup dialect (html, xhtml, xml).
	Format Format

	// CodeBlockLevel is the nesting depth of generated Go statements.
	CodeBlockLevel int

	// BlockLevel is the element nesting depth of generated markup.
	BlockLevel int
}

// Trim holds the two independent whitespace-removal flags.
// Around trims whitespace outside the node's tag pair; Inside trims
// whitespace just inside it, between the tags and the content.
type Trim struct {
	Around bool
	Inside bool
}

// Evaluation is what an Evaluator derives from a node's expression.
// The zero value leaves the node with no markup and default flags.
type Evaluation struct {
	Opener   string
	Closer   string
	Silent   bool
	Preserve bool
	Trim     Trim
}

// Evaluator turns a node's raw expression into markup and flags. It is
// invoked exactly once, at construction, before any children are attached.
type Evaluator interface {
	Evaluate(expr string, cfg Config) Evaluation
}

// RenderOverride is an optional interface for evaluators whose nodes
// produce running-code or computed-value emissions. When implemented, it
// replaces the base render state machine for that node; recursion through
// a parent's children still reaches it.
type RenderOverride interface {
	RenderNode(n *Node) string
}

// Base is the no-op evaluator used by the root and by plain container
// nodes. It sets nothing.
type Base struct{}

// Evaluate implements Evaluator.
func (Base) Evaluate(string, Config) Evaluation { return Evaluation{} }

// Node is one element of the template tree. All fields are fixed at
// construction time; rendering never mutates a node.
type Node struct {
	expr     string
	parent   *Node // non-owning back-reference, upward traversal only
	children []*Node
	eval     Evaluator
	cfg      Config

	evaluated bool
	opener    string
	closer    string
	silent    bool
	preserve  bool
	trim      Trim

	codeIndent string
	htmlIndent string
}

// New constructs a node, runs its evaluation hook, and returns it.
// A nil evaluator means the base (no-op) evaluator. The parent link is a
// plain back-reference; ownership of the child stays with the caller until
// Append wires it into the parent.
func New(expr string, parent *Node, cfg Config, eval Evaluator) *Node {
	if eval == nil {
		eval = Base{}
	}
	n := &Node{
		expr:       expr,
		parent:     parent,
		eval:       eval,
		cfg:        cfg,
		codeIndent: CodeIndent(cfg.CodeBlockLevel),
		htmlIndent: HTMLIndent(cfg.BlockLevel),
	}
	ev := eval.Evaluate(expr, cfg)
	n.opener = ev.Opener
	n.closer = ev.Closer
	n.silent = ev.Silent
	n.preserve = ev.Preserve
	n.trim = ev.Trim
	n.evaluated = true
	return n
}

// Append adds a child in render order and returns the receiver so builds
// can be chained.
func (n *Node) Append(child *Node) *Node {
	n.children = append(n.children, child)
	return n
}

// Expression returns the raw source fragment the node was built from.
func (n *Node) Expression() string { return n.expr }

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in render order.
func (n *Node) Children() []*Node { return n.children }

// Opener returns the derived opening markup without trim sentinels.
func (n *Node) Opener() string { return n.opener }

// Closer returns the derived closing markup without trim sentinels.
func (n *Node) Closer() string { return n.closer }

// Silent reports whether the node suppresses its subtree's output.
func (n *Node) Silent() bool { return n.silent }

// Preserve reports the node's own preserve flag. See IsPreserved for the
// inherited form.
func (n *Node) Preserve() bool { return n.preserve }

// Trimming returns the node's whitespace-removal flags.
func (n *Node) Trimming() Trim { return n.trim }

// Config returns the configuration the node was constructed with.
func (n *Node) Config() Config { return n.cfg }

// OpenerMarkup returns the opening markup with trim sentinels applied:
// a left sentinel when trimming around the tag pair, a right sentinel on
// the trailing edge when trimming just inside it.
func (n *Node) OpenerMarkup() string {
	s := n.opener
	if n.trim.Around {
		s = LeftTrim + s
	}
	if n.trim.Inside {
		s += RightTrim
	}
	return s
}

// CloserMarkup is the mirror of OpenerMarkup: the inside sentinel sits on
// the leading edge of the closer, the around sentinel on its trailing
// edge, bracketing the node's inner content region exactly.
func (n *Node) CloserMarkup() string {
	s := n.closer
	if n.trim.Inside {
		s = LeftTrim + s
	}
	if n.trim.Around {
		s += RightTrim
	}
	return s
}

// IsPreserved reports whether this node or any ancestor preserves
// whitespace. The walk is re-evaluated on every call; ancestry never
// changes during a render.
func (n *Node) IsPreserved() bool {
	if n.preserve {
		return true
	}
	if n.parent != nil {
		return n.parent.IsPreserved()
	}
	return false
}

// outputIndent returns the markup indentation to prefix onto emitted
// content. Preserved regions must not be re-indented.
func (n *Node) outputIndent() string {
	if n.IsPreserved() {
		return ""
	}
	return n.htmlIndent
}
