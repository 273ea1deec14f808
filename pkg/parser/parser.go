// Package parser turns slab template source into the node tree that
// pkg/ast renders. The language is line-oriented: leading indentation
// (tabs, or a consistent space unit) gives nesting depth, and the first
// token of each line selects the node variant.
//
//	doctype html          document type declaration
//	div#id.class attr="v" element, id/class shorthand, attributes
//	| text                literal text
//	= expr                buffered, escaped output
//	== expr               buffered, raw output
//	- stmt                running Go code wrapping its children
//	/ note                template comment (emits nothing)
//	/! note               HTML comment
//
// A tag name may carry trailing whitespace-trim markers ('<' trims around
// the tag pair, '>' just inside it) and may be followed by inline text or
// an inline '=' output expression.
package parser

import (
	"fmt"
	"strings"

	"github.com/slab-dev/slab/pkg/ast"
	"github.com/slab-dev/slab/pkg/nodes"
)

// Options configures a parse.
type Options struct {
	// Format is the markup dialect of the compiled templates.
	Format ast.Format

	// EscapeHTML enables escaping of buffered output expressions.
	EscapeHTML bool

	// EscapeAttributes enables escaping of static attribute values.
	EscapeAttributes bool

	// BaseCodeLevel is the code-block nesting depth of top-level
	// statements in the generated function. Defaults to 1 (inside the
	// function body).
	BaseCodeLevel int
}

// ParseError describes a template syntax error with its source position.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func errorf(line, col int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

// frame is one level of the open-node stack during parsing.
type frame struct {
	node  *ast.Node
	depth int
	// cfg is the configuration children of this node are constructed
	// with; block and code levels already account for this node.
	cfg ast.Config
	// leaf names the construct when it cannot hold nested content
	// (doctype, text, output); a deeper line under it is an error.
	leaf string
}

// Parse builds the template tree for src and returns its root. The root
// is a plain container node: rendering it yields the generated code for
// the whole template.
func Parse(src []byte, opts Options) (*ast.Node, error) {
	base := opts.BaseCodeLevel
	if base <= 0 {
		base = 1
	}
	rootCfg := ast.Config{
		EscapeHTML:       opts.EscapeHTML,
		EscapeAttributes: opts.EscapeAttributes,
		Format:           opts.Format,
		CodeBlockLevel:   base,
		BlockLevel:       0,
	}
	root := ast.New("", nil, rootCfg, nil)

	p := &parser{opts: opts}
	p.stack = []frame{{node: root, depth: -1, cfg: rootCfg}}

	for i, line := range strings.Split(string(src), "\n") {
		if err := p.line(i+1, line); err != nil {
			return nil, err
		}
	}
	return root, nil
}

type parser struct {
	opts  Options
	stack []frame
	// indentUnit is learned from the first indented line: "\t" or a run
	// of spaces. Zero until then.
	indentUnit string
}

func (p *parser) line(lineNum int, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	depth, content, err := p.indentDepth(lineNum, raw)
	if err != nil {
		return err
	}
	if depth > p.top().depth+1 {
		return errorf(lineNum, len(raw)-len(content)+1, "unexpected indent of %d levels", depth)
	}
	for len(p.stack) > 1 && p.top().depth >= depth {
		p.stack = p.stack[:len(p.stack)-1]
	}

	parent := p.top()
	if parent.leaf != "" {
		return errorf(lineNum, len(raw)-len(content)+1, "illegal nesting under %s", parent.leaf)
	}
	switch {
	case strings.HasPrefix(content, "doctype"):
		expr := strings.TrimSpace(strings.TrimPrefix(content, "doctype"))
		n := ast.New(expr, parent.node, parent.cfg, nodes.Doctype{})
		parent.node.Append(n)
		p.pushLeaf(n, depth, parent.cfg, "doctype")

	case strings.HasPrefix(content, "|"):
		text := strings.TrimPrefix(strings.TrimPrefix(content, "|"), " ")
		n := ast.New(text, parent.node, parent.cfg, nodes.Text{})
		parent.node.Append(n)
		p.pushLeaf(n, depth, parent.cfg, "text")

	case strings.HasPrefix(content, "=="):
		expr := strings.TrimSpace(strings.TrimPrefix(content, "=="))
		n := ast.New(expr, parent.node, parent.cfg, nodes.Output{Raw: true})
		parent.node.Append(n)
		p.pushLeaf(n, depth, parent.cfg, "output")

	case strings.HasPrefix(content, "="):
		expr := strings.TrimSpace(strings.TrimPrefix(content, "="))
		n := ast.New(expr, parent.node, parent.cfg, nodes.Output{})
		parent.node.Append(n)
		p.pushLeaf(n, depth, parent.cfg, "output")

	case strings.HasPrefix(content, "-"):
		stmt := strings.TrimSpace(strings.TrimPrefix(content, "-"))
		n := ast.New(stmt, parent.node, parent.cfg, nodes.Code{})
		parent.node.Append(n)
		childCfg := parent.cfg
		childCfg.CodeBlockLevel++
		p.push(n, depth, childCfg)

	case strings.HasPrefix(content, "/!"):
		text := strings.TrimSpace(strings.TrimPrefix(content, "/!"))
		n := ast.New(text, parent.node, parent.cfg, nodes.HTMLComment{})
		parent.node.Append(n)
		childCfg := parent.cfg
		childCfg.BlockLevel++
		if text != "" {
			n.Append(ast.New(text, n, childCfg, nodes.Text{}))
		}
		p.push(n, depth, childCfg)

	case strings.HasPrefix(content, "/"):
		note := strings.TrimSpace(strings.TrimPrefix(content, "/"))
		n := ast.New(note, parent.node, parent.cfg, nodes.Comment{})
		parent.node.Append(n)
		p.push(n, depth, parent.cfg)

	default:
		return p.tagLine(lineNum, depth, content, parent)
	}
	return nil
}

// tagLine parses an element line: tag word, attributes, then optional
// inline text or an inline output expression.
func (p *parser) tagLine(lineNum, depth int, content string, parent frame) error {
	head := content
	rest := ""
	if i := strings.IndexAny(content, " \t"); i >= 0 {
		head, rest = content[:i], strings.TrimLeft(content[i+1:], " \t")
	}

	inlineOutput := ""
	switch {
	case strings.HasSuffix(head, "=="):
		head = strings.TrimSuffix(head, "==")
		inlineOutput = "=="
	case strings.HasSuffix(head, "="):
		head = strings.TrimSuffix(head, "=")
		inlineOutput = "="
	}
	if head == "" {
		return errorf(lineNum, 1, "missing tag name before %q", content)
	}

	var attrPart, inlineText string
	if inlineOutput == "" {
		attrPart, inlineText = splitInline(rest)
	} else {
		attrPart = ""
	}

	expr := head
	if attrPart != "" {
		expr += " " + attrPart
	}
	n := ast.New(expr, parent.node, parent.cfg, nodes.Tag{})
	parent.node.Append(n)

	childCfg := parent.cfg
	childCfg.BlockLevel++
	switch {
	case inlineOutput != "":
		n.Append(ast.New(strings.TrimSpace(rest), n, childCfg, nodes.Output{Raw: inlineOutput == "=="}))
	case inlineText != "":
		n.Append(ast.New(inlineText, n, childCfg, nodes.Text{}))
	}
	p.push(n, depth, childCfg)
	return nil
}

// splitInline separates the attribute tokens of a tag line from trailing
// inline text. Attribute tokens contain '='; the first token without one
// starts the text.
func splitInline(s string) (attrs, text string) {
	i := 0
	attrEnd := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}
		tokStart := i
		for i < len(s) && s[i] != '=' && s[i] != ' ' && s[i] != '\t' {
			i++
		}
		if i >= len(s) || s[i] != '=' {
			return strings.TrimSpace(s[:attrEnd]), s[tokStart:]
		}
		i++ // '='
		if i < len(s) && s[i] == '"' {
			i++
			for i < len(s) && s[i] != '"' {
				i++
			}
			if i < len(s) {
				i++
			}
		} else {
			for i < len(s) && s[i] != ' ' && s[i] != '\t' {
				i++
			}
		}
		attrEnd = i
	}
	return strings.TrimSpace(s[:attrEnd]), ""
}

// indentDepth measures a line's nesting depth and returns the content
// after the indentation. The first indented line fixes the indent unit
// for the rest of the file.
func (p *parser) indentDepth(lineNum int, raw string) (int, string, error) {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		i++
	}
	indent, content := raw[:i], raw[i:]
	if indent == "" {
		return 0, content, nil
	}
	if strings.Contains(indent, " ") && strings.Contains(indent, "\t") {
		return 0, "", errorf(lineNum, 1, "mixed tabs and spaces in indentation")
	}
	if p.indentUnit == "" {
		if indent[0] == '\t' {
			p.indentUnit = "\t"
		} else {
			p.indentUnit = indent
		}
	}
	unit := len(p.indentUnit)
	if indent[0] != p.indentUnit[0] || len(indent)%unit != 0 {
		return 0, "", errorf(lineNum, 1, "indentation is not a multiple of the first indent (%q)", p.indentUnit)
	}
	return len(indent) / unit, content, nil
}

func (p *parser) top() frame {
	return p.stack[len(p.stack)-1]
}

func (p *parser) push(n *ast.Node, depth int, childCfg ast.Config) {
	p.stack = append(p.stack, frame{node: n, depth: depth, cfg: childCfg})
}

func (p *parser) pushLeaf(n *ast.Node, depth int, childCfg ast.Config, kind string) {
	p.stack = append(p.stack, frame{node: n, depth: depth, cfg: childCfg, leaf: kind})
}
