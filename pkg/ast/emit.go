package ast

import "strings"

// Name of the output buffer and escaping helper the generated code targets.
// The buffer is a *strings.Builder; the helper is pkg/escape.
const (
	bufferName = "_buf"
	escapeFunc = "escape.HTML"
)

// StaticText emits one generated statement that appends the current markup
// indentation plus text, verbatim, to the output buffer.
func (n *Node) StaticText(text string) string {
	return n.codeIndent + bufferName + `.WriteString("` + quoteText(n.outputIndent()+text) + `")` + "\n"
}

// RunningCode emits code as-is as one indented generated line. It has no
// output-buffer interaction; control flow wraps the emissions of child
// nodes.
func (n *Node) RunningCode(code string) string {
	return n.codeIndent + code + "\n"
}

// ComputedValue emits one generated statement that appends the run-time
// value of code to the output buffer, optionally through the escaping
// helper. The markup indentation is prepended as a separate literal so it
// is never itself escaped; when there is no indentation the concatenation
// is omitted entirely.
func (n *Node) ComputedValue(code string, escape bool) string {
	value := code
	if escape {
		value = escapeFunc + "(" + code + ")"
	}
	indent := n.outputIndent()
	if indent == "" {
		return n.codeIndent + bufferName + ".WriteString(" + value + ")" + "\n"
	}
	return n.codeIndent + bufferName + `.WriteString("` + indent + `" + ` + value + ")" + "\n"
}

// quoteText escapes text for embedding in a double-quoted Go string
// literal. Trim sentinels and other non-ASCII runes pass through unescaped
// so the sentinel resolution pass can still see them in the generated
// source.
func quoteText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
