package nodes

import (
	"strings"

	"github.com/slab-dev/slab/pkg/ast"
	"github.com/slab-dev/slab/pkg/escape"
)

// Tag derives opening and closing markup from a tag expression of the form
//
//	name#id.class.class attr="value" boolattr
//
// The leading name may be omitted when an id or class shorthand is present
// (an implicit div). Trailing '<' on the name requests whitespace trimming
// around the tag pair, trailing '>' trimming just inside it. Void elements
// get opener-only markup closed according to the configured format.
type Tag struct{}

// Evaluate implements ast.Evaluator.
func (Tag) Evaluate(expr string, cfg ast.Config) ast.Evaluation {
	head, rest := splitHead(strings.TrimSpace(expr))
	head, trim := stripTrimMarkers(head)
	name, id, classes := splitShorthand(head)
	if name == "" {
		name = "div"
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	if id != "" {
		writeAttr(&b, "id", id, cfg)
	}
	if len(classes) > 0 {
		writeAttr(&b, "class", strings.Join(classes, " "), cfg)
	}
	for _, a := range scanAttrs(rest) {
		if a.boolean {
			writeBoolAttr(&b, a.key, cfg.Format)
			continue
		}
		writeAttr(&b, a.key, a.value, cfg)
	}

	ev := ast.Evaluation{Trim: trim, Preserve: isPreservedTag(name)}
	if isVoidTag(name) {
		switch cfg.Format {
		case ast.FormatXHTML:
			b.WriteString(" />")
		case ast.FormatXML:
			b.WriteString("/>")
		default:
			b.WriteByte('>')
		}
		ev.Opener = b.String()
		return ev
	}

	b.WriteByte('>')
	ev.Opener = b.String()
	ev.Closer = "</" + name + ">"
	return ev
}

// splitHead separates the tag word from the attribute remainder.
func splitHead(expr string) (head, rest string) {
	if i := strings.IndexAny(expr, " \t"); i >= 0 {
		return expr[:i], strings.TrimSpace(expr[i+1:])
	}
	return expr, ""
}

func stripTrimMarkers(head string) (string, ast.Trim) {
	var trim ast.Trim
	for {
		switch {
		case strings.HasSuffix(head, "<"):
			head = head[:len(head)-1]
			trim.Around = true
		case strings.HasSuffix(head, ">"):
			head = head[:len(head)-1]
			trim.Inside = true
		default:
			return head, trim
		}
	}
}

func splitShorthand(head string) (name, id string, classes []string) {
	cur := &name
	var buf strings.Builder
	flush := func() {
		switch cur {
		case &name:
			name = buf.String()
		case &id:
			id = buf.String()
		default:
			if buf.Len() > 0 {
				classes = append(classes, buf.String())
			}
		}
		buf.Reset()
	}
	var class string
	for _, r := range head {
		switch r {
		case '#':
			flush()
			cur = &id
		case '.':
			flush()
			cur = &class
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return name, id, classes
}

type attr struct {
	key     string
	value   string
	boolean bool
}

// scanAttrs parses space-separated key="value" pairs and bare boolean
// attributes. Quotes inside values are the template author's problem; the
// scanner only honors the delimiting double quotes.
func scanAttrs(s string) []attr {
	var attrs []attr
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}
		start := i
		for i < len(s) && s[i] != '=' && s[i] != ' ' && s[i] != '\t' {
			i++
		}
		key := s[start:i]
		if i >= len(s) || s[i] != '=' {
			if key != "" {
				attrs = append(attrs, attr{key: key, boolean: true})
			}
			continue
		}
		i++ // '='
		var value string
		if i < len(s) && s[i] == '"' {
			i++
			vstart := i
			for i < len(s) && s[i] != '"' {
				i++
			}
			value = s[vstart:i]
			if i < len(s) {
				i++ // closing quote
			}
		} else {
			vstart := i
			for i < len(s) && s[i] != ' ' && s[i] != '\t' {
				i++
			}
			value = s[vstart:i]
		}
		attrs = append(attrs, attr{key: key, value: value})
	}
	return attrs
}

func writeAttr(b *strings.Builder, key, value string, cfg ast.Config) {
	if cfg.EscapeAttributes {
		value = escape.Attr(value)
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(value)
	b.WriteByte('"')
}

// writeBoolAttr writes a boolean attribute in the form the format expects:
// bare in HTML, self-valued in XHTML/XML.
func writeBoolAttr(b *strings.Builder, key string, format ast.Format) {
	b.WriteByte(' ')
	b.WriteString(key)
	if format != ast.FormatHTML {
		b.WriteString(`="` + key + `"`)
	}
}

// isVoidTag reports whether the element never takes a closing tag.
func isVoidTag(name string) bool {
	switch name {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// isPreservedTag reports whether whitespace inside the element is
// significant and must survive rendering untouched.
func isPreservedTag(name string) bool {
	return name == "pre" || name == "textarea"
}
