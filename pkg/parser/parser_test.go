package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/slab-dev/slab/pkg/ast"
)

func parseAndRender(t *testing.T, src string, opts Options) string {
	t.Helper()
	root, err := Parse([]byte(src), opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root.Render()
}

func defaultOpts() Options {
	return Options{Format: ast.FormatHTML, EscapeHTML: true, EscapeAttributes: true}
}

func TestParseDocument(t *testing.T) {
	src := strings.Join([]string{
		"doctype",
		"html",
		"  body",
		"    h1 Hello",
	}, "\n")

	want := strings.Join([]string{
		`    _buf.WriteString("<!DOCTYPE html>")`,
		`    _buf.WriteString("<html>")`,
		`    _buf.WriteString("  <body>")`,
		`    _buf.WriteString("    <h1>")`,
		`    _buf.WriteString("      Hello")`,
		`    _buf.WriteString("    </h1>")`,
		`    _buf.WriteString("  </body>")`,
		`    _buf.WriteString("</html>")`,
		``,
	}, "\n")

	got := parseAndRender(t, src, defaultOpts())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered code mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCodeAndOutput(t *testing.T) {
	src := strings.Join([]string{
		"ul",
		"  - for _, it := range items {",
		"    li= it",
	}, "\n")

	want := strings.Join([]string{
		`    _buf.WriteString("<ul>")`,
		`    for _, it := range items {`,
		`        _buf.WriteString("  <li>")`,
		`        _buf.WriteString("    " + escape.HTML(it))`,
		`        _buf.WriteString("  </li>")`,
		`    }`,
		`    _buf.WriteString("</ul>")`,
		``,
	}, "\n")

	got := parseAndRender(t, src, defaultOpts())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered code mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRawOutput(t *testing.T) {
	src := "== markdown(body)"
	want := "    _buf.WriteString(markdown(body))\n"

	got := parseAndRender(t, src, defaultOpts())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered code mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTextAndComments(t *testing.T) {
	src := strings.Join([]string{
		"/ internal note",
		"  p never parsed into output",
		"/! visible note",
		"| plain text",
	}, "\n")

	want := strings.Join([]string{
		`    _buf.WriteString("<!--")`,
		`    _buf.WriteString("  visible note")`,
		`    _buf.WriteString("-->")`,
		`    _buf.WriteString("plain text")`,
		``,
	}, "\n")

	got := parseAndRender(t, src, defaultOpts())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered code mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInlineOutput(t *testing.T) {
	src := "h1= page.Title"
	want := strings.Join([]string{
		`    _buf.WriteString("<h1>")`,
		`    _buf.WriteString("  " + escape.HTML(page.Title))`,
		`    _buf.WriteString("</h1>")`,
		``,
	}, "\n")

	got := parseAndRender(t, src, defaultOpts())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered code mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAttributesWithInlineText(t *testing.T) {
	src := `a href="/about" About us`
	want := strings.Join([]string{
		`    _buf.WriteString("<a href=\"/about\">")`,
		`    _buf.WriteString("  About us")`,
		`    _buf.WriteString("</a>")`,
		``,
	}, "\n")

	got := parseAndRender(t, src, defaultOpts())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered code mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePreservedElement(t *testing.T) {
	src := strings.Join([]string{
		"pre",
		"  | first  line",
		"  |   indented line",
	}, "\n")

	want := `    _buf.WriteString("<pre>first  line\n  indented line</pre>")` + "\n"

	got := parseAndRender(t, src, defaultOpts())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered code mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTabIndentation(t *testing.T) {
	src := "div\n\tp\n\t\t| deep"
	want := strings.Join([]string{
		`    _buf.WriteString("<div>")`,
		`    _buf.WriteString("  <p>")`,
		`    _buf.WriteString("    deep")`,
		`    _buf.WriteString("  </p>")`,
		`    _buf.WriteString("</div>")`,
		``,
	}, "\n")

	got := parseAndRender(t, src, defaultOpts())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rendered code mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBaseCodeLevel(t *testing.T) {
	got := parseAndRender(t, "| x", Options{BaseCodeLevel: 2})
	want := `        _buf.WriteString("x")` + "\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "indent jump",
			src:     "div\n  p\n      span",
			wantMsg: "unexpected indent",
		},
		{
			name:    "first line indented",
			src:     "  div",
			wantMsg: "unexpected indent",
		},
		{
			name:    "mixed tabs and spaces",
			src:     "div\n\t  p",
			wantMsg: "mixed tabs and spaces",
		},
		{
			name:    "uneven indent",
			src:     "div\n  p\n   span",
			wantMsg: "not a multiple",
		},
		{
			name:    "nesting under doctype",
			src:     "doctype\n  html",
			wantMsg: "illegal nesting under doctype",
		},
		{
			name:    "nesting under text",
			src:     "p\n  | hello\n    span",
			wantMsg: "illegal nesting under text",
		},
		{
			name:    "nesting under output",
			src:     "= title\n  p",
			wantMsg: "illegal nesting under output",
		},
		{
			name:    "nesting under raw output",
			src:     "== body\n  p",
			wantMsg: "illegal nesting under output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), defaultOpts())
			if err == nil {
				t.Fatal("expected a parse error")
			}
			pe, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("error is %T, want *ParseError", err)
			}
			if !strings.Contains(pe.Message, tt.wantMsg) {
				t.Errorf("error %q does not mention %q", pe.Message, tt.wantMsg)
			}
			if pe.Line == 0 {
				t.Error("parse error should carry a line number")
			}
		})
	}
}

func TestParseErrorFormat(t *testing.T) {
	e := &ParseError{Line: 3, Column: 5, Message: "unexpected indent of 2 levels"}
	if got := e.Error(); got != "3:5: unexpected indent of 2 levels" {
		t.Errorf("Error() = %q", got)
	}
}
