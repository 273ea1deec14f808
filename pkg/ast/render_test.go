package ast

import "testing"

// textStub mimics a literal-text variant: raw inside preserved regions,
// one static statement otherwise.
type textStub struct{}

func (textStub) Evaluate(string, Config) Evaluation { return Evaluation{} }

func (textStub) RenderNode(n *Node) string {
	if n.IsPreserved() {
		return n.Expression()
	}
	return n.StaticText(n.Expression())
}

func pair(opener, closer string) stub {
	return stub{Evaluation{Opener: opener, Closer: closer}}
}

func TestRenderEmptyPair(t *testing.T) {
	n := New("div", nil, Config{CodeBlockLevel: 1}, pair("<div>", "</div>"))
	want := "    _buf.WriteString(\"<div></div>\")\n"
	if got := n.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderSelfClosing(t *testing.T) {
	n := New("br", nil, Config{CodeBlockLevel: 1}, stub{Evaluation{Opener: "<br>"}})
	want := "    _buf.WriteString(\"<br>\")\n"
	if got := n.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderSelfClosingInsidePreserved(t *testing.T) {
	pre := New("pre", nil, Config{CodeBlockLevel: 1},
		stub{Evaluation{Opener: "<pre>", Closer: "</pre>", Preserve: true}})
	br := New("br", pre, Config{CodeBlockLevel: 1, BlockLevel: 1}, stub{Evaluation{Opener: "<br>"}})

	// Raw markup, not a statement: the preserving ancestor folds it in.
	if got := br.Render(); got != "<br>" {
		t.Errorf("Render() inside preserved region = %q, want %q", got, "<br>")
	}
}

func TestRenderEmptyBareNode(t *testing.T) {
	n := New("", nil, Config{CodeBlockLevel: 1}, nil)
	if got := n.Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestRenderPairWithChildren(t *testing.T) {
	cfg := Config{CodeBlockLevel: 1}
	n := New("ul", nil, cfg, pair("<ul>", "</ul>"))

	childCfg := cfg
	childCfg.BlockLevel = 1
	n.Append(New("one", n, childCfg, textStub{}))
	n.Append(New("two", n, childCfg, textStub{}))

	want := "    _buf.WriteString(\"<ul>\")\n" +
		"    _buf.WriteString(\"  one\")\n" +
		"    _buf.WriteString(\"  two\")\n" +
		"    _buf.WriteString(\"</ul>\")\n"
	if got := n.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderPreservedPairCollapses(t *testing.T) {
	cfg := Config{CodeBlockLevel: 1}
	n := New("pre", nil, cfg, stub{Evaluation{Opener: "<pre>", Closer: "</pre>", Preserve: true}})

	childCfg := cfg
	childCfg.BlockLevel = 1
	n.Append(New("first  line", n, childCfg, textStub{}))
	n.Append(New("  second line", n, childCfg, textStub{}))

	// One literal, children joined by newlines, inner whitespace intact.
	want := "    _buf.WriteString(\"<pre>first  line\\n  second line</pre>\")\n"
	if got := n.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderSilentSwallowsSubtree(t *testing.T) {
	n := New("note", nil, Config{CodeBlockLevel: 1}, stub{Evaluation{Silent: true}})
	n.Append(New("invisible", n, Config{CodeBlockLevel: 1}, textStub{}))

	if got := n.Render(); got != "" {
		t.Errorf("Render() of silent node = %q, want empty", got)
	}
}

func TestRenderBareContainerConcatenates(t *testing.T) {
	root := New("", nil, Config{CodeBlockLevel: 1}, nil)
	root.Append(New("a", root, Config{CodeBlockLevel: 1}, textStub{}))
	root.Append(New("b", root, Config{CodeBlockLevel: 1}, textStub{}))

	want := "    _buf.WriteString(\"a\")\n    _buf.WriteString(\"b\")\n"
	if got := root.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderTreeRoundTrip(t *testing.T) {
	rootCfg := Config{CodeBlockLevel: 1}
	root := New("", nil, rootCfg, nil)

	div := New("div", root, rootCfg, pair("<div>", "</div>"))
	root.Append(div)

	childCfg := rootCfg
	childCfg.BlockLevel = 1
	div.Append(New("hi", div, childCfg, textStub{}))

	want := "    _buf.WriteString(\"<div>\")\n" +
		"    _buf.WriteString(\"  hi\")\n" +
		"    _buf.WriteString(\"</div>\")\n"
	if got := root.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderCarriesTrimSentinels(t *testing.T) {
	n := New("div", nil, Config{CodeBlockLevel: 1},
		stub{Evaluation{Opener: "<div>", Closer: "</div>", Trim: Trim{Around: true, Inside: true}}})

	want := "    _buf.WriteString(\"" +
		LeftTrim + "<div>" + RightTrim + LeftTrim + "</div>" + RightTrim +
		"\")\n"
	if got := n.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
