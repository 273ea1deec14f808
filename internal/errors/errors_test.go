package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	e := New("E101")
	if e.Code != "E101" {
		t.Errorf("Code = %q, want E101", e.Code)
	}
	if e.Category != CategoryConfig {
		t.Errorf("Category = %q, want %q", e.Category, CategoryConfig)
	}
	if e.Message == "" || e.DocURL == "" {
		t.Error("registered errors should carry a message and doc URL")
	}
}

func TestNewUnknownCode(t *testing.T) {
	e := New("E999")
	if e.Code != "E999" || e.Message != "Unknown error" {
		t.Errorf("unexpected error for unknown code: %+v", e)
	}
}

func TestRegistered(t *testing.T) {
	for _, code := range []string{"E001", "E002", "E101", "E102", "E103", "E201", "E202", "E301", "E302"} {
		if !Registered(code) {
			t.Errorf("Registered(%q) = false", code)
		}
	}
	if Registered("E999") {
		t.Error("Registered(E999) = true")
	}
}

func TestErrorString(t *testing.T) {
	e := New("E001")
	if got := e.Error(); !strings.HasPrefix(got, "E001: ") {
		t.Errorf("Error() = %q, want code prefix", got)
	}

	e2 := Newf(CategoryCLI, "something %s", "broke")
	if got := e2.Error(); got != "something broke" {
		t.Errorf("Error() = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	inner := stderrors.New("disk full")
	e := New("E202").Wrap(inner)
	if !stderrors.Is(e, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E201") != nil {
		t.Error("FromError(nil) should be nil")
	}

	se := New("E001")
	if got := FromError(se, "E201"); got != se {
		t.Error("FromError should pass a SlabError through unchanged")
	}

	plain := stderrors.New("boom")
	wrapped := FromError(plain, "E201")
	if wrapped.Code != "E201" || wrapped.Wrapped != plain {
		t.Errorf("FromError wrapped badly: %+v", wrapped)
	}
}

func TestFormatCompact(t *testing.T) {
	e := New("E001")
	e.Location = &Location{File: "index.slab", Line: 3, Column: 7}
	got := e.FormatCompact()
	if got != "index.slab:3:7: E001: Template syntax error" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestLocationString(t *testing.T) {
	l := &Location{File: "a.slab", Line: 2}
	if l.String() != "a.slab:2" {
		t.Errorf("String() = %q", l.String())
	}
	l.Column = 9
	if l.String() != "a.slab:2:9" {
		t.Errorf("String() = %q", l.String())
	}
}

func TestWrapTextRespectsWidth(t *testing.T) {
	lines := wrapText("one two three four five six seven eight nine ten", 15)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %v", lines)
	}
	for _, line := range lines {
		if len(line) > 15 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}
