package codegen

import (
	"testing"

	"github.com/slab-dev/slab/pkg/ast"
)

func TestResolveTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no sentinels",
			input: `_buf.WriteString("  <div>")` + "\n",
			want:  `_buf.WriteString("  <div>")` + "\n",
		},
		{
			name:  "left trims preceding spaces",
			input: `_buf.WriteString("  ` + ast.LeftTrim + `<div>")`,
			want:  `_buf.WriteString("<div>")`,
		},
		{
			name:  "left trims escaped newline",
			input: `_buf.WriteString("a\n  ` + ast.LeftTrim + `b")`,
			want:  `_buf.WriteString("ab")`,
		},
		{
			name:  "left stops at escaped backslash",
			input: `"a\\n` + ast.LeftTrim + `"`,
			want:  `"a\\n"`,
		},
		{
			name:  "left stops at quote",
			input: `_buf.WriteString("` + ast.LeftTrim + `<div>")`,
			want:  `_buf.WriteString("<div>")`,
		},
		{
			name:  "right trims following whitespace",
			input: `"` + ast.RightTrim + `  \n\tx"`,
			want:  `"x"`,
		},
		{
			name:  "right stops at quote",
			input: `"ab` + ast.RightTrim + `")` + "\n",
			want:  `"ab")` + "\n",
		},
		{
			name:  "statement boundary survives",
			input: `W("a  ` + ast.LeftTrim + `")` + "\n" + `W("` + ast.RightTrim + `  b")`,
			want:  `W("a")` + "\n" + `W("b")`,
		},
		{
			name:  "adjacent sentinels",
			input: `"x  ` + ast.LeftTrim + ast.RightTrim + `  y"`,
			want:  `"xy"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTrim(tt.input); got != tt.want {
				t.Errorf("ResolveTrim(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
