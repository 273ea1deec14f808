package codegen

import (
	"strings"

	"github.com/slab-dev/slab/pkg/ast"
)

// ResolveTrim interprets the whitespace-trim sentinels embedded in
// generated code. Each left sentinel is deleted along with the whitespace
// immediately before it; each right sentinel with the whitespace
// immediately after it. Whitespace here means literal spaces and tabs plus
// the escape sequences \n, \t and \r as they appear inside generated
// string literals; any other character (notably a literal's closing quote)
// stops the trim, so trimming never crosses an emitted statement.
func ResolveTrim(code string) string {
	var out []byte
	i := 0
	for i < len(code) {
		switch {
		case strings.HasPrefix(code[i:], ast.LeftTrim):
			out = trimTrailing(out)
			i += len(ast.LeftTrim)
		case strings.HasPrefix(code[i:], ast.RightTrim):
			i += len(ast.RightTrim)
			i = skipLeading(code, i)
		default:
			out = append(out, code[i])
			i++
		}
	}
	return string(out)
}

func trimTrailing(out []byte) []byte {
	for len(out) > 0 {
		last := out[len(out)-1]
		if last == ' ' || last == '\t' {
			out = out[:len(out)-1]
			continue
		}
		if n := len(out); n >= 2 && out[n-2] == '\\' && isEscapedWS(out[n-1]) {
			// Make sure the backslash is not itself escaped.
			if n < 3 || out[n-3] != '\\' {
				out = out[:n-2]
				continue
			}
		}
		break
	}
	return out
}

func skipLeading(code string, i int) int {
	for i < len(code) {
		if code[i] == ' ' || code[i] == '\t' {
			i++
			continue
		}
		if code[i] == '\\' && i+1 < len(code) && isEscapedWS(code[i+1]) {
			i += 2
			continue
		}
		break
	}
	return i
}

func isEscapedWS(b byte) bool {
	return b == 'n' || b == 't' || b == 'r'
}
