// Package errors provides slab's structured error type. Errors carry a
// registered code, a category, an optional template-source location with
// surrounding context lines, and a fix suggestion, and format themselves
// for terminal display.
//
// Typical use:
//
//	return errors.New("E001").
//		WithLocation(path, line, col).
//		WithSuggestion("check the indentation of this line")
package errors
