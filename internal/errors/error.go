package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryParse   Category = "parse"
	CategoryCodegen Category = "codegen"
	CategoryConfig  Category = "config"
	CategoryPublish Category = "publish"
	CategoryCLI     Category = "cli"
)

// Location represents a source location in a template or config file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// SlabError is a structured error with source location, suggestions, and
// documentation.
type SlabError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (parse, codegen, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SlabError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SlabError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds source location to the error and loads surrounding
// context lines from the file.
func (e *SlabError) WithLocation(file string, line, column int) *SlabError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SlabError) WithSuggestion(s string) *SlabError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SlabError) WithDetail(d string) *SlabError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SlabError) Wrap(err error) *SlabError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a SlabError from a registered error code.
func New(code string) *SlabError {
	template, ok := registry[code]
	if !ok {
		return &SlabError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SlabError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new SlabError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SlabError {
	return &SlabError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SlabError.
func FromError(err error, code string) *SlabError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SlabError); ok {
		return se
	}
	return New(code).Wrap(err)
}
