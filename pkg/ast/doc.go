// Package ast implements the template tree that slab compiles to Go code.
//
// A template is parsed into a tree of Nodes. Each Node carries the markup
// for its opening and closing tags (derived once, at construction, by an
// Evaluator supplied by the concrete node variant) and a handful of flags
// that drive rendering: whether the node is silent, whether whitespace
// inside it must be preserved verbatim, and whether whitespace around or
// inside its tag pair should be trimmed from the final document.
//
// Rendering is a single depth-first traversal. It does not produce the
// document itself; it produces Go source code that, when executed, writes
// the document to an output buffer. The three emission primitives
// (StaticText, RunningCode, ComputedValue) are the only place that
// generated code text is assembled.
package ast
