// Package nodes supplies the concrete node variants of the slab template
// tree: tags, text runs, buffered output expressions, running code,
// comments, and doctypes. Each variant is an ast.Evaluator that derives
// markup and flags from its expression once, at construction; variants
// that emit running code or computed values additionally take over
// rendering via ast.RenderOverride.
package nodes
