package canon

import (
	"sablefmt/internal/cst"
)

// Pass is one structural rewrite: it consumes a tree and produces a new
// one, never mutating its input. Working on nodes rather than text is
// what keeps the semantic-equivalence invariant checkable.
type Pass struct {
	Name string
	Run  func(*cst.Node) *cst.Node
}

// Passes returns the fixed, ordered pass list. The order is part of the
// canonical form and must not change between runs.
func Passes() []Pass {
	return []Pass{
		{Name: "sort-imports", Run: sortImports},
		{Name: "attach-braces", Run: attachBraces},
		{Name: "normalize-blanks", Run: normalizeBlanks},
	}
}

// Canonicalize applies the full pass sequence. Applying it to an
// already-canonical tree is a no-op (idempotence invariant).
func Canonicalize(file *cst.Node) *cst.Node {
	out := file
	for _, pass := range Passes() {
		out = pass.Run(out)
	}
	return out
}
