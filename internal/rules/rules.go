package rules

import (
	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/source"
)

// Context hands a rule the raw tree and the file it was parsed from.
// Rules read, never mutate.
type Context struct {
	File *source.File
	Tree *cst.Node
}

// Rule is one style check. Check walks the tree and reports findings
// through the reporter; it must be deterministic and side-effect free.
type Rule struct {
	ID       string
	Code     diag.Code
	Severity diag.Severity
	Check    func(ctx Context, r diag.Reporter)
}

// Registry is a fixed, ordered rule set. Build it once with
// DefaultRegistry and share it across workers; Run never mutates it.
type Registry struct {
	rules []Rule
}

// DefaultRegistry returns the built-in rule set in evaluation order.
func DefaultRegistry() *Registry {
	return &Registry{rules: []Rule{
		{
			ID:       "doc-presence",
			Code:     diag.StyleMissingDoc,
			Severity: diag.SevError,
			Check:    checkDocPresence,
		},
		{
			ID:       "doc-tags",
			Code:     diag.StyleMalformedTag,
			Severity: diag.SevError,
			Check:    checkDocTags,
		},
		{
			ID:       "blank-edges",
			Code:     diag.StyleBlankEdge,
			Severity: diag.SevWarning,
			Check:    checkBlankEdges,
		},
		{
			ID:       "decl-order",
			Code:     diag.StyleDeclOrder,
			Severity: diag.SevWarning,
			Check:    checkDeclOrder,
		},
	}}
}

// Rules returns the registered rules in order.
func (reg *Registry) Rules() []Rule {
	return reg.rules
}

// Run evaluates every rule against the raw tree and collects the
// findings into a sorted, deduplicated bag merged into out.
func (reg *Registry) Run(tree *cst.Node, file *source.File, out *diag.Bag) {
	bag := diag.NewBag(int(out.Cap()))
	ctx := Context{File: file, Tree: tree}
	for _, rule := range reg.rules {
		rule.Check(ctx, diag.BagReporter{Bag: bag})
	}
	bag.Sort()
	bag.Dedup()
	out.Merge(bag)
}
