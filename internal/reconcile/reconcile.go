package reconcile

import (
	"bytes"
	"fmt"

	"sablefmt/internal/canon"
	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/parser"
	"sablefmt/internal/printer"
	"sablefmt/internal/rules"
	"sablefmt/internal/source"
)

// DefaultMaxDiagnostics bounds the per-file diagnostic count.
const DefaultMaxDiagnostics = 256

// Options configures one file's trip through the pipeline.
type Options struct {
	// Rules is the registry evaluated against the raw tree. Nil skips
	// rule evaluation (formatting only).
	Rules *rules.Registry
	// MaxDiagnostics bounds the bag; zero means DefaultMaxDiagnostics.
	MaxDiagnostics int
}

// Result is what one file's pipeline run produced.
type Result struct {
	// Output is the formatted text.
	Output []byte
	// Formatted is true when the input already had canonical form.
	Formatted bool
	// FirstDiff is the byte offset where output first diverges from
	// the input, or -1 when they are identical.
	FirstDiff int
	// Bag holds violations and non-fatal diagnostics, sorted by span.
	Bag *diag.Bag
}

// ProcessFile runs the full per-file pipeline: parse losslessly, run
// the rules against the raw tree, canonicalize, verify invariants, and
// print. It is pure: same file bytes, same Result, no matter the mode
// the caller is in.
//
// A *parser.ParseError return means the file was skipped; a
// *cst.InvariantError means the formatter itself misbehaved and the
// caller must surface it loudly and discard Output.
func ProcessFile(file *source.File, opts Options) (Result, error) {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)
	res := Result{FirstDiff: -1, Bag: bag}

	raw, err := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		return res, err
	}

	if opts.Rules != nil {
		opts.Rules.Run(raw, file, bag)
	}

	canonical := canon.Canonicalize(raw)
	if err := checkPreservation(raw, canonical); err != nil {
		return res, err
	}
	if again := canon.Canonicalize(canonical); !cst.Equal(canonical, again) {
		return res, &cst.InvariantError{
			Stage: "canonicalize",
			Msg:   "second canonicalization changed the tree",
		}
	}

	out := printer.Print(canonical)
	if err := checkReprint(file, out); err != nil {
		return res, err
	}

	res.Output = out
	res.FirstDiff = firstDiff(out, file.Content)
	res.Formatted = res.FirstDiff == -1
	bag.Sort()
	return res, nil
}

// checkPreservation verifies formatting changed layout only: the
// ordered top-level kinds and the statement count must survive
// canonicalization untouched.
func checkPreservation(raw, canonical *cst.Node) error {
	var before, after [32]int
	for _, k := range cst.TopLevelKinds(raw) {
		before[k]++
	}
	for _, k := range cst.TopLevelKinds(canonical) {
		after[k]++
	}
	for k := range before {
		switch {
		case after[k] > before[k]:
			return &cst.InvariantError{
				Stage: "canonicalize",
				Msg:   fmt.Sprintf("canonicalization invented %s declarations", cst.Kind(k)),
			}
		case after[k] < before[k] && cst.Kind(k) != cst.KindImport:
			// only exact duplicate imports may legally disappear
			return &cst.InvariantError{
				Stage: "canonicalize",
				Msg:   fmt.Sprintf("canonicalization dropped %s declarations", cst.Kind(k)),
			}
		}
	}
	if a, b := cst.CountStmts(raw), cst.CountStmts(canonical); a != b {
		return &cst.InvariantError{
			Stage: "canonicalize",
			Msg:   fmt.Sprintf("statement count changed: %d -> %d", a, b),
		}
	}
	return nil
}

// checkReprint verifies idempotence the strong way: parse the freshly
// printed output and print it again; the bytes must not move.
func checkReprint(file *source.File, out []byte) error {
	fs := source.NewFileSet()
	id := fs.AddVirtual(file.Path, out)
	reparsed, err := parser.ParseFile(fs.Get(id), parser.Options{Reporter: diag.NopReporter{}})
	if err != nil {
		return &cst.InvariantError{
			Stage: "reprint",
			Msg:   fmt.Sprintf("formatted output does not parse: %v", err),
		}
	}
	second := printer.Print(canon.Canonicalize(reparsed))
	if !bytes.Equal(out, second) {
		return &cst.InvariantError{
			Stage: "reprint",
			Msg: fmt.Sprintf("formatting is not idempotent; diverges at offset %d",
				firstDiff(out, second)),
		}
	}
	return nil
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
