package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"sablefmt/internal/cst"
	"sablefmt/internal/source"
)

// CheckTreeInvariants runs the structural sanity checks tests share:
// 1) reassembling the tree's tokens reproduces the file content exactly
// 2) every node span is contained in the file content bounds
// 3) token spans are non-overlapping and strictly increasing
func CheckTreeInvariants(file *cst.Node, sf *source.File) error {
	if file == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}

	if src := cst.Source(file); !bytes.Equal(src, sf.Content) {
		return fmt.Errorf("reassembled source differs from input (got %d bytes, want %d)",
			len(src), len(sf.Content))
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var walkErr error
	cst.Walk(file, func(c cst.Child) bool {
		sp := c.Span()
		if sp.File != sf.ID {
			walkErr = fmt.Errorf("span %v points at file %d, want %d", sp, sp.File, sf.ID)
			return false
		}
		if sp.End > lenContent {
			walkErr = fmt.Errorf("span %v ends beyond content (%d bytes)", sp, lenContent)
			return false
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}

	prevEnd := uint32(0)
	for _, tok := range cst.Tokens(file) {
		if tok.Span.Start < prevEnd {
			return fmt.Errorf("token span %v overlaps previous token ending at %d",
				tok.Span, prevEnd)
		}
		prevEnd = tok.Span.End
	}
	return nil
}

// MustParse adds src as a virtual file and returns the set plus the
// file record, the common setup of parser and formatter tests.
func MustParse(src string) (*source.FileSet, *source.File) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sb", []byte(src))
	return fs, fs.Get(id)
}
