package parser

import (
	"errors"
	"testing"

	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/testkit"
	"sablefmt/internal/token"
)

func parseOK(t *testing.T, src string) *cst.Node {
	t.Helper()

	_, sf := testkit.MustParse(src)
	root, err := ParseFile(sf, Options{Reporter: diag.NopReporter{}})
	if err != nil {
		t.Fatalf("ParseFile(%q) failed: %v", src, err)
	}
	if invErr := testkit.CheckTreeInvariants(root, sf); invErr != nil {
		t.Fatalf("tree invariants violated for %q: %v", src, invErr)
	}
	return root
}

func TestParseFile_LosslessRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"import core.io;\n",
		"import core.io as io;\n\nimport core.net;\n",
		"/// Adds.\n/// @author Jane Doe\npub fn add(a: int, b: int) -> int { return a + b; }\n",
		"type Point {\n    x: int,\n    y: int,\n}\n",
		"pub const MAX_SIZE: int = 1024;\n",
		"fn main() {\n    let x = 1;\n    while x < 10 { x = x + 1; }\n    if x >= 10 { report(x); } else { return; }\n}\n",
		"fn loop_control() { while true { if done() { break; } continue; } }\n",
		"fn weird(){let a=f(1,2,) ;let b  =  ( a . b . c ) ;}",
		"fn trailing() {} // tail comment\n/* and a block */\n",
	}
	for _, src := range sources {
		parseOK(t, src)
	}
}

func TestParseFile_DeclarationShapes(t *testing.T) {
	root := parseOK(t, "import core.io;\npub fn f() {}\ntype T { a: int }\nconst N: int = 3;\n")

	want := []cst.Kind{cst.KindImport, cst.KindFn, cst.KindTypeDecl, cst.KindConstDecl}
	got := cst.TopLevelKinds(root)
	if len(got) != len(want) {
		t.Fatalf("top-level kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("decl[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParseFile_ExprPrecedence(t *testing.T) {
	root := parseOK(t, "fn f() { let r = a + b * c == d || !e; }\n")

	fn, ok := root.FindChild(cst.KindFn)
	if !ok {
		t.Fatal("missing fn")
	}
	block, ok := fn.FindChild(cst.KindBlock)
	if !ok {
		t.Fatal("missing block")
	}
	let, ok := block.FindChild(cst.KindLetStmt)
	if !ok {
		t.Fatal("missing let")
	}
	// the value must be an OrOr at the root: (a + b*c == d) || (!e)
	value, ok := let.FindChild(cst.KindBinaryExpr)
	if !ok {
		t.Fatal("let value is not a binary expression")
	}
	op, ok := value.FindToken(token.OrOr)
	if !ok {
		t.Fatalf("root operator is not ||: %v", cst.Source(value))
	}
	if op.Text != "||" {
		t.Errorf("op text = %q", op.Text)
	}
}

func TestParseFile_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing semicolon", "fn f() { let x = 1 }"},
		{"pub import", "pub import core.io;"},
		{"unclosed brace", "fn f() { let x = 1;"},
		{"unclosed paren", "fn f(a: int { }"},
		{"stray top level", "let x = 1;"},
		{"missing type", "fn f(a: ) {}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, sf := testkit.MustParse(tc.src)
			bag := diag.NewBag(16)
			_, err := ParseFile(sf, Options{Reporter: diag.BagReporter{Bag: bag}})
			if err == nil {
				t.Fatalf("ParseFile(%q) succeeded, want error", tc.src)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if bag.Len() == 0 {
				t.Error("no diagnostic reported alongside the parse error")
			}
		})
	}
}

func TestParseFile_ParseErrorSpanPointsIntoFile(t *testing.T) {
	src := "fn f() { let x = 1 }"
	_, sf := testkit.MustParse(src)
	_, err := ParseFile(sf, Options{Reporter: diag.NopReporter{}})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Span.End > uint32(len(src)) {
		t.Errorf("error span %v exceeds input length %d", pe.Span, len(src))
	}
}

func TestParseFile_CommentsSurviveInTree(t *testing.T) {
	src := "fn f() {\n    // keep me\n    let x = 1;\n}\n"
	root := parseOK(t, src)

	found := false
	for _, tok := range cst.Tokens(root) {
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaLineComment && tr.Text == "// keep me" {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("line comment missing from the tree's trivia")
	}
}
