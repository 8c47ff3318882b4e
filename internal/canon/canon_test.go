package canon

import (
	"strings"
	"testing"

	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/parser"
	"sablefmt/internal/testkit"
	"sablefmt/internal/token"
)

func parseTree(t *testing.T, src string) *cst.Node {
	t.Helper()

	_, sf := testkit.MustParse(src)
	root, err := parser.ParseFile(sf, parser.Options{Reporter: diag.NopReporter{}})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return root
}

func importPaths(t *testing.T, file *cst.Node) []string {
	t.Helper()

	var out []string
	for _, imp := range file.Nodes(cst.KindImport) {
		path, ok := imp.FindChild(cst.KindPath)
		if !ok {
			t.Fatal("import without path")
		}
		var sb strings.Builder
		for _, tok := range cst.Tokens(path) {
			sb.WriteString(tok.Text)
		}
		out = append(out, sb.String())
	}
	return out
}

func TestSortImports_Order(t *testing.T) {
	root := parseTree(t, "import z.last;\nimport a.first;\nimport m.middle;\nfn main() {}\n")
	out := Canonicalize(root)

	want := []string{"a.first", "m.middle", "z.last"}
	got := importPaths(t, out)
	if len(got) != len(want) {
		t.Fatalf("import paths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("import[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSortImports_AliasBreaksTies(t *testing.T) {
	root := parseTree(t, "import core.io as z;\nimport core.io as a;\nfn main() {}\n")
	out := Canonicalize(root)

	imports := out.Nodes(cst.KindImport)
	if len(imports) != 2 {
		t.Fatalf("import count = %d, want 2", len(imports))
	}
	first, _ := imports[0].FindToken(token.Ident)
	if first.Text != "a" {
		t.Errorf("first alias = %q, want %q", first.Text, "a")
	}
}

func TestSortImports_DedupExact(t *testing.T) {
	root := parseTree(t, "import core.io;\nimport core.io;\nimport core.net;\nfn main() {}\n")
	out := Canonicalize(root)

	got := importPaths(t, out)
	want := []string{"core.io", "core.net"}
	if len(got) != len(want) {
		t.Fatalf("import paths after dedup = %v, want %v", got, want)
	}
}

func TestSortImports_DedupKeepsComments(t *testing.T) {
	root := parseTree(t, "import a.b;\n// still needed by tooling\nimport a.b;\nfn main() {}\n")
	out := Canonicalize(root)

	if got := importPaths(t, out); len(got) != 1 {
		t.Fatalf("import paths after dedup = %v, want one", got)
	}
	// the dropped duplicate's comment moves onto the survivor
	if !strings.Contains(string(cst.Source(out)), "// still needed by tooling") {
		t.Errorf("duplicate's comment lost:\n%s", cst.Source(out))
	}
	imp := out.Nodes(cst.KindImport)[0]
	first, ok := imp.FirstToken()
	if !ok {
		t.Fatal("import without tokens")
	}
	found := false
	for _, tr := range first.Leading {
		if tr.Kind == token.TriviaLineComment && strings.Contains(tr.Text, "still needed") {
			found = true
		}
	}
	if !found {
		t.Errorf("comment not attached to the surviving import: %v", first.Leading)
	}
}

func TestSortImports_HeaderCommentStaysOnTop(t *testing.T) {
	root := parseTree(t, "// Module header.\nimport z.z;\nimport a.a;\nfn main() {}\n")
	out := sortImports(root)

	imports := out.Nodes(cst.KindImport)
	first, ok := imports[0].FirstToken()
	if !ok {
		t.Fatal("first import has no token")
	}
	foundHeader := false
	for _, tr := range first.Leading {
		if tr.Kind == token.TriviaLineComment && tr.Text == "// Module header." {
			foundHeader = true
		}
	}
	if !foundHeader {
		t.Fatalf("header comment not reattached to new first import; trivia = %v", first.Leading)
	}
	if got := importPaths(t, out); got[0] != "a.a" {
		t.Fatalf("first import = %q, want a.a", got[0])
	}
}

func TestAttachBraces_DropsLayoutBeforeBrace(t *testing.T) {
	root := parseTree(t, "fn main()\n{\n    let x = 1;\n}\n")
	out := attachBraces(root)

	for _, tok := range cst.Tokens(out) {
		if tok.Kind != token.LBrace {
			continue
		}
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaSpace || tr.Kind == token.TriviaNewline {
				t.Fatalf("layout trivia survived in front of '{': %v", tok.Leading)
			}
		}
	}
}

func TestNormalizeBlanks_CollapsesRuns(t *testing.T) {
	root := parseTree(t, "fn a() {}\n\n\n\n\nfn b() {}\n")
	out := normalizeBlanks(root)

	tokens := cst.Tokens(out)
	for _, tok := range tokens {
		if tok.Kind == token.KwFn && tok.LeadingBlankLines() > 1 {
			t.Fatalf("blank run not collapsed: %d blank lines", tok.LeadingBlankLines())
		}
	}
}

func TestNormalizeBlanks_RemovesBlockEdgeBlanks(t *testing.T) {
	root := parseTree(t, "fn main() {\n\n    let x = 1;\n\n}\n")
	out := normalizeBlanks(root)

	tokens := cst.Tokens(out)
	for i, tok := range tokens {
		if tok.Kind == token.RBrace && tok.LeadingBlankLines() > 0 {
			t.Fatal("blank line before '}' survived")
		}
		if i > 0 && tokens[i-1].Kind == token.LBrace && tok.LeadingBlankLines() > 0 {
			t.Fatal("blank line after '{' survived")
		}
	}
}

func TestNormalizeBlanks_NoLeadingBlankAtFileStart(t *testing.T) {
	root := parseTree(t, "\n\n\nfn main() {}\n")
	out := normalizeBlanks(root)

	first, ok := out.Children[0].(*cst.Node)
	if !ok {
		t.Fatal("missing first decl")
	}
	tok, _ := first.FirstToken()
	if tok.LeadingBlankLines() != 0 {
		t.Fatalf("file starts with %d blank lines", tok.LeadingBlankLines())
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	sources := []string{
		"import z.b;\nimport a.c;\n\n\n\nfn main()\n{\n\n    let x = 1;\n\n}\n",
		"type P { x: int, y: int }\nfn f() { if x { g(); }\nelse { h(); } }\n",
	}
	for _, src := range sources {
		once := Canonicalize(parseTree(t, src))
		twice := Canonicalize(once)
		if !cst.Equal(once, twice) {
			t.Fatalf("Canonicalize not idempotent for %q", src)
		}
	}
}

func TestCanonicalize_PreservesStatements(t *testing.T) {
	src := "import b.b;\nimport a.a;\nfn main() { let x = 1; x = x + 1; report(x); }\n"
	root := parseTree(t, src)
	before := cst.CountStmts(root)
	out := Canonicalize(root)
	if after := cst.CountStmts(out); after != before {
		t.Fatalf("statement count changed: %d -> %d", before, after)
	}
}
