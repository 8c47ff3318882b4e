package reconcile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sablefmt/internal/diag"
	"sablefmt/internal/parser"
	"sablefmt/internal/rules"
	"sablefmt/internal/testkit"
)

func process(t *testing.T, src string) Result {
	t.Helper()

	_, sf := testkit.MustParse(src)
	res, err := ProcessFile(sf, Options{Rules: rules.DefaultRegistry()})
	if err != nil {
		t.Fatalf("ProcessFile(%q): %v", src, err)
	}
	return res
}

func TestProcessFile_Unformatted(t *testing.T) {
	res := process(t, "fn  main( ){let x=1;}\n")

	if res.Formatted {
		t.Error("messy input reported as formatted")
	}
	if res.FirstDiff < 0 {
		t.Errorf("FirstDiff = %d, want >= 0", res.FirstDiff)
	}
	want := "fn main() {\n    let x = 1;\n}\n"
	if string(res.Output) != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
}

func TestProcessFile_AlreadyCanonical(t *testing.T) {
	src := "fn main() {\n    let x = 1;\n}\n"
	res := process(t, src)

	if !res.Formatted {
		t.Error("canonical input reported as unformatted")
	}
	if res.FirstDiff != -1 {
		t.Errorf("FirstDiff = %d, want -1", res.FirstDiff)
	}
	if string(res.Output) != src {
		t.Errorf("output changed canonical input:\n%q", res.Output)
	}
}

func TestProcessFile_OutputStable(t *testing.T) {
	first := process(t, "import z.a;\nimport a.a;\nfn f() {\n\n    g( 1 ,2 );\n}\n")

	second := process(t, string(first.Output))
	if !second.Formatted {
		t.Errorf("formatted output not stable:\nfirst  %q\nsecond %q",
			first.Output, second.Output)
	}
	if countBlankEdges(second.Bag) != 0 {
		t.Errorf("formatted output still has blank-edge findings: %v", second.Bag.Items())
	}
}

func TestProcessFile_RuleFindingsSurface(t *testing.T) {
	res := process(t, "pub fn f() {}\n")

	if !res.Bag.HasErrors() {
		t.Fatalf("expected a missing-doc error, got %v", res.Bag.Items())
	}
	if got := res.Bag.Items()[0].Code; got != diag.StyleMissingDoc {
		t.Errorf("code = %v, want %v", got, diag.StyleMissingDoc)
	}
}

func TestProcessFile_NilRulesFormatsOnly(t *testing.T) {
	_, sf := testkit.MustParse("pub fn f() {}\n")
	res, err := ProcessFile(sf, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("rules ran despite nil registry: %v", res.Bag.Items())
	}
	if !res.Formatted {
		t.Error("canonical input reported as unformatted")
	}
}

func TestProcessFile_ParseError(t *testing.T) {
	_, sf := testkit.MustParse("fn main( { let = ;\n")
	res, err := ProcessFile(sf, Options{Rules: rules.DefaultRegistry()})
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *parser.ParseError", err)
	}
	if res.Output != nil {
		t.Error("parse failure must not produce output")
	}
	if res.Bag.Len() == 0 {
		t.Error("parse failure left the bag empty")
	}
}

func TestProcessFile_ImportDedupAllowed(t *testing.T) {
	res := process(t, "import a.b;\nimport a.b;\nfn main() {}\n")

	want := "import a.b;\nfn main() {}\n"
	if string(res.Output) != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.sb")
	if err := os.WriteFile(path, []byte("old"), 0o640); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, []byte("fn main() {}\n")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "fn main() {}\n" {
		t.Errorf("content = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %v", entries)
	}
}

func TestWriteFile_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.sb")
	if err := WriteFile(path, []byte("fn main() {}\n")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "fn main() {}\n" {
		t.Errorf("content = %q", got)
	}
}

func countBlankEdges(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == diag.StyleBlankEdge {
			n++
		}
	}
	return n
}
