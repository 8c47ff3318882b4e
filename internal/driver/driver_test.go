package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sablefmt/internal/parser"
	"sablefmt/internal/project"
	"sablefmt/internal/rules"
)

func TestProcessPaths_Check(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"canonical.sb": "fn main() {\n    let x = 1;\n}\n",
		"messy.sb":     "fn  main( ){let x=1;}\n",
	})

	_, results, err := ProcessPaths(context.Background(), []string{root}, Options{
		Mode:  ModeCheck,
		Rules: rules.DefaultRegistry(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	byName := map[string]FileResult{}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Path, r.Err)
		}
		byName[filepath.Base(r.Path)] = r
	}
	if !byName["canonical.sb"].Formatted {
		t.Error("canonical file reported unformatted")
	}
	if byName["messy.sb"].Formatted {
		t.Error("messy file reported formatted")
	}
	if byName["messy.sb"].Written {
		t.Error("check mode wrote a file")
	}

	// check mode must leave the tree untouched
	raw, err := os.ReadFile(filepath.Join(root, "messy.sb"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "fn  main( ){let x=1;}\n" {
		t.Errorf("check mode modified the file: %q", raw)
	}
}

func TestProcessPaths_Apply(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"messy.sb": "fn  main( ){let x=1;}\n"})

	_, results, err := ProcessPaths(context.Background(), []string{root}, Options{
		Mode: ModeApply,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %+v", results)
	}
	if !results[0].Written {
		t.Error("apply mode did not write the messy file")
	}

	got, err := os.ReadFile(filepath.Join(root, "messy.sb"))
	if err != nil {
		t.Fatal(err)
	}
	want := "fn main() {\n    let x = 1;\n}\n"
	if string(got) != want {
		t.Errorf("rewritten content = %q, want %q", got, want)
	}

	// a second run finds nothing to do
	_, results, err = ProcessPaths(context.Background(), []string{root}, Options{
		Mode: ModeApply,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Formatted || results[0].Written {
		t.Errorf("second apply run not a no-op: %+v", results[0])
	}
}

func TestProcessPaths_ParseErrorIsPerFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bad.sb":  "fn main( {\n",
		"good.sb": "fn main() {}\n",
	})

	_, results, err := ProcessPaths(context.Background(), []string{root}, Options{
		Mode:  ModeCheck,
		Rules: rules.DefaultRegistry(),
	})
	if err != nil {
		t.Fatal(err)
	}

	var bad, good *FileResult
	for i := range results {
		switch filepath.Base(results[i].Path) {
		case "bad.sb":
			bad = &results[i]
		case "good.sb":
			good = &results[i]
		}
	}
	var perr *parser.ParseError
	if bad == nil || !errors.As(bad.Err, &perr) {
		t.Errorf("bad.sb err = %v, want *parser.ParseError", bad.Err)
	}
	if good == nil || good.Err != nil || !good.Formatted {
		t.Errorf("good.sb not processed cleanly: %+v", good)
	}
}

func TestProcessPaths_ManifestInclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.sb":    "fn a() {}\n",
		"vendor/b.sb": "fn b() {}\n",
	})

	_, results, err := ProcessPaths(context.Background(), []string{root}, Options{
		Mode: ModeCheck,
		Manifest: project.Manifest{
			Path:    filepath.Join(root, project.ManifestName),
			Include: []string{"src"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "a.sb" {
		t.Errorf("results = %+v, want only src/a.sb", results)
	}
}

func TestProcessPaths_CRLFNeedsRewrite(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"crlf.sb": "fn main() {\r\n    let x = 1;\r\n}\r\n"})

	_, results, err := ProcessPaths(context.Background(), []string{root}, Options{
		Mode: ModeApply,
	})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Formatted {
		t.Error("CRLF file reported formatted")
	}
	if !results[0].Written {
		t.Error("CRLF file not rewritten")
	}
	got, err := os.ReadFile(filepath.Join(root, "crlf.sb"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(got, []byte("\r")) {
		t.Errorf("rewritten file still has CR bytes: %q", got)
	}
}

func TestProcessPaths_TranscodesDeclaredEncoding(t *testing.T) {
	root := t.TempDir()
	// 'caf\xe9' is latin1 for "café"
	writeTree(t, root, map[string]string{"l1.sb": "fn  main( ){}\n// caf\xe9\n"})

	_, results, err := ProcessPaths(context.Background(), []string{root}, Options{
		Mode: ModeApply,
		Manifest: project.Manifest{
			Path:     filepath.Join(root, project.ManifestName),
			Encoding: "latin1",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err != nil {
		t.Fatal(results[0].Err)
	}
	if !results[0].Written {
		t.Error("messy transcoded file not rewritten")
	}

	got, err := os.ReadFile(filepath.Join(root, "l1.sb"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(got, []byte{0xe9}) {
		t.Errorf("output not re-encoded as latin1: %q", got)
	}
	if bytes.Contains(got, []byte("é")) {
		t.Errorf("output contains UTF-8 bytes: %q", got)
	}
}

func TestProcessPaths_CacheHit(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"f.sb": "pub fn f() {}\n"})
	cache := openTestCache(t)

	opts := Options{Mode: ModeCheck, Rules: rules.DefaultRegistry(), Cache: cache}

	_, first, err := ProcessPaths(context.Background(), []string{root}, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := ProcessPaths(context.Background(), []string{root}, opts)
	if err != nil {
		t.Fatal(err)
	}

	f, s := first[0], second[0]
	if f.Formatted != s.Formatted || f.FirstDiff != s.FirstDiff {
		t.Errorf("cached result diverged: %+v vs %+v", f, s)
	}
	if f.Bag.Len() != s.Bag.Len() {
		t.Errorf("cached diagnostics diverged: %v vs %v", f.Bag.Items(), s.Bag.Items())
	}
	if !s.Bag.HasErrors() {
		t.Error("missing-doc error lost on the cached path")
	}
}

func TestProcessPaths_CacheKeepsBOMVerdictPerFile(t *testing.T) {
	cache := openTestCache(t)
	opts := Options{Mode: ModeCheck, Rules: rules.DefaultRegistry(), Cache: cache}

	// a BOM'd file populates the cache for its normalized content
	bomRoot := t.TempDir()
	writeTree(t, bomRoot, map[string]string{"bom.sb": "\xef\xbb\xbffn main() {}\n"})
	_, bomFirst, err := ProcessPaths(context.Background(), []string{bomRoot}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if bomFirst[0].Formatted {
		t.Fatal("BOM'd file reported formatted")
	}

	// a clean twin with identical normalized content must not inherit
	// the BOM verdict from the cache
	cleanRoot := t.TempDir()
	writeTree(t, cleanRoot, map[string]string{"clean.sb": "fn main() {}\n"})
	_, clean, err := ProcessPaths(context.Background(), []string{cleanRoot}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !clean[0].Formatted {
		t.Errorf("clean twin reported unformatted after a cached BOM check: %+v", clean[0])
	}
	if clean[0].FirstDiff != -1 {
		t.Errorf("clean twin FirstDiff = %d, want -1", clean[0].FirstDiff)
	}

	// and a rehit on the BOM'd file itself still flags it
	_, bomSecond, err := ProcessPaths(context.Background(), []string{bomRoot}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if bomSecond[0].Formatted {
		t.Error("cached rehit lost the BOM verdict")
	}
	if bomSecond[0].FirstDiff != 0 {
		t.Errorf("cached rehit FirstDiff = %d, want 0", bomSecond[0].FirstDiff)
	}
}

func TestProcessPaths_EmptyDir(t *testing.T) {
	fs, results, err := ProcessPaths(context.Background(), []string{t.TempDir()}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if fs == nil || len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
}
