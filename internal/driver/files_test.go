package driver

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, body := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCollectSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.sb":          "fn main() {}\n",
		"src/lib.sb":       "fn lib() {}\n",
		"src/deep/util.sb": "fn util() {}\n",
		"README.md":        "readme\n",
		"src/notes.txt":    "notes\n",
	})

	files, err := CollectSourceFiles([]string{root})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(root, "main.sb"),
		filepath.Join(root, "src", "deep", "util.sb"),
		filepath.Join(root, "src", "lib.sb"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("files not sorted: %v", files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestCollectSourceFiles_ExplicitFileKept(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"odd.txt": "fn main() {}\n"})

	// a directly named file bypasses the extension filter
	odd := filepath.Join(root, "odd.txt")
	files, err := CollectSourceFiles([]string{odd})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != odd {
		t.Errorf("files = %v, want [%s]", files, odd)
	}
}

func TestCollectSourceFiles_Dedup(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.sb": "fn main() {}\n"})

	main := filepath.Join(root, "main.sb")
	files, err := CollectSourceFiles([]string{main, root, main})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("files = %v, want a single entry", files)
	}
}

func TestCollectSourceFiles_MissingPath(t *testing.T) {
	if _, err := CollectSourceFiles([]string{filepath.Join(t.TempDir(), "gone")}); err == nil {
		t.Fatal("expected an error for a missing path")
	}
}

func TestFilterIncluded(t *testing.T) {
	root := filepath.Join("proj")
	files := []string{
		filepath.Join(root, "src", "a.sb"),
		filepath.Join(root, "src", "deep", "b.sb"),
		filepath.Join(root, "tools", "c.sb"),
		filepath.Join(root, "vendor", "d.sb"),
	}

	got := FilterIncluded(files, root, []string{"src", "tools"})
	if len(got) != 3 {
		t.Fatalf("filtered = %v, want 3 entries", got)
	}
	for _, f := range got {
		if f == filepath.Join(root, "vendor", "d.sb") {
			t.Errorf("vendor file survived the filter: %v", got)
		}
	}

	if all := FilterIncluded(files, root, nil); len(all) != len(files) {
		t.Errorf("empty include filtered files: %v", all)
	}
}

func TestFilterIncluded_NoPrefixConfusion(t *testing.T) {
	root := "proj"
	files := []string{
		filepath.Join(root, "src", "a.sb"),
		filepath.Join(root, "srclike", "b.sb"),
	}
	got := FilterIncluded(files, root, []string{"src"})
	if len(got) != 1 || got[0] != files[0] {
		t.Errorf("filtered = %v, want only %q", got, files[0])
	}
}
