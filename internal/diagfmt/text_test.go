package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sablefmt/internal/diag"
	"sablefmt/internal/source"
)

func oneDiagBag(t *testing.T, src, needle string) (*diag.Bag, *source.FileSet) {
	t.Helper()

	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.sb", []byte(src))
	at := strings.Index(src, needle)
	if at < 0 {
		t.Fatalf("%q not in %q", needle, src)
	}
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.StyleDeclOrder,
		Message:  "helper \"helper\" is declared before all of its callers",
		Primary: source.Span{
			File:  id,
			Start: uint32(at),
			End:   uint32(at + len(needle)),
		},
	})
	return bag, fs
}

func TestText(t *testing.T) {
	bag, fs := oneDiagBag(t, "fn helper() {}\nfn main() { helper(); }\n", "helper")

	var buf bytes.Buffer
	Text(&buf, bag, fs, TextOpts{})

	got := buf.String()
	want := "demo.sb:1:4: WARNING SBL3004: helper \"helper\" is declared before all of its callers\n"
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("uncolored output contains escape sequences")
	}
}

func TestText_ShowSource(t *testing.T) {
	bag, fs := oneDiagBag(t, "fn helper() {}\n", "helper")

	var buf bytes.Buffer
	Text(&buf, bag, fs, TextOpts{ShowSource: true})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("output too short:\n%s", buf.String())
	}
	if lines[1] != "  fn helper() {}" {
		t.Errorf("source line = %q", lines[1])
	}
	// caret under the 'h' of helper, tildes covering the rest
	if lines[2] != "     ^~~~~~" {
		t.Errorf("underline = %q", lines[2])
	}
}

func TestText_UnderlineWideRunes(t *testing.T) {
	// the span starts after a two-column rune; padding counts display
	// columns, not bytes
	src := "let 宽 = helper;\n"
	bag, fs := oneDiagBag(t, src, "helper")

	var buf bytes.Buffer
	Text(&buf, bag, fs, TextOpts{ShowSource: true})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("output too short:\n%s", buf.String())
	}
	wantPad := len("  ") + 4 + 2 + 3 // indent, "let ", wide rune, " = "
	caret := strings.Index(lines[2], "^")
	if caret != wantPad {
		t.Errorf("caret at column %d, want %d: %q", caret, wantPad, lines[2])
	}
}

func TestBuildDiagnostics(t *testing.T) {
	bag, fs := oneDiagBag(t, "fn helper() {}\n", "helper")

	out := BuildDiagnostics(bag, fs)
	if len(out) != 1 {
		t.Fatalf("diags = %v, want one", out)
	}
	d := out[0]
	if d.Severity != "WARNING" || d.Code != "SBL3004" {
		t.Errorf("head = %s %s", d.Severity, d.Code)
	}
	loc := d.Location
	if loc.File != "demo.sb" || loc.StartLine != 1 || loc.StartCol != 4 {
		t.Errorf("location = %+v", loc)
	}
	if loc.EndByte-loc.StartByte != uint32(len("helper")) {
		t.Errorf("span bytes = %d..%d", loc.StartByte, loc.EndByte)
	}
}

func TestBuildDiagnostics_NilBag(t *testing.T) {
	if got := BuildDiagnostics(nil, source.NewFileSet()); got != nil {
		t.Errorf("nil bag = %v, want nil", got)
	}
}

func TestWriteJSON(t *testing.T) {
	bag, fs := oneDiagBag(t, "fn helper() {}\n", "helper")

	run := RunJSON{
		Files: []FileJSON{{
			Path:        "demo.sb",
			Formatted:   false,
			FirstDiff:   0,
			Diagnostics: BuildDiagnostics(bag, fs),
		}},
		Warnings:    1,
		Unformatted: 1,
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, run); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("missing trailing newline")
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded["warnings"].(float64) != 1 {
		t.Errorf("warnings = %v", decoded["warnings"])
	}
	files := decoded["files"].([]any)
	if len(files) != 1 {
		t.Fatalf("files = %v", files)
	}
}
