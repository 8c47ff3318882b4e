package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	w.Close()
	os.Stdout = old
	return <-done
}

// Formatted text must come out of --stdout on every run, including
// reruns over content a previous check already cached.
func TestFmtStdout_Repeatable(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "main.sb")
	if err := os.WriteFile(path, []byte("fn  main( ){let x=1;}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	want := "fn main() {\n    let x = 1;\n}\n"
	for run := 1; run <= 2; run++ {
		rootCmd.SetArgs([]string{"fmt", "--stdout", path})
		var execErr error
		got := captureStdout(t, func() { execErr = rootCmd.Execute() })
		if execErr != nil {
			t.Fatalf("run %d: %v", run, execErr)
		}
		if got != want {
			t.Errorf("run %d stdout = %q, want %q", run, got, want)
		}
	}

	// the source file itself stays untouched
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "fn  main( ){let x=1;}\n" {
		t.Errorf("--stdout modified the file: %q", raw)
	}
}

func TestFmtStdoutConflictsWithCheck(t *testing.T) {
	rootCmd.SetArgs([]string{"fmt", "--stdout", "--check", t.TempDir()})
	var execErr error
	_ = captureStdout(t, func() { execErr = rootCmd.Execute() })
	if execErr == nil {
		t.Fatal("expected --stdout with --check to be rejected")
	}
}
