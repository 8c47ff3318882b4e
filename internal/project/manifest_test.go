package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()

	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "demo"

[source]
include = ["src", "tools"]
encoding = "Latin1"
`)

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "demo" {
		t.Errorf("Name = %q, want %q", m.Name, "demo")
	}
	if len(m.Include) != 2 || m.Include[0] != "src" || m.Include[1] != "tools" {
		t.Errorf("Include = %v", m.Include)
	}
	if m.Encoding != "latin1" {
		t.Errorf("Encoding = %q, want lowercased %q", m.Encoding, "latin1")
	}
	if m.Path != path {
		t.Errorf("Path = %q, want %q", m.Path, path)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nname = \"demo\"\n")

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Include) != 0 {
		t.Errorf("Include = %v, want empty", m.Include)
	}
	if m.Encoding != "" {
		t.Errorf("Encoding = %q, want empty", m.Encoding)
	}
}

func TestLoad_MissingPackageSection(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[source]\nencoding = \"utf-8\"\n")

	_, err := Load(path)
	if !errors.Is(err, ErrPackageSectionMissing) {
		t.Fatalf("err = %v, want ErrPackageSectionMissing", err)
	}
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package\nname =\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[package]\nname = \"demo\"\n")

	nested := filepath.Join(root, "src", "inner")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested dir")
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestFind_Missing(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("found a manifest in an empty tree")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")

	m, ok, err := Discover(root)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || m.Name != "demo" {
		t.Errorf("Discover = (%v, %v)", m, ok)
	}
	if m.Root() != root {
		t.Errorf("Root = %q, want %q", m.Root(), root)
	}
}

func TestDiscover_NoManifest(t *testing.T) {
	m, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("ok = true without a manifest")
	}
	if m.Root() != "" {
		t.Errorf("zero manifest Root = %q, want empty", m.Root())
	}
}
