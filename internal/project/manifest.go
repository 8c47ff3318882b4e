package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a project root.
const ManifestName = "sable.toml"

// Manifest is the parsed sable.toml.
type Manifest struct {
	// Path is where the manifest was read from.
	Path string
	// Name is the [package] name.
	Name string
	// Include restricts formatting to these directories, relative to
	// the project root. Empty means the whole tree.
	Include []string
	// Encoding names the on-disk text encoding of sources, e.g.
	// "latin1". Empty means UTF-8.
	Encoding string
}

// ErrPackageSectionMissing indicates that [package] is missing.
var ErrPackageSectionMissing = errors.New("missing [package]")

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Source struct {
		Include  []string `toml:"include"`
		Encoding string   `toml:"encoding"`
	} `toml:"source"`
}

// Load parses a sable.toml at path.
func Load(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	return Manifest{
		Path:     path,
		Name:     strings.TrimSpace(cfg.Package.Name),
		Include:  cfg.Source.Include,
		Encoding: strings.ToLower(strings.TrimSpace(cfg.Source.Encoding)),
	}, nil
}

// Find walks up from startDir to locate sable.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the manifest governing startDir. A missing
// manifest is not an error: the zero Manifest applies defaults.
func Discover(startDir string) (Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Manifest{}, false, err
	}
	m, err := Load(path)
	if err != nil {
		return Manifest{}, true, err
	}
	return m, true, nil
}

// Root returns the project root directory, the one holding the
// manifest.
func (m Manifest) Root() string {
	if m.Path == "" {
		return ""
	}
	return filepath.Dir(m.Path)
}
