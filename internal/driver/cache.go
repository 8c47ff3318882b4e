package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"sablefmt/internal/diag"
	"sablefmt/internal/source"
)

// Bump when the payload layout changes; stale entries are ignored.
const cacheSchemaVersion uint16 = 1

// CheckCache remembers per-content check results on disk so repeated
// runs over an unchanged tree skip the whole pipeline. Keys are the
// sha256 of the normalized file content, so any edit invalidates the
// entry naturally. Thread-safe for concurrent workers.
type CheckCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedDiag is one diagnostic with its span flattened to offsets; the
// FileID is rebound on load since IDs are per-run.
type cachedDiag struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
}

// cachePayload is the serialized result of one file's check.
type cachePayload struct {
	Schema    uint16
	Formatted bool
	FirstDiff int
	Diags     []cachedDiag
}

// OpenCheckCache initializes the cache under the standard location,
// $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenCheckCache(app string) (*CheckCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CheckCache{dir: dir}, nil
}

func (c *CheckCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "checks", hex.EncodeToString(key[:])+".mp")
}

// Put stores a check result under the content hash. Writes are atomic
// so a crashed run never leaves a torn entry.
func (c *CheckCache) Put(key [32]byte, formatted bool, firstDiff int, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema:    cacheSchemaVersion,
		Formatted: formatted,
		FirstDiff: firstDiff,
		Diags:     make([]cachedDiag, 0, len(diags)),
	}
	for _, d := range diags {
		payload.Diags = append(payload.Diags, cachedDiag{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads a check result for the content hash, rebinding the cached
// spans to file. A schema mismatch acts like a miss.
func (c *CheckCache) Get(key [32]byte, file source.FileID) (formatted bool, firstDiff int, diags []diag.Diagnostic, ok bool) {
	if c == nil {
		return false, 0, nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return false, 0, nil, false
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, 0, nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return false, 0, nil, false
	}

	diags = make([]diag.Diagnostic, 0, len(payload.Diags))
	for _, d := range payload.Diags {
		diags = append(diags, diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary: source.Span{
				File:  file,
				Start: d.Start,
				End:   d.End,
			},
		})
	}
	return payload.Formatted, payload.FirstDiff, diags, true
}

// DropAll throws the whole cache away; useful after upgrades.
func (c *CheckCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.RemoveAll(filepath.Join(c.dir, "checks"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
