package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"

	"sablefmt/internal/diag"
	"sablefmt/internal/project"
	"sablefmt/internal/reconcile"
	"sablefmt/internal/rules"
	"sablefmt/internal/source"
)

// Mode selects what happens with formatted output.
type Mode uint8

const (
	// ModeCheck reports whether files are canonical, writing nothing.
	ModeCheck Mode = iota
	// ModeApply rewrites files that are not canonical.
	ModeApply
)

// Options configures a run over many files.
type Options struct {
	Mode Mode
	// Rules is evaluated per file; nil formats without checking.
	Rules *rules.Registry
	// Manifest scopes the run; the zero value applies defaults.
	Manifest project.Manifest
	// Cache short-circuits check runs on unchanged content. Nil
	// disables caching.
	Cache *CheckCache
	// Jobs bounds worker parallelism; <=0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Formatted is true when the file already had canonical form.
	Formatted bool
	// FirstDiff is the offset of the first divergence, -1 if none.
	FirstDiff int
	// Output is the formatted text; nil when the file failed.
	Output []byte
	// Written is true when apply mode replaced the file on disk.
	Written bool
	// Bag holds the file's violations and diagnostics.
	Bag *diag.Bag
	// Err is a per-file failure: parse error, invariant breach, or IO.
	Err error
}

// ProcessPaths runs the pipeline over every .sb file reachable from
// paths. Files run in parallel, one goroutine per file bounded by
// Jobs; each worker writes only its own slot of the pre-sized result
// slice, so no locking is needed. The file order, and therefore the
// result order, is deterministic.
func ProcessPaths(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := CollectSourceFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	if root := opts.Manifest.Root(); root != "" {
		files = FilterIncluded(files, root, opts.Manifest.Include)
	}
	if len(files) == 0 {
		return source.NewFileSet(), nil, nil
	}

	enc, err := lookupEncoding(opts.Manifest.Encoding)
	if err != nil {
		return nil, nil, err
	}

	// load sequentially: the FileSet index is not safe for concurrent
	// writes, and reads dominate the pipeline anyway
	fileSet := source.NewFileSet()
	results := make([]FileResult, len(files))
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		results[i] = FileResult{Path: path, FirstDiff: -1}
		raw, err := os.ReadFile(path) // #nosec G304 -- user-listed path
		if err != nil {
			results[i].Err = &IoError{Op: "read", Path: path, Err: err}
			continue
		}
		decoded, err := decodeSource(enc, raw)
		if err != nil {
			results[i].Err = &IoError{Op: "decode", Path: path, Err: err}
			continue
		}
		flags := source.FileFlags(0)
		if enc != nil {
			flags |= source.FileTranscoded
		}
		ids[i] = fileSet.LoadBytes(path, decoded, flags)
		results[i].FileID = ids[i]
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		i := i
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			processOne(fileSet.Get(ids[i]), opts, enc, &results[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// processOne runs one file through the cache and the pipeline, and in
// apply mode writes divergent output back.
func processOne(file *source.File, opts Options, enc encoding.Encoding, res *FileResult) {
	if opts.Mode == ModeCheck && opts.Cache != nil {
		if formatted, firstDiff, diags, ok := opts.Cache.Get(file.Hash, file.ID); ok {
			bag := diag.NewBag(max(len(diags), 1))
			for _, d := range diags {
				bag.Add(d)
			}
			res.Formatted = formatted && file.Flags&(source.FileHadBOM|source.FileNormalizedCRLF) == 0
			res.FirstDiff = firstDiff
			if !res.Formatted && res.FirstDiff < 0 {
				res.FirstDiff = 0
			}
			res.Bag = bag
			return
		}
	}

	out, err := reconcile.ProcessFile(file, reconcile.Options{
		Rules:          opts.Rules,
		MaxDiagnostics: opts.MaxDiagnostics,
	})
	res.Bag = out.Bag
	if err != nil {
		res.Err = err
		return
	}
	res.Formatted = out.Formatted
	res.FirstDiff = out.FirstDiff
	res.Output = out.Output

	if opts.Mode == ModeCheck && opts.Cache != nil {
		// store the pure content-keyed result; per-file flags like a
		// stripped BOM are reapplied on every hit, so a clean twin of
		// this content never inherits them. Write failures only cost a
		// future recompute.
		_ = opts.Cache.Put(file.Hash, out.Formatted, out.FirstDiff, out.Bag.Items())
	}

	// BOM stripping and CRLF normalization are formatting changes too,
	// even when the decoded text is already canonical
	if file.Flags&(source.FileHadBOM|source.FileNormalizedCRLF) != 0 {
		res.Formatted = false
		if res.FirstDiff < 0 {
			res.FirstDiff = 0
		}
	}

	if opts.Mode == ModeApply && !res.Formatted {
		encoded, err := encodeSource(enc, out.Output)
		if err != nil {
			res.Err = &IoError{Op: "encode", Path: file.Path, Err: err}
			return
		}
		if err := reconcile.WriteFile(file.Path, encoded); err != nil {
			res.Err = &IoError{Op: "write", Path: file.Path, Err: err}
			return
		}
		res.Written = true
	}
}

// IoError is a per-file read, write, or transcoding failure. It is
// localized to the file and never aborts the run.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}
