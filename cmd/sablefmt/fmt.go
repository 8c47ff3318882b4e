package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sablefmt/internal/diagfmt"
	"sablefmt/internal/driver"
	"sablefmt/internal/project"
	"sablefmt/internal/rules"
	"sablefmt/internal/source"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Sable source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that need formatting without writing")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("strict", false, "treat warnings as errors")
	fmtCmd.Flags().Bool("no-cache", false, "bypass the check-result cache")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, _ := cmd.Flags().GetBool("check")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	outputFormat, _ := cmd.Flags().GetString("format")
	strict, _ := cmd.Flags().GetBool("strict")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	if toStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if toStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
	if toStdout {
		// cached check results carry no output text
		noCache = true
	}

	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	maxDiag, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	mode := driver.ModeApply
	if check || toStdout {
		mode = driver.ModeCheck
	}

	fileSet, results, err := runPipeline(cmd, args, mode, noCache, maxDiag)
	if err != nil {
		return err
	}

	if toStdout {
		return renderStdout(results)
	}

	var report runReport
	switch outputFormat {
	case "json":
		err = renderJSON(fileSet, results, &report)
	default:
		renderText(fileSet, results, renderOpts{
			check:   check,
			quiet:   quiet,
			colored: colored,
		}, &report)
	}
	if err != nil {
		return err
	}

	return report.exitError(check, strict)
}

// runPipeline discovers the manifest, opens the cache, and drives the
// files through the formatter.
func runPipeline(cmd *cobra.Command, args []string, mode driver.Mode, noCache bool, maxDiag int) (*source.FileSet, []driver.FileResult, error) {
	start := "."
	if len(args) > 0 {
		start = args[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	manifest, _, err := project.Discover(start)
	if err != nil {
		return nil, nil, err
	}

	var cache *driver.CheckCache
	if mode == driver.ModeCheck && !noCache {
		// cache failures are not fatal, just slower
		cache, _ = driver.OpenCheckCache("sablefmt")
	}

	return driver.ProcessPaths(cmd.Context(), args, driver.Options{
		Mode:           mode,
		Rules:          rules.DefaultRegistry(),
		Manifest:       manifest,
		Cache:          cache,
		MaxDiagnostics: maxDiag,
	})
}

func renderStdout(results []driver.FileResult) error {
	failed := false
	for _, res := range results {
		if res.Err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = os.Stdout.Write(res.Output)
	}
	if failed {
		return fmt.Errorf("fmt: failed to format some files")
	}
	return nil
}

type renderOpts struct {
	check   bool
	quiet   bool
	colored bool
}

type runReport struct {
	errors      int
	warnings    int
	unformatted int
	failures    int
}

func (r runReport) exitError(check, strict bool) error {
	if r.failures > 0 {
		return fmt.Errorf("failed to process some files")
	}
	if r.errors > 0 || (strict && r.warnings > 0) {
		return fmt.Errorf("style violations found")
	}
	if check && r.unformatted > 0 {
		return fmt.Errorf("formatting changes required")
	}
	return nil
}

func renderText(fs *source.FileSet, results []driver.FileResult, opts renderOpts, report *runReport) {
	for _, res := range results {
		if res.Err != nil {
			report.failures++
			fmt.Fprintf(os.Stderr, "sablefmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Bag != nil {
			diagfmt.Text(os.Stderr, res.Bag, fs, diagfmt.TextOpts{
				Color:      opts.colored,
				ShowSource: true,
				ShowNotes:  true,
			})
			if res.Bag.HasErrors() {
				report.errors++
			} else if res.Bag.HasWarnings() {
				report.warnings++
			}
		}
		if !res.Formatted {
			report.unformatted++
			switch {
			case res.Written:
				if !opts.quiet {
					fmt.Println(res.Path)
				}
			case opts.check:
				fmt.Printf("%s: not formatted (first difference at offset %d)\n",
					res.Path, res.FirstDiff)
			}
		}
	}
}

func renderJSON(fs *source.FileSet, results []driver.FileResult, report *runReport) error {
	run := diagfmt.RunJSON{Files: make([]diagfmt.FileJSON, 0, len(results))}
	for _, res := range results {
		fj := diagfmt.FileJSON{
			Path:      res.Path,
			Formatted: res.Formatted,
			FirstDiff: res.FirstDiff,
		}
		if res.Err != nil {
			report.failures++
			fj.Error = res.Err.Error()
		}
		if res.Bag != nil {
			fj.Diagnostics = diagfmt.BuildDiagnostics(res.Bag, fs)
			if res.Bag.HasErrors() {
				report.errors++
			} else if res.Bag.HasWarnings() {
				report.warnings++
			}
		}
		if !res.Formatted && res.Err == nil {
			report.unformatted++
		}
		run.Files = append(run.Files, fj)
	}
	run.Errors = report.errors
	run.Warnings = report.warnings
	run.Unformatted = report.unformatted
	return diagfmt.WriteJSON(os.Stdout, run)
}
