package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sablefmt/internal/diag"
	"sablefmt/internal/source"
)

// TextOpts configures the human-readable renderer.
type TextOpts struct {
	// Color enables ANSI styling.
	Color bool
	// ShowSource prints the offending line with a caret underline.
	ShowSource bool
	// ShowNotes prints secondary notes after the primary line.
	ShowNotes bool
}

var (
	errStyle  = color.New(color.FgRed, color.Bold)
	warnStyle = color.New(color.FgYellow, color.Bold)
	infoStyle = color.New(color.FgCyan)
	posStyle  = color.New(color.Bold)
)

// Text renders diagnostics one per line:
//
//	path:line:col: SEVERITY SBL1234: message
//
// followed, when enabled, by the source line and an underline covering
// the primary span. The bag is expected to be sorted already.
func Text(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts TextOpts) {
	for _, d := range bag.Items() {
		writeOne(w, d, fs, opts)
	}
}

func writeOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts TextOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	pos := fmt.Sprintf("%s:%d:%d:", file.Path, start.Line, start.Col)
	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		pos = posStyle.Sprint(pos)
		sev = styleFor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s %s %s: %s\n", pos, sev, code, d.Message)

	if opts.ShowSource {
		writeContext(w, file, d.Primary, start, end, opts.Color)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n",
				n.Msg, fs.Get(n.Span.File).Path, nStart.Line, nStart.Col)
		}
	}
}

// writeContext prints the first line of the span with a caret
// underline. Underline width is measured in display columns so wide
// characters line up.
func writeContext(w io.Writer, file *source.File, span source.Span, start, end source.LineCol, colored bool) {
	line := file.GetLine(start.Line)
	if line == "" && span.Empty() {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// Col is a 1-based byte offset within the line
	lead := min(int(start.Col)-1, len(line))
	pad := runewidth.StringWidth(line[:lead])

	markEnd := len(line)
	if end.Line == start.Line {
		markEnd = min(int(end.Col)-1, len(line))
	}
	if markEnd < lead {
		markEnd = lead
	}
	mark := runewidth.StringWidth(line[lead:markEnd])
	if mark < 1 {
		mark = 1
	}

	underline := "^" + strings.Repeat("~", mark-1)
	if colored {
		underline = errStyle.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), underline)
}

func styleFor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errStyle
	case diag.SevWarning:
		return warnStyle
	default:
		return infoStyle
	}
}
