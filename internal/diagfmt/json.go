package diagfmt

import (
	"encoding/json"
	"io"

	"sablefmt/internal/diag"
	"sablefmt/internal/source"
)

// LocationJSON is a span resolved for machine consumers.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

// NoteJSON is one secondary note.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one finding.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// FileJSON is one file's outcome.
type FileJSON struct {
	Path        string           `json:"path"`
	Formatted   bool             `json:"formatted"`
	FirstDiff   int              `json:"first_diff"`
	Error       string           `json:"error,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// RunJSON is the root of the machine-readable report.
type RunJSON struct {
	Files       []FileJSON `json:"files"`
	Errors      int        `json:"errors"`
	Warnings    int        `json:"warnings"`
	Unformatted int        `json:"unformatted"`
}

// BuildDiagnostics converts a bag into its JSON form.
func BuildDiagnostics(bag *diag.Bag, fs *source.FileSet) []DiagnosticJSON {
	if bag == nil {
		return nil
	}
	out := make([]DiagnosticJSON, 0, bag.Len())
	for _, d := range bag.Items() {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs),
		}
		for _, n := range d.Notes {
			dj.Notes = append(dj.Notes, NoteJSON{
				Message:  n.Msg,
				Location: makeLocation(n.Span, fs),
			})
		}
		out = append(out, dj)
	}
	return out
}

// WriteJSON serializes a run report with stable field order and
// trailing newline.
func WriteJSON(w io.Writer, run RunJSON) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

func makeLocation(span source.Span, fs *source.FileSet) LocationJSON {
	start, end := fs.Resolve(span)
	return LocationJSON{
		File:      fs.Get(span.File).Path,
		StartByte: span.Start,
		EndByte:   span.End,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}
