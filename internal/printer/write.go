package printer

import (
	"bytes"

	"github.com/mattn/go-runewidth"
)

// MaxLineWidth is the format line budget: the single global layout
// parameter of the formatter. Lines never exceed it unless a single
// unbreakable token is already wider.
const MaxLineWidth = 100

// indentWidth is one indentation unit, in spaces.
const indentWidth = 4

// Writer accumulates printed output, tracking indentation as a nesting
// depth so wrap decisions stay budget-exact.
type Writer struct {
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates an empty writer positioned at the start of a line.
func NewWriter() *Writer {
	return &Writer{atLineStart: true}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for i := 0; i < w.indentLevel*indentWidth; i++ {
		w.buf = append(w.buf, ' ')
	}
	w.atLineStart = false
}

// WriteString writes a string, emitting pending indentation first.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	if s[len(s)-1] == '\n' {
		w.atLineStart = true
	}
}

// Newline terminates the current line unless it is already terminated.
func (w *Writer) Newline() {
	if len(w.buf) > 0 && !w.atLineStart {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// BlankLine ensures exactly one empty line before the next content.
func (w *Writer) BlankLine() {
	w.Newline()
	if len(w.buf) > 0 && !bytes.HasSuffix(w.buf, []byte("\n\n")) {
		w.buf = append(w.buf, '\n')
	}
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// width measures display columns, not bytes, so the line budget holds
// for wide characters.
func width(s string) int {
	return runewidth.StringWidth(s)
}

// Column returns the display width of the current line so far, counting
// pending indentation. Width is measured with runewidth so the budget
// holds for wide characters too.
func (w *Writer) Column() int {
	if w.atLineStart {
		return w.indentLevel * indentWidth
	}
	i := bytes.LastIndexByte(w.buf, '\n')
	return runewidth.StringWidth(string(w.buf[i+1:]))
}
