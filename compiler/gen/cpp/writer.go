package cpp

import (
	"fmt"
	"strings"
)

// Writer is an indent-aware C++ text stream.
type Writer struct {
	indent int
	width  int
	lines  []string
}

// NewWriter returns a writer indenting with the given number of spaces.
func NewWriter(width int) *Writer {
	if width <= 0 {
		width = 4
	}
	return &Writer{width: width, lines: make([]string, 0, 256)}
}

// Line writes one indented line.
func (w *Writer) Line(format string, args ...any) {
	s := format
	if len(args) > 0 {
		s = fmt.Sprintf(format, args...)
	}
	w.lines = append(w.lines, strings.Repeat(" ", w.indent*w.width)+s)
}

// Blank writes an empty line, collapsing consecutive ones.
func (w *Writer) Blank() {
	if n := len(w.lines); n == 0 || w.lines[n-1] == "" {
		return
	}
	w.lines = append(w.lines, "")
}

// Directive writes a preprocessor line at column zero.
func (w *Writer) Directive(format string, args ...any) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

// Open writes an opening brace and indents.
func (w *Writer) Open() {
	w.Line("{")
	w.indent++
}

// Close dedents and writes a closing brace followed by suffix.
func (w *Writer) Close(suffix string) {
	w.indent--
	if w.indent < 0 {
		w.indent = 0
	}
	// Drop trailing blank lines of the block.
	for n := len(w.lines); n > 0 && w.lines[n-1] == ""; n = len(w.lines) {
		w.lines = w.lines[:n-1]
	}
	w.Line("}" + suffix)
}

// Block writes header, then body enclosed in braces.
func (w *Writer) Block(header string, body func()) {
	w.Line(header)
	w.Open()
	body()
	w.Close("")
}

// Separator writes a comment banner.
func (w *Writer) Separator(title ...string) {
	const rule = "//-------------------------------------------------------------------------"
	w.Line(rule)
	for _, t := range title {
		w.Line("// " + t)
	}
	if len(title) > 0 {
		w.Line(rule)
	}
}

// Bytes returns the written text, terminated by a newline.
func (w *Writer) Bytes() []byte {
	lines := w.lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// String implements fmt.Stringer.
func (w *Writer) String() string { return string(w.Bytes()) }
