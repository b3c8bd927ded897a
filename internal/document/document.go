// Package document holds the text being viewed and the caret over it.
//
// The caret column is a grapheme index (see grapheme.go), so it never lands
// inside a cluster such as a base letter with a combining mark or a
// surrogate pair. CaretText exposes the UTF-16 code units starting at the
// caret, which is what the status resolver consumes.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/charcode/internal/charcode"
	"github.com/zjrosen/charcode/internal/log"
)

// Position is a caret location. Col is a grapheme index and may equal the
// line's grapheme count (end of line).
type Position struct {
	Line int
	Col  int
}

// Document is a read-only buffer of lines with a caret.
type Document struct {
	name  string
	lines []string
	caret Position

	// preferred display column for vertical motion
	wantCol int
}

// New returns a document over lines. An empty slice becomes one empty line.
func New(name string, lines []string) *Document {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Document{name: name, lines: lines}
}

// FromString splits text into lines.
func FromString(name, text string) *Document {
	return New(name, SplitLines(text))
}

// Load reads path with the given input encoding.
func Load(path string, enc InputEncoding) (*Document, error) {
	lines, err := ReadLines(path, enc)
	if err != nil {
		return nil, err
	}
	return New(filepath.Base(path), lines), nil
}

// ReadLines reads and decodes path into lines.
func ReadLines(path string, enc InputEncoding) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	text, err := enc.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	lines := SplitLines(text)
	log.Debug(log.CatDocument, "Loaded document", "path", path, "encoding", string(enc), "lines", len(lines))
	return lines, nil
}

// SplitLines splits on \n and \r\n. A trailing newline does not produce an
// empty final line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Name returns the display name, usually the file's base name.
func (d *Document) Name() string { return d.name }

// LineCount returns the number of lines, always at least one.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns line i, or "" when out of range.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// Caret returns the caret position.
func (d *Document) Caret() Position { return d.caret }

// SetCaret moves the caret, clamped to the content.
func (d *Document) SetCaret(pos Position) {
	d.caret = d.clamp(pos)
	d.wantCol = d.DisplayColumn()
}

// Reload swaps the content and keeps the caret where it was, clamped.
func (d *Document) Reload(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	d.lines = lines
	d.caret = d.clamp(d.caret)
	d.wantCol = d.DisplayColumn()
}

// CaretText returns up to two UTF-16 code units starting at the caret,
// taken from the current line only.
func (d *Document) CaretText() charcode.CaretText {
	line := d.lines[d.caret.Line]
	rest := line[GraphemeToByteOffset(line, d.caret.Col):]
	return charcode.CaretTextFromString(rest)
}

// CaretGrapheme returns the cluster under the caret, "" at end of line.
func (d *Document) CaretGrapheme() string {
	clusters := Graphemes(d.lines[d.caret.Line])
	if d.caret.Col >= len(clusters) {
		return ""
	}
	return clusters[d.caret.Col]
}

// DisplayColumn returns the caret's column in terminal cells.
func (d *Document) DisplayColumn() int {
	col := 0
	for i, cluster := range Graphemes(d.lines[d.caret.Line]) {
		if i >= d.caret.Col {
			break
		}
		col += GraphemeDisplayWidth(cluster)
	}
	return col
}

// MoveLeft moves one grapheme left, wrapping to the end of the previous line.
func (d *Document) MoveLeft() {
	switch {
	case d.caret.Col > 0:
		d.caret.Col--
	case d.caret.Line > 0:
		d.caret.Line--
		d.caret.Col = GraphemeCount(d.lines[d.caret.Line])
	}
	d.wantCol = d.DisplayColumn()
}

// MoveRight moves one grapheme right, wrapping to the start of the next line.
func (d *Document) MoveRight() {
	switch {
	case d.caret.Col < GraphemeCount(d.lines[d.caret.Line]):
		d.caret.Col++
	case d.caret.Line < len(d.lines)-1:
		d.caret.Line++
		d.caret.Col = 0
	}
	d.wantCol = d.DisplayColumn()
}

// MoveUp moves up n lines, keeping the display column where possible.
func (d *Document) MoveUp(n int) { d.moveVertical(-n) }

// MoveDown moves down n lines, keeping the display column where possible.
func (d *Document) MoveDown(n int) { d.moveVertical(n) }

func (d *Document) moveVertical(delta int) {
	line := min(max(d.caret.Line+delta, 0), len(d.lines)-1)
	if line == d.caret.Line {
		return
	}
	d.caret.Line = line
	d.caret.Col = colForDisplay(d.lines[line], d.wantCol)
}

// LineStart moves to column 0.
func (d *Document) LineStart() {
	d.caret.Col = 0
	d.wantCol = 0
}

// LineEnd moves past the last grapheme of the line.
func (d *Document) LineEnd() {
	d.caret.Col = GraphemeCount(d.lines[d.caret.Line])
	d.wantCol = d.DisplayColumn()
}

// DocumentStart moves to the first line, column 0.
func (d *Document) DocumentStart() {
	d.caret = Position{}
	d.wantCol = 0
}

// DocumentEnd moves to column 0 of the last line.
func (d *Document) DocumentEnd() {
	d.caret = Position{Line: len(d.lines) - 1}
	d.wantCol = 0
}

func (d *Document) clamp(pos Position) Position {
	pos.Line = min(max(pos.Line, 0), len(d.lines)-1)
	pos.Col = min(max(pos.Col, 0), GraphemeCount(d.lines[pos.Line]))
	return pos
}

// colForDisplay returns the grapheme index whose cell range covers want,
// or the end of line when the line is shorter.
func colForDisplay(line string, want int) int {
	width := 0
	for i, cluster := range Graphemes(line) {
		w := GraphemeDisplayWidth(cluster)
		if width+w > want {
			return i
		}
		width += w
	}
	return GraphemeCount(line)
}
