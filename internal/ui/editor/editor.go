// Package editor renders a read-only view of a document with a line-number
// gutter and the caret highlighted.
package editor

import (
	"strconv"
	"strings"

	"github.com/zjrosen/charcode/internal/document"
	"github.com/zjrosen/charcode/internal/ui/styles"
)

// Model holds the viewport geometry. The document itself is owned by the
// caller and passed to Follow and View.
type Model struct {
	width  int
	height int
	top    int // first visible line
	left   int // first visible cell of the text area
}

// New returns an empty view.
func New() Model {
	return Model{}
}

// SetSize sets the view dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = max(width, 0)
	m.height = max(height, 0)
	return m
}

// Height returns the number of visible lines.
func (m Model) Height() int { return m.height }

// Top returns the first visible line.
func (m Model) Top() int { return m.top }

// Left returns the horizontal scroll offset in cells.
func (m Model) Left() int { return m.left }

func gutterWidth(doc *document.Document) int {
	return len(strconv.Itoa(doc.LineCount())) + 1
}

func (m Model) textWidth(doc *document.Document) int {
	return max(m.width-gutterWidth(doc), 1)
}

// Follow scrolls so the caret is visible.
func (m Model) Follow(doc *document.Document) Model {
	if m.height <= 0 {
		return m
	}
	caret := doc.Caret()
	if caret.Line < m.top {
		m.top = caret.Line
	}
	if caret.Line >= m.top+m.height {
		m.top = caret.Line - m.height + 1
	}
	m.top = max(min(m.top, doc.LineCount()-1), 0)

	textWidth := m.textWidth(doc)
	col := doc.DisplayColumn()
	cellWidth := max(document.GraphemeDisplayWidth(doc.CaretGrapheme()), 1)
	if col < m.left {
		m.left = col
	}
	if col+cellWidth > m.left+textWidth {
		m.left = col + cellWidth - textWidth
	}
	m.left = max(m.left, 0)
	return m
}

// View renders the visible lines, each exactly width cells wide.
func (m Model) View(doc *document.Document) string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	gutter := gutterWidth(doc)
	textWidth := m.textWidth(doc)
	caret := doc.Caret()

	rows := make([]string, 0, m.height)
	for i := range m.height {
		lineIdx := m.top + i
		if lineIdx >= doc.LineCount() {
			rows = append(rows, styles.LineNumberStyle.Render(padLeft("~", gutter-1)+" ")+strings.Repeat(" ", textWidth))
			continue
		}

		number := styles.LineNumberStyle.Render(padLeft(strconv.Itoa(lineIdx+1), gutter-1) + " ")
		caretCol := -1
		if lineIdx == caret.Line {
			caretCol = caret.Col
		}
		rows = append(rows, number+m.renderLine(doc.Line(lineIdx), caretCol, textWidth))
	}
	return strings.Join(rows, "\n")
}

// renderLine draws the cells [left, left+width) of line. caretCol is the
// grapheme index of the caret, or -1.
func (m Model) renderLine(line string, caretCol, width int) string {
	var b strings.Builder
	x := 0
	used := 0
	clusters := document.Graphemes(line)

	for i, cluster := range clusters {
		w := document.GraphemeDisplayWidth(cluster)
		start := x
		x += w
		if x <= m.left {
			continue
		}
		if start >= m.left+width {
			break
		}

		cell := cluster
		if cluster == "\t" {
			cell = strings.Repeat(" ", w)
		}
		// Clusters cut by either edge are drawn as blanks.
		if start < m.left || x > m.left+width {
			visible := min(x, m.left+width) - max(start, m.left)
			cell = strings.Repeat(" ", visible)
			w = visible
		}

		if i == caretCol {
			cell = styles.CaretStyle.Render(cell)
		}
		b.WriteString(cell)
		used += w
	}

	if caretCol >= len(clusters) && used < width {
		b.WriteString(styles.CaretStyle.Render(" "))
		used++
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
