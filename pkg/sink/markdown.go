package sink

import (
	"bufio"
	"html"
	"io"
	"strconv"
	"strings"
)

// Markdown writes events as Markdown text.
//
// Tables are buffered until Close(Table) and written as pipe tables; the
// first row becomes the header row (an empty header is synthesised when a
// table has no header cells). Call Flush when done.
type Markdown struct {
	w   *bufio.Writer
	err error

	bol   bool // at beginning of line
	nl    int  // trailing newlines written
	wrote bool
	lists []mdList
	divs  []bool // open divisions, true for caption titles

	table   *mdTable
	capture *strings.Builder
}

type mdList struct {
	ordered bool
	n       int
}

type mdTable struct {
	caption strings.Builder
	rows    [][]string
	header  bool
	cell    strings.Builder
}

// NewMarkdown returns a Markdown sink writing to w.
func NewMarkdown(w io.Writer) *Markdown {
	return &Markdown{w: bufio.NewWriter(w), bol: true}
}

func (m *Markdown) Open(e Element, attrs Attrs) error {
	if m.table != nil {
		m.openInTable(e)
		return m.err
	}
	switch e {
	case Anchor:
		if name := attrs["name"]; name != "" {
			m.line()
			m.write(`<a id="` + html.EscapeString(name) + `"></a>` + "\n")
		}
	case Heading1, Heading2, Heading3, Heading4, Heading5, Heading6:
		m.block()
		m.write(strings.Repeat("#", e.HeadingLevel()) + " ")
	case Paragraph:
		if len(m.lists) == 0 {
			m.block()
		} else {
			m.line()
			m.indent()
		}
	case Division:
		title := attrs["class"] == "title"
		m.divs = append(m.divs, title)
		if title {
			m.block()
			m.write("**")
		}
	case List, NumberedList:
		if len(m.lists) == 0 {
			m.block()
		} else {
			m.line()
		}
		m.lists = append(m.lists, mdList{ordered: e == NumberedList})
	case ListItem, NumberedListItem:
		m.line()
		depth := len(m.lists)
		if depth > 0 {
			m.write(strings.Repeat("  ", depth-1))
			top := &m.lists[depth-1]
			top.n++
			if top.ordered {
				m.write(strconv.Itoa(top.n) + ". ")
			} else {
				m.write("- ")
			}
		} else {
			m.write("- ")
		}
	case Table:
		m.block()
		m.table = &mdTable{}
	case DefinitionList:
		m.block()
	case DefinedTerm:
		m.line()
		m.write("**")
	case Definition:
		m.line()
		m.write(": ")
	case Verbatim:
		m.block()
		m.write("```" + attrs["data-lang"] + "\n")
	}
	return m.err
}

func (m *Markdown) Close(e Element) error {
	if m.table != nil {
		m.closeInTable(e)
		return m.err
	}
	switch e {
	case Heading1, Heading2, Heading3, Heading4, Heading5, Heading6, Paragraph:
		m.write("\n")
	case Division:
		if n := len(m.divs); n > 0 {
			title := m.divs[n-1]
			m.divs = m.divs[:n-1]
			if title {
				m.write("**\n")
			}
		}
	case List, NumberedList:
		if n := len(m.lists); n > 0 {
			m.lists = m.lists[:n-1]
		}
		m.line()
	case ListItem, NumberedListItem, Definition:
		m.line()
	case DefinedTerm:
		m.write("**\n")
	case Verbatim:
		m.line()
		m.write("```\n")
	}
	return m.err
}

func (m *Markdown) RawText(text string) error {
	if m.capture != nil {
		m.capture.WriteString(text)
		return m.err
	}
	m.write(text)
	return m.err
}

func (m *Markdown) FigureGraphics(src string, attrs Attrs) error {
	if m.table != nil {
		m.table.cell.WriteString("![" + attrs["alt"] + "](" + src + ")")
		return m.err
	}
	m.block()
	m.write("![" + attrs["alt"] + "](" + src + ")\n")
	return m.err
}

// Flush writes buffered output to the underlying writer.
func (m *Markdown) Flush() error {
	if m.err != nil {
		return m.err
	}
	m.err = m.w.Flush()
	return m.err
}

func (m *Markdown) openInTable(e Element) {
	t := m.table
	switch e {
	case TableRow:
		t.rows = append(t.rows, nil)
	case TableHeaderCell, TableCell:
		if e == TableHeaderCell && len(t.rows) == 1 {
			t.header = true
		}
		t.cell.Reset()
		m.capture = &t.cell
	case TableCaption:
		m.capture = &t.caption
	}
}

func (m *Markdown) closeInTable(e Element) {
	t := m.table
	switch e {
	case TableHeaderCell, TableCell:
		if len(t.rows) == 0 {
			t.rows = append(t.rows, nil)
		}
		last := len(t.rows) - 1
		t.rows[last] = append(t.rows[last], escapeCell(t.cell.String()))
		m.capture = nil
	case TableCaption:
		m.capture = nil
	case Table:
		m.table = nil
		m.capture = nil
		m.writeTable(t)
	}
}

func (m *Markdown) writeTable(t *mdTable) {
	if c := t.caption.String(); c != "" {
		m.write("*" + c + "*\n\n")
	}
	cols := 0
	for _, r := range t.rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return
	}
	rows := t.rows
	header := make([]string, cols)
	if t.header {
		copy(header, rows[0])
		rows = rows[1:]
	}
	m.writeRow(header, cols)
	sep := make([]string, cols)
	for i := range sep {
		sep[i] = "---"
	}
	m.writeRow(sep, cols)
	for _, r := range rows {
		m.writeRow(r, cols)
	}
}

func (m *Markdown) writeRow(cells []string, cols int) {
	var b strings.Builder
	b.WriteString("|")
	for i := 0; i < cols; i++ {
		c := ""
		if i < len(cells) {
			c = cells[i]
		}
		b.WriteString(" " + c + " |")
	}
	b.WriteString("\n")
	m.write(b.String())
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// line ends the current line if anything was written on it.
func (m *Markdown) line() {
	if !m.bol {
		m.write("\n")
	}
}

// block starts a new block: ends the current line and, outside lists,
// leaves one blank line.
func (m *Markdown) block() {
	m.line()
	if len(m.lists) == 0 && m.wrote && m.nl < 2 {
		m.write("\n")
	}
}

func (m *Markdown) indent() {
	if d := len(m.lists); d > 0 {
		m.write(strings.Repeat("  ", d))
	}
}

func (m *Markdown) write(s string) {
	if m.err != nil || s == "" {
		return
	}
	_, m.err = m.w.WriteString(s)
	m.wrote = true
	trailing := len(s) - len(strings.TrimRight(s, "\n"))
	if trailing == len(s) {
		m.nl += trailing
	} else {
		m.nl = trailing
	}
	m.bol = m.nl > 0
}

var _ Sink = (*Markdown)(nil)
