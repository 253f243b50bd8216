// Package render produces resume PDFs without an external writer dependency.
// Output is PDF 1.4 with uncompressed content streams and the built-in
// Helvetica fonts, which keeps the documents readable by the same extraction
// path that serves the text endpoint.
package render

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pageWidth  = 612.0
	pageHeight = 792.0
	margin     = 72.0

	fontRegular = "F1"
	fontBold    = "F2"
)

// Line is one laid-out row of text.
type Line struct {
	Text  string
	Bold  bool
	Size  float64
	Space float64 // extra vertical gap before the line
}

// Document accumulates lines and renders them into pages.
type Document struct {
	lines []Line
}

// AddHeading appends a bold line at the given size.
func (d *Document) AddHeading(text string, size float64) {
	d.lines = append(d.lines, Line{Text: text, Bold: true, Size: size, Space: size * 0.6})
}

// AddText appends regular body lines, wrapping long text.
func (d *Document) AddText(text string, size float64) {
	for _, chunk := range wrap(text, maxRunes(size)) {
		d.lines = append(d.lines, Line{Text: chunk, Size: size})
	}
}

// AddBullet appends a bulleted body line, wrapping continuations with an
// indent marker.
func (d *Document) AddBullet(text string, size float64) {
	chunks := wrap(text, maxRunes(size)-2)
	for i, chunk := range chunks {
		if i == 0 {
			d.lines = append(d.lines, Line{Text: "- " + chunk, Size: size})
		} else {
			d.lines = append(d.lines, Line{Text: "  " + chunk, Size: size})
		}
	}
}

// AddGap inserts vertical whitespace.
func (d *Document) AddGap(points float64) {
	d.lines = append(d.lines, Line{Space: points})
}

// Bytes renders the document to a complete PDF file.
func (d *Document) Bytes() []byte {
	pages := paginate(d.lines)
	if len(pages) == 0 {
		pages = [][]Line{nil}
	}

	var buf bytes.Buffer
	offsets := []int{0} // object 0 is the free-list head

	buf.WriteString("%PDF-1.4\n")

	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		num := len(offsets) - 1
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	// Fixed object numbers: 1 catalog, 2 pages, 3 regular font, 4 bold font,
	// then alternating page and content objects.
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 5+i*2))
	}
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages)))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>")

	for i, page := range pages {
		contentNum := 6 + i*2
		writeObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.0f %.0f] "+
				"/Resources << /Font << /%s 3 0 R /%s 4 0 R >> >> /Contents %d 0 R >>",
			pageWidth, pageHeight, fontRegular, fontBold, contentNum))

		stream := contentStream(page)
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(stream), stream))
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets), xrefStart)

	return buf.Bytes()
}

func contentStream(lines []Line) string {
	var sb strings.Builder
	sb.WriteString("BT\n")
	y := pageHeight - margin
	for _, line := range lines {
		y -= line.Space
		if line.Text == "" {
			continue
		}
		size := line.Size
		if size <= 0 {
			size = 11
		}
		y -= leading(size)
		font := fontRegular
		if line.Bold {
			font = fontBold
		}
		fmt.Fprintf(&sb, "/%s %.1f Tf\n", font, size)
		fmt.Fprintf(&sb, "1 0 0 1 %.1f %.1f Tm\n", margin, y)
		fmt.Fprintf(&sb, "(%s) Tj\n", escapeText(line.Text))
	}
	sb.WriteString("ET\n")
	return sb.String()
}

func paginate(lines []Line) [][]Line {
	var pages [][]Line
	var current []Line
	remaining := pageHeight - 2*margin

	for _, line := range lines {
		need := line.Space
		if line.Text != "" {
			size := line.Size
			if size <= 0 {
				size = 11
			}
			need += leading(size)
		}
		if need > remaining && len(current) > 0 {
			pages = append(pages, current)
			current = nil
			remaining = pageHeight - 2*margin
			if line.Text == "" {
				continue // drop a bare gap at the top of a page
			}
		}
		current = append(current, line)
		remaining -= need
	}
	if len(current) > 0 {
		pages = append(pages, current)
	}
	return pages
}

func leading(size float64) float64 {
	return size * 1.35
}

// maxRunes approximates how many characters fit a text column at the given
// size, assuming an average Helvetica glyph width of half the point size.
func maxRunes(size float64) int {
	if size <= 0 {
		size = 11
	}
	return int((pageWidth - 2*margin) / (size * 0.5))
}

func wrap(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if limit < 8 {
		limit = 8
	}

	words := strings.Fields(text)
	var out []string
	var line strings.Builder
	for _, word := range words {
		if line.Len() > 0 && line.Len()+1+len(word) > limit {
			out = append(out, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		out = append(out, line.String())
	}
	return out
}

// escapeText makes a string safe inside a PDF literal string. Characters
// outside Latin-1 are replaced since the built-in fonts cannot encode them.
func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n', '\r', '\t':
			sb.WriteByte(' ')
		default:
			if r < 32 || r > 255 {
				sb.WriteByte('?')
			} else {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}
