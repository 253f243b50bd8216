package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestBytesProducesWellFormedPDF(t *testing.T) {
	doc := &Document{}
	doc.AddHeading("Jordan Reyes", 18)
	doc.AddText("Backend Engineer", 12)
	doc.AddBullet("Built the billing pipeline with (parens) and a \\ backslash", 11)

	data := doc.Bytes()
	if !bytes.HasPrefix(data, []byte("%PDF-1.4")) {
		t.Fatalf("missing header: %q", data[:16])
	}
	if !bytes.HasSuffix(bytes.TrimRight(data, "\n"), []byte("%%EOF")) {
		t.Fatal("missing trailer EOF marker")
	}
	if !bytes.Contains(data, []byte("(Jordan Reyes) Tj")) {
		t.Fatal("heading text not in content stream")
	}
	if !bytes.Contains(data, []byte(`\(parens\)`)) {
		t.Fatal("parentheses not escaped")
	}
	if got := bytes.Count(data, []byte("/Type /Page ")); got != 1 {
		t.Fatalf("page count %d, want 1", got)
	}
}

func TestBytesPaginatesLongDocuments(t *testing.T) {
	doc := &Document{}
	for i := 0; i < 120; i++ {
		doc.AddText("Shipped a project milestone on schedule", 11)
	}

	data := doc.Bytes()
	if got := bytes.Count(data, []byte("/Type /Page ")); got < 2 {
		t.Fatalf("page count %d, want at least 2", got)
	}
}

func TestWrapKeepsWordsIntact(t *testing.T) {
	lines := wrap("one two three four five six seven eight nine ten", 18)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %v", lines)
	}
	for _, line := range lines {
		if len(line) > 18 {
			t.Fatalf("line %q exceeds limit", line)
		}
	}
	if joined := strings.Join(lines, " "); joined != "one two three four five six seven eight nine ten" {
		t.Fatalf("words lost or reordered: %q", joined)
	}
}

func TestEscapeTextReplacesUnencodable(t *testing.T) {
	if got := escapeText("café 世界"); got != "café ??" {
		t.Fatalf("got %q", got)
	}
	if got := escapeText("tab\there"); got != "tab here" {
		t.Fatalf("got %q", got)
	}
}
