package workflow_test

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/callil/tax-ui/internal/workflow"
)

// buildPDF assembles a minimal valid PDF with n pages, each showing its own
// page number in Helvetica.
func buildPDF(n int) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 0, 3+2*n)

	write := func(obj string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	buf.WriteString("%PDF-1.4\n")

	// 1 catalog, 2 pages, 3 font, then page and content pairs from 4.
	var kids bytes.Buffer
	for i := range n {
		fmt.Fprintf(&kids, "%d 0 R ", 4+2*i)
	}

	write("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	write(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", kids.String(), n))
	write("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for i := range n {
		page := 4 + 2*i
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (Page %d) Tj ET", i+1)
		write(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n", page, page+1))
		write(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", page+1, len(content), content))
	}

	xref := buf.Len()
	size := len(offsets) + 1
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", size)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%s\n%%%%EOF\n", size, strconv.Itoa(xref))

	return buf.Bytes()
}

func TestOpenPDF(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		pages int
		err   error
	}{
		{"single page", buildPDF(1), 1, nil},
		{"multi page", buildPDF(37), 37, nil},
		{"empty", nil, 0, workflow.ErrInvalidDocument},
		{"not a pdf", []byte("hello, world"), 0, workflow.ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := workflow.OpenPDF(tt.data)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("OpenPDF() error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenPDF() error = %v", err)
			}
			if doc.PageCount() != tt.pages {
				t.Errorf("PageCount() = %d, want %d", doc.PageCount(), tt.pages)
			}
		})
	}
}

func TestPDFExtract(t *testing.T) {
	doc, err := workflow.OpenPDF(buildPDF(37))
	if err != nil {
		t.Fatalf("OpenPDF() error = %v", err)
	}

	for _, r := range workflow.Chunk(doc.PageCount(), 15) {
		data, err := doc.Extract(r)
		if err != nil {
			t.Fatalf("Extract(%v) error = %v", r, err)
		}

		sub, err := workflow.OpenPDF(data)
		if err != nil {
			t.Fatalf("OpenPDF(extracted %v) error = %v", r, err)
		}
		if sub.PageCount() != r.Len() {
			t.Errorf("Extract(%v) has %d pages, want %d", r, sub.PageCount(), r.Len())
		}
	}
}

func TestPDFExtractInvalidRange(t *testing.T) {
	doc, err := workflow.OpenPDF(buildPDF(5))
	if err != nil {
		t.Fatalf("OpenPDF() error = %v", err)
	}

	for _, r := range []workflow.PageRange{{Start: 3, End: 3}, {Start: -1, End: 2}, {Start: 0, End: 6}} {
		if _, err := doc.Extract(r); !errors.Is(err, workflow.ErrInvalidRange) {
			t.Errorf("Extract(%v) error = %v, want ErrInvalidRange", r, err)
		}
	}
}

func TestPDFSelect(t *testing.T) {
	doc, err := workflow.OpenPDF(buildPDF(10))
	if err != nil {
		t.Fatalf("OpenPDF() error = %v", err)
	}

	data, err := doc.Select([]int{1, 2, 3, 7, 9, 10})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	sub, err := workflow.OpenPDF(data)
	if err != nil {
		t.Fatalf("OpenPDF(selected) error = %v", err)
	}
	if sub.PageCount() != 6 {
		t.Errorf("selected PageCount() = %d, want 6", sub.PageCount())
	}

	whole, err := doc.Select(nil)
	if err != nil {
		t.Fatalf("Select(nil) error = %v", err)
	}
	if !bytes.Equal(whole, doc.Data()) {
		t.Error("Select(nil) should return the original document")
	}

	if _, err := doc.Select([]int{4, 11}); !errors.Is(err, workflow.ErrInvalidRange) {
		t.Errorf("Select(out of range) error = %v, want ErrInvalidRange", err)
	}
}
