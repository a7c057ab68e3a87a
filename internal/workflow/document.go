package workflow

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document is a paged source the classifier can slice.
type Document interface {
	PageCount() int
	// Extract returns a standalone document holding the pages in r.
	Extract(r PageRange) ([]byte, error)
}

// PageSelector is a Document that can also rebuild itself from an
// arbitrary set of 1-indexed pages.
type PageSelector interface {
	Document
	Select(pages []int) ([]byte, error)
}

// PDF is an in-memory PDF read through pdfcpu. It is safe for concurrent
// Extract calls since every call reads from its own reader.
type PDF struct {
	data  []byte
	pages int
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// OpenPDF validates data as a PDF and counts its pages.
func OpenPDF(data []byte) (*PDF, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidDocument)
	}

	n, err := api.PageCount(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: no pages", ErrInvalidDocument)
	}

	return &PDF{data: data, pages: n}, nil
}

func (p *PDF) PageCount() int {
	return p.pages
}

// Data returns the original document bytes.
func (p *PDF) Data() []byte {
	return p.data
}

func (p *PDF) Extract(r PageRange) ([]byte, error) {
	if r.Start < 0 || r.End > p.pages || r.Start >= r.End {
		return nil, fmt.Errorf("%w: %d-%d of %d", ErrInvalidRange, r.Start, r.End, p.pages)
	}
	if r.Start == 0 && r.End == p.pages {
		return p.data, nil
	}
	return p.trim([]string{selection(r.Start+1, r.End)})
}

// Select keeps the listed pages in document order. An empty list returns
// the whole document.
func (p *PDF) Select(pages []int) ([]byte, error) {
	if len(pages) == 0 || len(pages) == p.pages {
		return p.data, nil
	}

	var sel []string
	for i := 0; i < len(pages); {
		j := i
		for j+1 < len(pages) && pages[j+1] == pages[j]+1 {
			j++
		}
		if pages[i] < 1 || pages[j] > p.pages {
			return nil, fmt.Errorf("%w: page %d of %d", ErrInvalidRange, pages[i], p.pages)
		}
		sel = append(sel, selection(pages[i], pages[j]))
		i = j + 1
	}

	return p.trim(sel)
}

func (p *PDF) trim(sel []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.Trim(bytes.NewReader(p.data), &buf, sel, newConfiguration()); err != nil {
		return nil, fmt.Errorf("trim pages %v: %w", sel, err)
	}
	return buf.Bytes(), nil
}

func selection(first, last int) string {
	if first == last {
		return strconv.Itoa(first)
	}
	return strconv.Itoa(first) + "-" + strconv.Itoa(last)
}
