package workflow

import (
	"encoding/base64"
	"fmt"
)

// Chunk splits pageCount pages into consecutive ranges of at most chunkSize
// pages. The ranges cover [0, pageCount) without gaps or overlap.
func Chunk(pageCount, chunkSize int) []PageRange {
	if pageCount < 1 {
		return nil
	}
	if chunkSize < 1 {
		chunkSize = pageCount
	}

	ranges := make([]PageRange, 0, (pageCount+chunkSize-1)/chunkSize)
	for start := 0; start < pageCount; start += chunkSize {
		ranges = append(ranges, PageRange{Start: start, End: min(start+chunkSize, pageCount)})
	}
	return ranges
}

// EncodeChunk returns the base64 encoding of a standalone document holding
// the pages in r. The range is clamped to the document first; a range that
// is empty after clamping is an error.
func EncodeChunk(doc Document, r PageRange) (string, error) {
	total := doc.PageCount()
	end := min(r.End, total)
	start := min(r.Start, end)

	if start < 0 || start >= end {
		return "", fmt.Errorf("%w: %d-%d for document with %d pages", ErrInvalidRange, r.Start, r.End, total)
	}

	data, err := doc.Extract(PageRange{Start: start, End: end})
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
