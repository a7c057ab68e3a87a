// Package workflow turns an uploaded tax-return PDF into structured data. The
// pages are classified by form type in concurrent chunks, then the relevant
// pages are sent for extraction.
package workflow

import (
	"context"
	"time"
)

// Classify opens data as a PDF and classifies every page, verifying that
// the result covers the document exactly once.
func Classify(ctx context.Context, rt *Runtime, data []byte) ([]PageClassification, int, error) {
	doc, err := OpenPDF(data)
	if err != nil {
		return nil, 0, err
	}

	pages, err := ClassifyDocument(ctx, rt, doc)
	if err != nil {
		return nil, doc.PageCount(), err
	}

	if err := Verify(pages, doc.PageCount()); err != nil {
		return nil, doc.PageCount(), err
	}

	return pages, doc.PageCount(), nil
}

// Execute runs the full pipeline over data.
func Execute(ctx context.Context, rt *Runtime, data []byte) (*Result, error) {
	doc, err := OpenPDF(data)
	if err != nil {
		return nil, err
	}

	rt.Logger.InfoContext(ctx, "workflow started", "pages", doc.PageCount())

	pages, err := ClassifyDocument(ctx, rt, doc)
	if err != nil {
		return nil, err
	}

	if err := Verify(pages, doc.PageCount()); err != nil {
		return nil, err
	}

	ret, extracted, err := Extract(ctx, rt, doc, pages)
	if err != nil {
		return nil, err
	}

	rt.Logger.InfoContext(ctx, "workflow completed",
		"year", ret.Year,
		"pages", doc.PageCount(),
		"extracted", len(extracted),
	)

	return &Result{
		Return:          ret,
		Classifications: pages,
		PageCount:       doc.PageCount(),
		ExtractedPages:  extracted,
		Model:           rt.ExtractModel,
		CompletedAt:     time.Now().UTC(),
	}, nil
}
