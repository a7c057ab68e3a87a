package workflow

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/callil/tax-ui/internal/inference"
	"github.com/callil/tax-ui/internal/prompts"
	"github.com/callil/tax-ui/pkg/formatting"
)

type pageReply struct {
	Page int    `json:"page"`
	Type string `json:"type"`
}

// ClassifyChunk asks the model to tag each page of one encoded chunk.
// firstPage is the 1-indexed absolute number of the chunk's first page; the
// model's chunk-relative numbers are translated with it. Unknown tags become
// FormOther.
func ClassifyChunk(ctx context.Context, rt *Runtime, instruction, payload string, firstPage int) ([]PageClassification, error) {
	text, err := rt.Inference.Complete(ctx, inference.Request{
		Document:    payload,
		Instruction: instruction,
		Model:       rt.ClassifyModel,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	replies, err := formatting.ParseArray[pageReply](text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseResponse, err)
	}

	pages := make([]PageClassification, 0, len(replies))
	for _, r := range replies {
		page := firstPage + r.Page - 1
		ft, ok := ParseFormType(r.Type)
		if !ok {
			rt.Logger.WarnContext(ctx, "unknown form type", "type", r.Type, "page", page)
			ft = FormOther
		}
		pages = append(pages, PageClassification{PageNumber: page, FormType: ft})
	}

	return pages, nil
}

// AllOther tags every page of a pageCount document as FormOther.
func AllOther(pageCount int) []PageClassification {
	pages := make([]PageClassification, pageCount)
	for i := range pages {
		pages[i] = PageClassification{PageNumber: i + 1, FormType: FormOther}
	}
	return pages
}

// ClassifyDocument tags every page of doc. Short documents skip the model
// and come back as all FormOther. Longer ones are chunked and the chunks
// are classified concurrently; any chunk failure fails the whole document.
// The merged result is sorted by page number.
func ClassifyDocument(ctx context.Context, rt *Runtime, doc Document) ([]PageClassification, error) {
	count := doc.PageCount()
	if count <= rt.skipThreshold() {
		rt.Logger.InfoContext(ctx, "skipping classification", "pages", count, "threshold", rt.skipThreshold())
		return AllOther(count), nil
	}

	instruction, err := ComposePrompt(ctx, rt.Prompts, prompts.StageClassify)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassifyFailed, err)
	}

	ranges := Chunk(count, rt.chunkSize())
	results := make([][]PageClassification, len(ranges))

	rt.Logger.InfoContext(ctx, "classifying document",
		"pages", count,
		"chunks", len(ranges),
		"chunk_size", rt.chunkSize(),
	)

	g, gctx := errgroup.WithContext(ctx)
	if rt.MaxConcurrency > 0 {
		g.SetLimit(rt.MaxConcurrency)
	}

	for i, r := range ranges {
		g.Go(func() error {
			pages, err := classifyRange(gctx, rt, doc, instruction, r)
			if err != nil {
				return fmt.Errorf("pages %d-%d: %w", r.Start+1, r.End, err)
			}
			results[i] = pages
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassifyFailed, err)
	}

	merged := slices.Concat(results...)
	slices.SortStableFunc(merged, func(a, b PageClassification) int {
		return cmp.Compare(a.PageNumber, b.PageNumber)
	})

	rt.Logger.InfoContext(ctx, "document classified", "pages", count, "classified", len(merged))

	return merged, nil
}

func classifyRange(ctx context.Context, rt *Runtime, doc Document, instruction string, r PageRange) ([]PageClassification, error) {
	payload, err := EncodeChunk(doc, r)
	if err != nil {
		return nil, err
	}

	cctx := ctx
	if rt.ChunkTimeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, rt.ChunkTimeout)
		defer cancel()
	}

	pages, err := ClassifyChunk(cctx, rt, instruction, payload, r.Start+1)
	if err != nil && ctx.Err() == nil && errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s: %w", ErrClassificationTimeout, rt.ChunkTimeout, err)
	}
	return pages, err
}
