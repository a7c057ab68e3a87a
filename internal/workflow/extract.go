package workflow

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/callil/tax-ui/internal/inference"
	"github.com/callil/tax-ui/internal/prompts"
	"github.com/callil/tax-ui/internal/taxes"
	"github.com/callil/tax-ui/pkg/formatting"
)

var skipped = map[FormType]bool{
	FormCoverLetter:   true,
	FormDirectDeposit: true,
	FormEfilingAuth:   true,
	FormK1Detail:      true,
	FormCryptoDetail:  true,
}

// RelevantPages lists the page numbers worth sending to extraction. When
// nothing survives the filter every page is returned.
func RelevantPages(pages []PageClassification) []int {
	keep := make([]int, 0, len(pages))
	for _, p := range pages {
		if !skipped[p.FormType] {
			keep = append(keep, p.PageNumber)
		}
	}

	if len(keep) == 0 {
		for _, p := range pages {
			keep = append(keep, p.PageNumber)
		}
	}
	return keep
}

// Extract reads the structured return out of the relevant pages of doc.
func Extract(ctx context.Context, rt *Runtime, doc PageSelector, pages []PageClassification) (taxes.TaxReturn, []int, error) {
	var empty taxes.TaxReturn

	relevant := RelevantPages(pages)
	data, err := doc.Select(relevant)
	if err != nil {
		return empty, nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	instruction, err := ComposePrompt(ctx, rt.Prompts, prompts.StageExtract)
	if err != nil {
		return empty, nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	rt.Logger.InfoContext(ctx, "extracting tax data",
		"pages", len(relevant),
		"size", formatting.FormatBytes(int64(len(data)), 1),
	)

	text, err := rt.Inference.Complete(ctx, inference.Request{
		Document:    base64.StdEncoding.EncodeToString(data),
		Instruction: instruction,
		Model:       rt.ExtractModel,
		MaxTokens:   rt.ExtractMaxTokens,
	})
	if err != nil {
		return empty, nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return empty, nil, fmt.Errorf("%w: %w", ErrExtractFailed, ErrEmptyResponse)
	}

	ret, err := formatting.ParseObject[taxes.TaxReturn](text)
	if err != nil {
		return empty, nil, fmt.Errorf("%w: %w: %w", ErrExtractFailed, ErrParseResponse, err)
	}
	if ret.Year <= 0 {
		return empty, nil, fmt.Errorf("%w: %w: missing tax year", ErrExtractFailed, ErrParseResponse)
	}

	ret.Normalize()
	return ret, relevant, nil
}
