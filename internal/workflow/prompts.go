package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/callil/tax-ui/internal/prompts"
)

// ComposePrompt joins the tunable instructions and the fixed response spec
// for stage.
func ComposePrompt(ctx context.Context, src prompts.Source, stage prompts.Stage) (string, error) {
	instructions, err := src.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := src.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	return sb.String(), nil
}
