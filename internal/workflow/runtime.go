package workflow

import (
	"log/slog"
	"time"

	"github.com/callil/tax-ui/internal/inference"
	"github.com/callil/tax-ui/internal/prompts"
)

const (
	DefaultChunkSize     = 15
	DefaultSkipThreshold = 20
)

// Runtime bundles what the pipeline needs for one run. A request-scoped
// API key is expressed by swapping Inference, never by mutating shared state.
type Runtime struct {
	Inference inference.Client
	Prompts   prompts.Source
	Logger    *slog.Logger

	ClassifyModel    string
	ExtractModel     string
	ExtractMaxTokens int

	// ChunkSize is pages per classification call.
	ChunkSize int
	// Documents with at most SkipThreshold pages are not classified. Zero
	// means DefaultSkipThreshold; a negative value classifies every document.
	SkipThreshold int
	// ChunkTimeout bounds each classification call; zero disables it.
	ChunkTimeout time.Duration
	// MaxConcurrency caps in-flight chunk calls; zero means one per chunk.
	MaxConcurrency int
}

func (rt *Runtime) chunkSize() int {
	if rt.ChunkSize > 0 {
		return rt.ChunkSize
	}
	return DefaultChunkSize
}

func (rt *Runtime) skipThreshold() int {
	switch {
	case rt.SkipThreshold < 0:
		return 0
	case rt.SkipThreshold == 0:
		return DefaultSkipThreshold
	}
	return rt.SkipThreshold
}
