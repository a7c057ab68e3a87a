package returns

import (
	"context"
	"io"

	"github.com/callil/tax-ui/internal/taxes"
	"github.com/callil/tax-ui/internal/workflow"
)

// RuntimeFunc builds the pipeline runtime for one request. A non-empty
// apiKey replaces the configured key for that runtime only.
type RuntimeFunc func(apiKey string) (*workflow.Runtime, error)

// System manages stored tax returns and runs the parse pipeline.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// All returns every stored return keyed by year.
	All(ctx context.Context) (map[int]taxes.TaxReturn, error)
	Find(ctx context.Context, year int) (*Record, error)
	// Save upserts by year and drops the previously archived source.
	Save(ctx context.Context, cmd SaveCommand) (*Record, error)
	Delete(ctx context.Context, year int) error
	// Source opens the archived PDF for year. The caller closes the reader.
	Source(ctx context.Context, year int) (io.ReadCloser, *Record, error)

	Parse(ctx context.Context, cmd ParseCommand) (*Record, error)
	Classify(ctx context.Context, data []byte, apiKey string) (*Classification, error)
}
