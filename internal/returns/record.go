package returns

import (
	"time"

	"github.com/callil/tax-ui/internal/taxes"
	"github.com/callil/tax-ui/internal/workflow"
)

// Record is one stored year: the extracted return plus how it was produced.
type Record struct {
	Year            int                           `json:"year"`
	Name            string                        `json:"name"`
	Return          taxes.TaxReturn               `json:"return"`
	Classifications []workflow.PageClassification `json:"classifications"`
	PageCount       int                           `json:"pageCount"`
	Filename        string                        `json:"filename"`
	StorageKey      string                        `json:"-"`
	HasSource       bool                          `json:"hasSource"`
	Model           string                        `json:"model"`
	ParsedAt        time.Time                     `json:"parsedAt"`
	UpdatedAt       time.Time                     `json:"updatedAt"`
}

// SaveCommand persists a pipeline result. Data is the uploaded PDF; it is
// archived when storage is available.
type SaveCommand struct {
	Filename string
	Data     []byte
	Result   *workflow.Result
}

// ParseCommand runs the full pipeline over an upload. APIKey overrides the
// configured key for this request only.
type ParseCommand struct {
	Filename string
	Data     []byte
	APIKey   string
}

// Classification is the reply of a classification-only run.
type Classification struct {
	PageCount       int                           `json:"pageCount"`
	Classifications []workflow.PageClassification `json:"classifications"`
}
