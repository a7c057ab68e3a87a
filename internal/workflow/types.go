package workflow

import (
	"slices"
	"time"

	"github.com/callil/tax-ui/internal/taxes"
)

// FormType tags one page with the tax form it belongs to.
type FormType string

const (
	Form1040Main         FormType = "1040_main"
	FormSchedule1        FormType = "schedule_1"
	FormSchedule2        FormType = "schedule_2"
	FormSchedule3        FormType = "schedule_3"
	FormScheduleA        FormType = "schedule_a"
	FormScheduleB        FormType = "schedule_b"
	FormScheduleC        FormType = "schedule_c"
	FormScheduleD        FormType = "schedule_d"
	FormScheduleE        FormType = "schedule_e"
	FormK1Summary        FormType = "k1_summary"
	FormK1Detail         FormType = "k1_detail"
	FormStateMain        FormType = "state_main"
	FormStateSchedule    FormType = "state_schedule"
	FormWorksheet        FormType = "worksheet"
	FormSupportingDoc    FormType = "supporting_doc"
	FormCoverLetter      FormType = "cover_letter"
	FormDirectDeposit    FormType = "direct_deposit"
	FormCarryoverSummary FormType = "carryover_summary"
	FormEfilingAuth      FormType = "efiling_auth"
	FormCryptoDetail     FormType = "crypto_detail"
	FormOther            FormType = "other"
)

var formTypes = []FormType{
	Form1040Main,
	FormSchedule1,
	FormSchedule2,
	FormSchedule3,
	FormScheduleA,
	FormScheduleB,
	FormScheduleC,
	FormScheduleD,
	FormScheduleE,
	FormK1Summary,
	FormK1Detail,
	FormStateMain,
	FormStateSchedule,
	FormWorksheet,
	FormSupportingDoc,
	FormCoverLetter,
	FormDirectDeposit,
	FormCarryoverSummary,
	FormEfilingAuth,
	FormCryptoDetail,
	FormOther,
}

func FormTypes() []FormType {
	return slices.Clone(formTypes)
}

// ParseFormType reports whether s is one of the known tags.
func ParseFormType(s string) (FormType, bool) {
	v := FormType(s)
	return v, slices.Contains(formTypes, v)
}

// PageRange is a half-open, 0-indexed span of pages: [Start, End).
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r PageRange) Len() int {
	return r.End - r.Start
}

// PageClassification tags one page. PageNumber is 1-indexed and absolute to
// the whole document.
type PageClassification struct {
	PageNumber int      `json:"pageNumber"`
	FormType   FormType `json:"formType"`
}

// Result is the output of a full parse: classification, then extraction.
type Result struct {
	Return          taxes.TaxReturn      `json:"return"`
	Classifications []PageClassification `json:"classifications"`
	PageCount       int                  `json:"pageCount"`
	ExtractedPages  []int                `json:"extractedPages"`
	Model           string               `json:"model"`
	CompletedAt     time.Time            `json:"completedAt"`
}
