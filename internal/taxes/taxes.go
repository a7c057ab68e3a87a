// Package taxes models an extracted tax return and derives the totals shown
// on the dashboard: total tax, net income, effective rate.
package taxes

// Item is a labeled dollar amount. Amounts are plain numbers in dollars.
type Item struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type Income struct {
	Total float64 `json:"total"`
	Items []Item  `json:"items"`
}

type Federal struct {
	AGI             float64 `json:"agi"`
	TaxableIncome   float64 `json:"taxableIncome"`
	Tax             float64 `json:"tax"`
	Deductions      []Item  `json:"deductions"`
	AdditionalTaxes []Item  `json:"additionalTaxes"`
	Credits         []Item  `json:"credits"`
	Payments        []Item  `json:"payments"`
	RefundOrOwed    float64 `json:"refundOrOwed"`
}

type State struct {
	Name          string  `json:"name"`
	AGI           float64 `json:"agi"`
	TaxableIncome float64 `json:"taxableIncome"`
	Tax           float64 `json:"tax"`
	Deductions    []Item  `json:"deductions"`
	Adjustments   []Item  `json:"adjustments"`
	Payments      []Item  `json:"payments"`
	RefundOrOwed  float64 `json:"refundOrOwed"`
}

// Rate values are percentages: 22 means 22%.
type Rate struct {
	Marginal  float64 `json:"marginal"`
	Effective float64 `json:"effective"`
}

type Rates struct {
	Federal  Rate  `json:"federal"`
	State    *Rate `json:"state,omitempty"`
	Combined *Rate `json:"combined,omitempty"`
}

type Dependent struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
}

// TaxReturn is one year's extracted return.
type TaxReturn struct {
	Year       int         `json:"year"`
	Name       string      `json:"name"`
	Filing     string      `json:"filingStatus,omitempty"`
	Dependents []Dependent `json:"dependents"`
	Income     Income      `json:"income"`
	Federal    Federal     `json:"federal"`
	States     []State     `json:"states"`
	Rates      *Rates      `json:"rates,omitempty"`
}

// Normalize replaces nil slices with empty ones so that records written by
// older versions serialize with every array present.
func (r *TaxReturn) Normalize() {
	r.Dependents = orEmpty(r.Dependents)
	r.Income.Items = orEmpty(r.Income.Items)
	r.Federal.Deductions = orEmpty(r.Federal.Deductions)
	r.Federal.AdditionalTaxes = orEmpty(r.Federal.AdditionalTaxes)
	r.Federal.Credits = orEmpty(r.Federal.Credits)
	r.Federal.Payments = orEmpty(r.Federal.Payments)
	r.States = orEmpty(r.States)
	for i := range r.States {
		s := &r.States[i]
		s.Deductions = orEmpty(s.Deductions)
		s.Adjustments = orEmpty(s.Adjustments)
		s.Payments = orEmpty(s.Payments)
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
