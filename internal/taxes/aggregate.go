package taxes

import (
	"math"
	"slices"
)

// Hours in a 40-hour, 52-week working year.
const workHoursPerYear = 2080

// TotalTax is federal tax plus federal additional taxes plus every state's tax.
func TotalTax(r TaxReturn) float64 {
	total := r.Federal.Tax + sum(r.Federal.AdditionalTaxes)
	for _, s := range r.States {
		total += s.Tax
	}
	return total
}

func NetIncome(r TaxReturn) float64 {
	return r.Income.Total - TotalTax(r)
}

// EffectiveRate returns the combined effective rate as a fraction. An
// extracted non-zero combined rate wins; otherwise the rate is
// TotalTax / Income.Total.
func EffectiveRate(r TaxReturn) (float64, error) {
	if r.Rates != nil && r.Rates.Combined != nil && r.Rates.Combined.Effective != 0 {
		return r.Rates.Combined.Effective / 100, nil
	}
	if r.Income.Total == 0 {
		return 0, ErrUndefinedRate
	}
	return TotalTax(r) / r.Income.Total, nil
}

// YearSummary holds the derived figures for one return. EffectiveRate is nil
// when it is undefined.
type YearSummary struct {
	Year          int      `json:"year"`
	Income        float64  `json:"income"`
	TotalTax      float64  `json:"totalTax"`
	NetIncome     float64  `json:"netIncome"`
	EffectiveRate *float64 `json:"effectiveRate"`
	DailyTake     float64  `json:"dailyTake"`
	HourlyTake    float64  `json:"hourlyTake"`
}

func SummarizeYear(r TaxReturn) YearSummary {
	net := NetIncome(r)
	s := YearSummary{
		Year:       r.Year,
		Income:     r.Income.Total,
		TotalTax:   TotalTax(r),
		NetIncome:  net,
		DailyTake:  math.Round(net / 365),
		HourlyTake: net / workHoursPerYear,
	}
	if rate, err := EffectiveRate(r); err == nil {
		s.EffectiveRate = &rate
	}
	return s
}

// Summary aggregates every loaded year.
type Summary struct {
	Years            []YearSummary `json:"years"`
	TotalIncome      float64       `json:"totalIncome"`
	TotalTax         float64       `json:"totalTax"`
	TotalNet         float64       `json:"totalNet"`
	AvgEffectiveRate *float64      `json:"avgEffectiveRate"`
	AvgHourlyTake    float64       `json:"avgHourlyTake"`
}

// Summarize reduces returns by summation. Years are reported ascending and
// the average rate covers only years where the rate is defined.
func Summarize(returns map[int]TaxReturn) Summary {
	years := make([]int, 0, len(returns))
	for y := range returns {
		years = append(years, y)
	}
	slices.Sort(years)

	s := Summary{Years: make([]YearSummary, 0, len(years))}
	var rateSum, hourlySum float64
	var rated int

	for _, y := range years {
		ys := SummarizeYear(returns[y])
		s.Years = append(s.Years, ys)
		s.TotalIncome += ys.Income
		s.TotalTax += ys.TotalTax
		s.TotalNet += ys.NetIncome
		hourlySum += ys.HourlyTake
		if ys.EffectiveRate != nil {
			rateSum += *ys.EffectiveRate
			rated++
		}
	}

	if rated > 0 {
		avg := rateSum / float64(rated)
		s.AvgEffectiveRate = &avg
	}
	if len(years) > 0 {
		s.AvgHourlyTake = hourlySum / float64(len(years))
	}

	return s
}

func sum(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Amount
	}
	return total
}
