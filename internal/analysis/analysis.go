// Package analysis scores a normalized quote against a fixed set of
// value-investing criteria. The scoring is deterministic: the same record
// always yields the same report.
package analysis

import (
	"fmt"
	"time"

	"github.com/prasertk/stockd/internal/core"
)

const maxScore = 15

// Criterion statuses
const (
	StatusPass    = "pass"
	StatusPartial = "partial"
	StatusFail    = "fail"
)

// Recommendations by score band
const (
	RecStrongBuy = "STRONG_BUY"
	RecBuy       = "BUY"
	RecHold      = "HOLD"
	RecAvoid     = "AVOID"
)

// Criterion is one scored rule.
type Criterion struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Value  string `json:"value"`
	Points int    `json:"points"`
}

// Report is the full scoring result for one symbol.
type Report struct {
	Symbol         string      `json:"symbol"`
	TotalScore     int         `json:"total_score"`
	MaxScore       int         `json:"max_score"`
	Recommendation string      `json:"recommendation"`
	Criteria       []Criterion `json:"criteria"`
	AnalysisDate   string      `json:"analysis_date"`
}

// Score evaluates the eight criteria against a quote.
func Score(q core.Quote) Report {
	r := Report{
		Symbol:       q.Symbol,
		MaxScore:     maxScore,
		AnalysisDate: time.Now().UTC().Format(time.RFC3339),
	}

	r.add(band2("ROE > 15%", percent(q.ROE), q.ROE > 0.15, q.ROE > 0.10))
	r.add(band2("Low Debt/Equity", ratio(q.DebtToEquity),
		q.DebtToEquity > 0 && q.DebtToEquity < 0.3,
		q.DebtToEquity > 0 && q.DebtToEquity < 0.5))
	r.add(band2("Profit Margin > 15%", percent(q.ProfitMargin), q.ProfitMargin > 0.15, q.ProfitMargin > 0.10))
	r.add(band2("Operating Margin > 15%", percent(q.OperatingMargin), q.OperatingMargin > 0.15, q.OperatingMargin > 0.10))
	r.add(band2("Current Ratio > 1.5", ratio(q.CurrentRatio), q.CurrentRatio > 1.5, q.CurrentRatio > 1.0))
	r.add(band2("Reasonable P/E", fmt.Sprintf("%.1f", q.PERatio),
		q.PERatio > 0 && q.PERatio < 15,
		q.PERatio > 0 && q.PERatio < 25))
	r.add(band2("Dividend Yield > 2%", percent(q.DividendYield), q.DividendYield > 0.02, q.DividendYield > 0))

	// EPS is a single-point criterion.
	eps := Criterion{Name: "Positive EPS", Value: fmt.Sprintf("%.2f", q.EPS), Status: StatusFail}
	if q.EPS > 0 {
		eps.Status = StatusPass
		eps.Points = 1
	}
	r.add(eps)

	switch {
	case r.TotalScore >= 12:
		r.Recommendation = RecStrongBuy
	case r.TotalScore >= 8:
		r.Recommendation = RecBuy
	case r.TotalScore >= 5:
		r.Recommendation = RecHold
	default:
		r.Recommendation = RecAvoid
	}

	return r
}

func (r *Report) add(c Criterion) {
	r.Criteria = append(r.Criteria, c)
	r.TotalScore += c.Points
}

// band2 scores a two-point criterion: full points on pass, one on partial.
func band2(name, value string, pass, partial bool) Criterion {
	c := Criterion{Name: name, Value: value, Status: StatusFail}
	switch {
	case pass:
		c.Status = StatusPass
		c.Points = 2
	case partial:
		c.Status = StatusPartial
		c.Points = 1
	}
	return c
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func ratio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
