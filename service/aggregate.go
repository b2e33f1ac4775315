package service

import (
	"sort"
	"time"

	"github.com/mwaldrep/salesdesk/backend/model"
)

// Aggregations are recomputed from scratch on every call; nothing here
// caches or mutates its input.

// SumAmount returns the unweighted sum of deal amounts.
func SumAmount(opps []model.Opportunity) float64 {
	var total float64
	for _, o := range opps {
		total += o.Amount
	}
	return total
}

// PipelineValue is the probability-weighted sum over every deal that
// has not been closed lost. Lost deals stay in the collection for
// win-rate purposes but carry no pipeline value.
func PipelineValue(opps []model.Opportunity) float64 {
	var total float64
	for _, o := range opps {
		if o.Stage == model.StageClosedLost {
			continue
		}
		total += o.WeightedAmount()
	}
	return total
}

// WinRate is the percentage of closed deals that were won. Returns 0
// when no deals have closed yet.
func WinRate(opps []model.Opportunity) float64 {
	var won, closed int
	for _, o := range opps {
		switch o.Stage {
		case model.StageClosedWon:
			won++
			closed++
		case model.StageClosedLost:
			closed++
		}
	}
	if closed == 0 {
		return 0
	}
	return float64(won) / float64(closed) * 100
}

// OwnerSummary is the per-owner rollup shown on the sales dashboard.
type OwnerSummary struct {
	Owner          string  `json:"owner"`
	Count          int     `json:"count"`
	TotalAmount    float64 `json:"total_amount"`
	WeightedAmount float64 `json:"weighted_amount"`
	AvgProbability float64 `json:"avg_probability"`
	WinRate        float64 `json:"win_rate"`
}

// GroupByOwner rolls opportunities up per owner, sorted descending by
// weighted amount. Ties keep first-seen order.
func GroupByOwner(opps []model.Opportunity) []OwnerSummary {
	var order []string
	grouped := make(map[string][]model.Opportunity)
	for _, o := range opps {
		if _, seen := grouped[o.Owner]; !seen {
			order = append(order, o.Owner)
		}
		grouped[o.Owner] = append(grouped[o.Owner], o)
	}

	summaries := make([]OwnerSummary, 0, len(order))
	for _, owner := range order {
		deals := grouped[owner]
		s := OwnerSummary{
			Owner:   owner,
			Count:   len(deals),
			WinRate: WinRate(deals),
		}
		var probSum float64
		for _, o := range deals {
			s.TotalAmount += o.Amount
			probSum += o.Probability
		}
		s.WeightedAmount = PipelineValue(deals)
		if len(deals) > 0 {
			s.AvgProbability = probSum / float64(len(deals))
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].WeightedAmount > summaries[j].WeightedAmount
	})
	return summaries
}

// Period selects a calendar-aligned forecast window.
type Period string

// Valid forecast periods
const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ValidPeriod reports whether s names a known period.
func ValidPeriod(s string) bool {
	switch Period(s) {
	case PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// PeriodBounds returns the calendar-aligned [start, end) window that
// contains now.
func PeriodBounds(now time.Time, p Period) (time.Time, time.Time) {
	switch p {
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	case PeriodQuarter:
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		start := time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 3, 0)
	default:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0)
	}
}

// CloseForecast returns the deals expected to close inside the period
// containing now, excluding closed-lost ones. Order is preserved.
func CloseForecast(opps []model.Opportunity, p Period, now time.Time) []model.Opportunity {
	start, end := PeriodBounds(now, p)
	return FilterRecords(opps, func(o model.Opportunity) bool {
		return o.Stage != model.StageClosedLost &&
			!o.ExpectedCloseDate.Before(start) &&
			o.ExpectedCloseDate.Before(end)
	})
}

// ForecastTotals sums weighted amounts per forecast category over open
// deals.
func ForecastTotals(opps []model.Opportunity) map[model.ForecastCategory]float64 {
	totals := map[model.ForecastCategory]float64{
		model.ForecastCommit:   0,
		model.ForecastBestCase: 0,
		model.ForecastPipeline: 0,
	}
	for _, o := range opps {
		if o.Stage.Closed() {
			continue
		}
		totals[o.ForecastCategory()] += o.WeightedAmount()
	}
	return totals
}

// SalesMetrics is the full dashboard payload.
type SalesMetrics struct {
	TotalValue    float64                            `json:"total_value"`
	PipelineValue float64                            `json:"pipeline_value"`
	WinRate       float64                            `json:"win_rate"`
	OpenCount     int                                `json:"open_count"`
	WonCount      int                                `json:"won_count"`
	LostCount     int                                `json:"lost_count"`
	ByOwner       []OwnerSummary                     `json:"by_owner"`
	Forecast      map[model.ForecastCategory]float64 `json:"forecast"`
}

// ComputeSalesMetrics builds the dashboard rollup for one tenant's
// opportunities.
func ComputeSalesMetrics(opps []model.Opportunity) SalesMetrics {
	m := SalesMetrics{
		TotalValue:    SumAmount(opps),
		PipelineValue: PipelineValue(opps),
		WinRate:       WinRate(opps),
		ByOwner:       GroupByOwner(opps),
		Forecast:      ForecastTotals(opps),
	}
	for _, o := range opps {
		switch o.Stage {
		case model.StageClosedWon:
			m.WonCount++
		case model.StageClosedLost:
			m.LostCount++
		default:
			m.OpenCount++
		}
	}
	return m
}
