// Package ledger aggregates record values into per-place and global
// statistics. All computation is a single pass over records already fetched
// into memory; nothing here touches storage.
package ledger

import "placetrack/internal/models"

// PlaceStats holds the aggregated totals for one place.
type PlaceStats struct {
	RecordCount       int     `json:"recordCount"`
	TotalMoneyGiven   float64 `json:"totalMoneyGiven"`
	TotalMoneyUsed    float64 `json:"totalMoneyUsed"`
	TotalPowerUnits   float64 `json:"totalPowerUnits"`
	Balance           float64 `json:"balance"`
	ProfitLossPercent float64 `json:"profitLossPercent"`
}

// Summary is the global aggregate across all of a user's places.
type Summary struct {
	PlaceCount        int     `json:"placeCount"`
	RecordCount       int     `json:"recordCount"`
	TotalMoneyGiven   float64 `json:"totalMoneyGiven"`
	TotalMoneyUsed    float64 `json:"totalMoneyUsed"`
	TotalPowerUnits   float64 `json:"totalPowerUnits"`
	Balance           float64 `json:"balance"`
	ProfitLossPercent float64 `json:"profitLossPercent"`
}

func (s *PlaceStats) add(r models.Record) {
	s.RecordCount++
	s.TotalMoneyGiven += r.MoneyGiven
	s.TotalMoneyUsed += r.MoneyUsed
	s.TotalPowerUnits += r.PowerUnits
}

func (s *PlaceStats) finalize() {
	s.Balance = s.TotalMoneyGiven - s.TotalMoneyUsed
	s.ProfitLossPercent = profitLossPercent(s.TotalMoneyGiven, s.Balance)
}

// profitLossPercent is the balance as a percentage of money given.
// Zero when nothing was given, so an empty place reads as break-even.
func profitLossPercent(given, balance float64) float64 {
	if given == 0 {
		return 0
	}
	return balance / given * 100
}

// Compute aggregates a single place's records.
func Compute(records []models.Record) PlaceStats {
	var s PlaceStats
	for _, r := range records {
		s.add(r)
	}
	s.finalize()
	return s
}

// ComputeByPlace groups records by place and aggregates each group.
// Places with no records are absent from the result; callers treat a missing
// entry as the zero value.
func ComputeByPlace(records []models.Record) map[string]PlaceStats {
	byPlace := make(map[string]PlaceStats)
	for _, r := range records {
		s := byPlace[r.PlaceID]
		s.add(r)
		byPlace[r.PlaceID] = s
	}
	for id, s := range byPlace {
		s.finalize()
		byPlace[id] = s
	}
	return byPlace
}

// Summarize folds all records into a global summary for placeCount places.
func Summarize(placeCount int, records []models.Record) Summary {
	var s PlaceStats
	for _, r := range records {
		s.add(r)
	}
	s.finalize()
	return Summary{
		PlaceCount:        placeCount,
		RecordCount:       s.RecordCount,
		TotalMoneyGiven:   s.TotalMoneyGiven,
		TotalMoneyUsed:    s.TotalMoneyUsed,
		TotalPowerUnits:   s.TotalPowerUnits,
		Balance:           s.Balance,
		ProfitLossPercent: s.ProfitLossPercent,
	}
}
