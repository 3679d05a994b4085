package analytics

import "github.com/shopspring/decimal"

// Rounding goes through decimal so half-way cases land deterministically
// (half up, away from zero) instead of drifting on binary float artifacts.

func roundPlaces(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func round1(v float64) float64 { return roundPlaces(v, 1) }
func round2(v float64) float64 { return roundPlaces(v, 2) }
func round3(v float64) float64 { return roundPlaces(v, 3) }

// pct renders count as a percentage of total, 0 when the total is empty.
func pct(count, total int, places int32) float64 {
	if total <= 0 {
		return 0
	}
	return roundPlaces(float64(count)/float64(total)*100, places)
}

// score is the sentiment score (positive − negative) / total on [-1, 1],
// 0 when the total is empty.
func score(positive, negative, total int, places int32) float64 {
	if total <= 0 {
		return 0
	}
	return roundPlaces(float64(positive-negative)/float64(total), places)
}
