// Package report computes aggregate statistics over users, bets and
// reflections and assembles them into fixed report shapes. Every function is
// pure: callers hand in an already-loaded snapshot of the collections and get
// back a structured value, with no I/O and no retained state between calls.
package report

import (
	"xperiencia/models"
)

// Summarize computes count, sum, mean, minimum and maximum over a collection
// of bet values. An empty collection yields all zeros rather than an error so
// that reports render for users with no activity.
func Summarize(values []int64) models.ValueSummary {
	if len(values) == 0 {
		return models.ValueSummary{}
	}

	sum := values[0]
	min := values[0]
	max := values[0]
	for _, v := range values[1:] {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return models.ValueSummary{
		Count: len(values),
		Sum:   sum,
		Mean:  float64(sum) / float64(len(values)),
		Min:   min,
		Max:   max,
	}
}

func betValues(bets []*models.Bet) []int64 {
	values := make([]int64, len(bets))
	for i, b := range bets {
		values[i] = b.Amount
	}
	return values
}
