package report

import (
	"sort"
	"strings"

	"xperiencia/models"
)

// betsByResult partitions bets by their result label, compared
// case-insensitively. The displayed label and the group order follow the
// first appearance of each label in the input. Labels are only case-folded;
// surrounding whitespace is deliberately not trimmed, so " Vitória" and
// "Vitória" are distinct groups.
func betsByResult(bets []*models.Bet) []models.ResultBreakdown {
	groups := []models.ResultBreakdown{}
	index := make(map[string]int)

	for _, b := range bets {
		key := strings.ToLower(b.Result)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.ResultBreakdown{Result: b.Result})
		}
		groups[i].Count++
		groups[i].TotalValue += b.Amount
	}

	return groups
}

// reflectionsBySentiment counts reflections per case-folded sentiment label,
// ordered by count descending. Ties keep first-appearance order.
func reflectionsBySentiment(reflections []*models.Reflection) []models.SentimentBreakdown {
	groups := []models.SentimentBreakdown{}
	index := make(map[string]int)

	for _, r := range reflections {
		key := strings.ToLower(r.Sentiment)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.SentimentBreakdown{Sentiment: r.Sentiment})
		}
		groups[i].Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	return groups
}

// betsByMonth buckets bets by the (year, month) of their timestamp, ordered
// by year then month descending. Only months present in the data appear; no
// zero-filling. The full history is returned, never truncated.
func betsByMonth(bets []*models.Bet) []models.MonthlyBreakdown {
	type monthKey struct {
		year  int
		month int
	}

	buckets := []models.MonthlyBreakdown{}
	index := make(map[monthKey]int)

	for _, b := range bets {
		key := monthKey{year: b.PlacedAt.Year(), month: int(b.PlacedAt.Month())}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, models.MonthlyBreakdown{Year: key.year, Month: key.month})
		}
		buckets[i].Count++
		buckets[i].TotalValue += b.Amount
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year > buckets[j].Year
		}
		return buckets[i].Month > buckets[j].Month
	})

	return buckets
}
