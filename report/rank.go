package report

import (
	"sort"

	"xperiencia/models"
)

// Every ranking in the fixed report shapes truncates to five entries.
const topLimit = 5

// recentBets returns up to limit bets ordered by timestamp descending.
// Equal timestamps keep input order.
func recentBets(bets []*models.Bet, limit int) []models.BetEntry {
	ordered := make([]*models.Bet, len(bets))
	copy(ordered, bets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PlacedAt.After(ordered[j].PlacedAt)
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	entries := make([]models.BetEntry, len(ordered))
	for i, b := range ordered {
		entries[i] = models.BetEntry{
			ID:          b.ID,
			Description: b.Description,
			Value:       b.Amount,
			Result:      b.Result,
			PlacedAt:    b.PlacedAt,
		}
	}
	return entries
}

// recentReflections returns up to limit reflections ordered by timestamp descending
func recentReflections(reflections []*models.Reflection, limit int) []models.ReflectionEntry {
	ordered := make([]*models.Reflection, len(reflections))
	copy(ordered, reflections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RecordedAt.After(ordered[j].RecordedAt)
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	entries := make([]models.ReflectionEntry, len(ordered))
	for i, r := range ordered {
		entries[i] = models.ReflectionEntry{
			ID:         r.ID,
			Sentiment:  r.Sentiment,
			RecordedAt: r.RecordedAt,
		}
	}
	return entries
}

// topUsersByBetCount ranks all users by how many bets they placed, descending,
// annotated with their bet count and value sum, truncated to limit. Users with
// no bets are still eligible. Ties keep input order.
func topUsersByBetCount(users []*models.User, bets []*models.Bet, limit int) []models.UserActivity {
	activity := make([]models.UserActivity, len(users))
	index := make(map[int64]int, len(users))
	for i, u := range users {
		activity[i] = models.UserActivity{UserID: u.ID, Name: u.Name}
		index[u.ID] = i
	}

	for _, b := range bets {
		if i, ok := index[b.UserID]; ok {
			activity[i].TotalBets++
			activity[i].TotalValue += b.Amount
		}
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].TotalBets > activity[j].TotalBets
	})

	if len(activity) > limit {
		activity = activity[:limit]
	}
	return activity
}
