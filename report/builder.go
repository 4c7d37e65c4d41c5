package report

import (
	"sort"
	"time"

	"xperiencia/models"
)

// BuildUserReport assembles the per-user report from a user and their
// associated bets and reflections. A nil user yields models.ErrUserNotFound
// and no partial report.
func BuildUserReport(user *models.User, bets []*models.Bet, reflections []*models.Reflection) (*models.UserReport, error) {
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	summary := Summarize(betValues(bets))

	return &models.UserReport{
		User: models.UserIdentity{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Points:    user.Points,
			CreatedAt: user.CreatedAt,
		},
		BetStats: models.UserBetStats{
			TotalBets:    summary.Count,
			TotalValue:   summary.Sum,
			AverageValue: summary.Mean,
			BiggestBet:   summary.Max,
			SmallestBet:  summary.Min,
			ByResult:     betsByResult(bets),
		},
		ReflectionStats: models.UserReflectionStats{
			TotalReflections: len(reflections),
			BySentiment:      reflectionsBySentiment(reflections),
		},
		RecentBets:        recentBets(bets, topLimit),
		RecentReflections: recentReflections(reflections, topLimit),
	}, nil
}

// BuildSystemReport assembles the system-wide report from full collections of
// users, bets and reflections.
func BuildSystemReport(users []*models.User, bets []*models.Bet, reflections []*models.Reflection) *models.SystemReport {
	summary := Summarize(betValues(bets))

	return &models.SystemReport{
		Totals: models.SystemTotals{
			TotalUsers:       len(users),
			TotalBets:        len(bets),
			TotalReflections: len(reflections),
			TotalValue:       summary.Sum,
			AverageValue:     summary.Mean,
		},
		TopUsers:    topUsersByBetCount(users, bets, topLimit),
		BetsByMonth: betsByMonth(bets),
	}
}

// BuildPeriodReport assembles the date-range report: all bets whose timestamp
// falls within [start, end] (inclusive both ends), annotated with the owning
// user's display name, ordered by timestamp descending, plus interval-scoped
// statistics. A start after end is not rejected; it simply yields an empty
// report.
func BuildPeriodReport(bets []*models.Bet, users []*models.User, start, end time.Time) *models.PeriodReport {
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	var inRange []*models.Bet
	for _, b := range bets {
		if b.PlacedAt.Before(start) || b.PlacedAt.After(end) {
			continue
		}
		inRange = append(inRange, b)
	}

	sort.SliceStable(inRange, func(i, j int) bool {
		return inRange[i].PlacedAt.After(inRange[j].PlacedAt)
	})

	entries := make([]models.PeriodBetEntry, len(inRange))
	for i, b := range inRange {
		entries[i] = models.PeriodBetEntry{
			ID:          b.ID,
			Description: b.Description,
			Value:       b.Amount,
			Result:      b.Result,
			PlacedAt:    b.PlacedAt,
			UserName:    names[b.UserID],
		}
	}

	return &models.PeriodReport{
		Start: start,
		End:   end,
		Stats: Summarize(betValues(inRange)),
		Bets:  entries,
	}
}
