package models

import "time"

// ValueSummary represents aggregated numeric statistics over bet values.
// A summary of an empty collection is all zeros; reports must render even
// for users with no activity.
type ValueSummary struct {
	Count int     `json:"count"`
	Sum   int64   `json:"sum"`
	Mean  float64 `json:"mean"`
	Min   int64   `json:"min"`
	Max   int64   `json:"max"`
}

// ResultBreakdown is one per-result-label group of bets
type ResultBreakdown struct {
	Result     string `json:"result"`
	Count      int    `json:"count"`
	TotalValue int64  `json:"totalValue"`
}

// SentimentBreakdown is one per-sentiment group of reflections
type SentimentBreakdown struct {
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
}

// MonthlyBreakdown is one (year, month) bucket of bets
type MonthlyBreakdown struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	Count      int   `json:"count"`
	TotalValue int64 `json:"totalValue"`
}

// UserIdentity is the identity block of a per-user report
type UserIdentity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Points    int64     `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserBetStats contains a user's aggregated betting statistics
type UserBetStats struct {
	TotalBets    int               `json:"totalBets"`
	TotalValue   int64             `json:"totalValue"`
	AverageValue float64           `json:"averageValue"`
	BiggestBet   int64             `json:"biggestBet"`
	SmallestBet  int64             `json:"smallestBet"`
	ByResult     []ResultBreakdown `json:"byResult"`
}

// UserReflectionStats contains a user's aggregated reflection statistics
type UserReflectionStats struct {
	TotalReflections int                  `json:"totalReflections"`
	BySentiment      []SentimentBreakdown `json:"bySentiment"`
}

// BetEntry is a single bet as listed in a report
type BetEntry struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Value       int64     `json:"value"`
	Result      string    `json:"result"`
	PlacedAt    time.Time `json:"placedAt"`
}

// ReflectionEntry is a single reflection as listed in a report
type ReflectionEntry struct {
	ID         int64     `json:"id"`
	Sentiment  string    `json:"sentiment"`
	RecordedAt time.Time `json:"recordedAt"`
}

// UserReport is the full per-user report
type UserReport struct {
	User              UserIdentity        `json:"user"`
	BetStats          UserBetStats        `json:"betStats"`
	ReflectionStats   UserReflectionStats `json:"reflectionStats"`
	RecentBets        []BetEntry          `json:"recentBets"`
	RecentReflections []ReflectionEntry   `json:"recentReflections"`
}

// SystemTotals is the summary block of the system-wide report
type SystemTotals struct {
	TotalUsers       int     `json:"totalUsers"`
	TotalBets        int     `json:"totalBets"`
	TotalReflections int     `json:"totalReflections"`
	TotalValue       int64   `json:"totalValue"`
	AverageValue     float64 `json:"averageValue"`
}

// UserActivity is one entry of the top-users ranking
type UserActivity struct {
	UserID     int64  `json:"userId"`
	Name       string `json:"name"`
	TotalBets  int    `json:"totalBets"`
	TotalValue int64  `json:"totalValue"`
}

// SystemReport is the system-wide report
type SystemReport struct {
	Totals      SystemTotals       `json:"totals"`
	TopUsers    []UserActivity     `json:"topUsers"`
	BetsByMonth []MonthlyBreakdown `json:"betsByMonth"`
}

// PeriodBetEntry is a bet listed in a period report, annotated with its owner's name
type PeriodBetEntry struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Value       int64     `json:"value"`
	Result      string    `json:"result"`
	PlacedAt    time.Time `json:"placedAt"`
	UserName    string    `json:"userName"`
}

// PeriodReport is the date-range filtered system report
type PeriodReport struct {
	Start time.Time        `json:"start"`
	End   time.Time        `json:"end"`
	Stats ValueSummary     `json:"stats"`
	Bets  []PeriodBetEntry `json:"bets"`
}
