package testutil

import (
	"time"

	"xperiencia/models"
)

// CreateTestBet creates a bet with default values for a user
func CreateTestBet(userID int64, amount int64, result string) *models.Bet {
	return &models.Bet{
		UserID:      userID,
		Description: "aposta de teste",
		Amount:      amount,
		Result:      result,
		PlacedAt:    time.Now(),
	}
}

// CreateTestBetAt creates a bet placed at a specific time
func CreateTestBetAt(userID int64, amount int64, result string, placedAt time.Time) *models.Bet {
	bet := CreateTestBet(userID, amount, result)
	bet.PlacedAt = placedAt
	return bet
}

// CreateTestReflection creates a reflection with default values for a user
func CreateTestReflection(userID int64, sentiment string) *models.Reflection {
	return &models.Reflection{
		UserID:     userID,
		Sentiment:  sentiment,
		RecordedAt: time.Now(),
	}
}
