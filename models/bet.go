package models

import "time"

// Bet represents a fictitious wager recorded by a user.
// Amount is stored in cents; two fractional digits are applied at display time.
type Bet struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	Description string    `db:"description" json:"description"`
	Amount      int64     `db:"amount" json:"amount"`
	Result      string    `db:"result" json:"result"`
	PlacedAt    time.Time `db:"placed_at" json:"placedAt"`
}

// Common result labels. The field is free text; these are the values the
// original data set uses, compared case-insensitively.
const (
	ResultWin  = "Vitória"
	ResultLoss = "Derrota"
	ResultDraw = "Empate"
)
