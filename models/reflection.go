package models

import "time"

// Reflection represents a free-text personal note written by a user
type Reflection struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"userId"`
	Sentiment  string    `db:"sentiment" json:"sentiment"`
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}
