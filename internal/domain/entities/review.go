package entities

import "time"

// Review is free-text feedback left by a user. Reviews are append-only and
// are never edited or deleted.
type Review struct {
	ID        string    `json:"id" db:"id"`
	UserName  string    `json:"user_name" db:"user_name"`
	Rating    int       `json:"rating" db:"rating"` // 1-5
	Text      string    `json:"text" db:"text"`
	Location  string    `json:"location,omitempty" db:"location"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
