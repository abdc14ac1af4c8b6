package db

import "time"

// Subscriber is one newsletter signup. Email is stored normalized
// (trimmed, lowercased); the unique index keeps concurrent signups for
// the same address from ever producing a duplicate row.
type Subscriber struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
