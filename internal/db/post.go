package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a single published content item. Tags and Sources are stored as
// JSON text so the per-post ordering survives the round trip.
type Post struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Excerpt       string    `gorm:"not null" json:"excerpt"`
	Content       string    `gorm:"not null" json:"content"`
	Category      string    `gorm:"index;not null" json:"category"`
	Tags          []string  `gorm:"serializer:json" json:"tags"`
	FeaturedImage string    `json:"featured_image"`
	Sources       []string  `gorm:"serializer:json" json:"sources"`
	IsFeatured    bool      `gorm:"index" json:"is_featured"`
	ReadingTime   int       `json:"reading_time"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate assigns the post id. Once assigned it never changes.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
