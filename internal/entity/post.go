package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a submission to a subreddit. Content, ImageURL and LinkURL are all
// optional and any combination of them may be set on the same post.
// Votes and CommentCount are denormalized aggregates; they are only ever
// written by recomputing from the underlying vote/comment rows.
type Post struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string     `gorm:"size:300;not null" json:"title"`
	Content        *string    `gorm:"type:text" json:"content,omitempty"`
	ImageURL       *string    `gorm:"type:text" json:"imageUrl,omitempty"`
	LinkURL        *string    `gorm:"type:text" json:"linkUrl,omitempty"`
	AuthorUsername string     `gorm:"size:255;not null;index" json:"authorUsername"`
	SubredditID    *uuid.UUID `gorm:"type:uuid;index" json:"subredditId,omitempty"`
	Subreddit      *Subreddit `gorm:"constraint:OnDelete:SET NULL" json:"subreddit,omitempty"`
	Votes          int        `gorm:"not null;default:0" json:"votes"`
	CommentCount   int        `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
