package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedPost is a per-user bookmark. Presence of the row means "saved"; there
// is no separate unsaved state.
type SavedPost struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_posts_pair,priority:1" json:"userId"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_posts_pair,priority:2" json:"postId"`
	Post      *Post     `gorm:"constraint:OnDelete:CASCADE" json:"post,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (s *SavedPost) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
