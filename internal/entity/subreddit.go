package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subreddit struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Members     int       `gorm:"not null;default:0" json:"members"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (s *Subreddit) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

type SubredditMember struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubredditID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subreddit_members_pair,priority:1" json:"subredditId"`
	Subreddit   Subreddit `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subreddit_members_pair,priority:2" json:"userId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (m *SubredditMember) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}
