package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username      string     `gorm:"size:255;not null;index" json:"username"`
	ActorUsername string     `gorm:"size:255;not null" json:"actorUsername"`
	PostID        uuid.UUID  `gorm:"type:uuid;not null" json:"postId"`
	CommentID     *uuid.UUID `gorm:"type:uuid" json:"commentId,omitempty"`
	Type          string     `gorm:"size:50;not null" json:"type"` // 'reply_post', 'reply_comment', 'vote'
	Message       string     `gorm:"type:text;not null" json:"message"`
	IsRead        bool       `gorm:"not null;default:false" json:"isRead"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
