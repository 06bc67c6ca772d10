package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeletedContent replaces a comment's body when it is soft-deleted. Clients
// match this exact string to render the deleted placeholder, so it must not
// change.
const DeletedContent = "[deleted]"

// Comment is a flat comment row. ParentID links replies into a tree; Depth is
// cached at creation time (parent.Depth+1, 0 for roots) and never recomputed.
// Soft deletion stamps DeletedAt and overwrites Content with DeletedContent;
// the row and its children stay in place so the thread shape survives.
type Comment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PostID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"postId"`
	Post           *Post      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ParentID       *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Depth          int        `gorm:"not null;default:0" json:"depth"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	AuthorUsername string     `gorm:"size:255;not null;index" json:"authorUsername"`
	Votes          int        `gorm:"not null;default:0" json:"votes"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	// Stamped only by an explicit edit; autoUpdateTime is off so GORM never
	// touches it on create or on the soft-delete save.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

// Deleted reports whether the comment has been soft-deleted.
func (c *Comment) Deleted() bool {
	return c.DeletedAt != nil
}
