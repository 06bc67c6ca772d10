package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	Upvote   = 1
	Downvote = -1
)

// Vote records a single user's vote on exactly one target: a post or a
// comment. The partial unique indexes guarantee at most one active vote per
// (user, post) and per (user, comment) even under racing double-submits.
type Vote struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_post,priority:1,where:post_id IS NOT NULL;uniqueIndex:idx_votes_user_comment,priority:1,where:comment_id IS NOT NULL" json:"userId"`
	PostID    *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_votes_user_post,priority:2,where:post_id IS NOT NULL" json:"postId,omitempty"`
	CommentID *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_votes_user_comment,priority:2,where:comment_id IS NOT NULL" json:"commentId,omitempty"`
	VoteType  int        `gorm:"not null" json:"voteType"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	return
}
