package dto

import (
	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	PostID   string `json:"postId" binding:"required"`
	ParentID string `json:"parentId"` // Optional, for nested replies
	Content  string `json:"content" binding:"required,max=10000"`
}

type EditCommentRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
}

// CommentResponse carries the comment plus the post's recomputed comment
// count after a mutation, so the client can reconcile optimistic state.
type CommentResponse struct {
	Comment      *entity.Comment `json:"comment"`
	CommentCount int             `json:"commentCount"`
}

// CommentNode is a comment with its nested replies, as produced by the tree
// builder.
type CommentNode struct {
	entity.Comment
	Replies []*CommentNode `json:"replies"`
}

type CommentThreadResponse struct {
	PostID       uuid.UUID      `json:"postId"`
	CommentCount int            `json:"commentCount"`
	Comments     []*CommentNode `json:"comments"`
}
