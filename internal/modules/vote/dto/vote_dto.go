package dto

import (
	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/google/uuid"
)

type CastVoteRequest struct {
	PostID    string `json:"postId"`
	CommentID string `json:"commentId"`
	VoteType  int    `json:"voteType" binding:"required,oneof=-1 1"`
}

// VoteResponse reports the outcome of a cast. Votes is the fully-recomputed
// total for the target, so clients can always reconcile optimistic updates
// against it.
type VoteResponse struct {
	Removed   bool         `json:"removed"`
	Vote      *entity.Vote `json:"vote,omitempty"`
	PostID    *uuid.UUID   `json:"postId,omitempty"`
	CommentID *uuid.UUID   `json:"commentId,omitempty"`
	Votes     int          `json:"votes"`
}
