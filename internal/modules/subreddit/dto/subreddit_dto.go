package dto

import "github.com/google/uuid"

type CreateSubredditRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type MembershipResponse struct {
	SubredditID uuid.UUID `json:"subredditId"`
	Member      bool      `json:"member"`
	Members     int       `json:"members"`
}
