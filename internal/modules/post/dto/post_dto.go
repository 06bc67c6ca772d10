package dto

import (
	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	commonDto "github.com/torcriss/CocoReddit-sub000/pkg/dto"
)

type CreatePostRequest struct {
	Title       string  `json:"title" binding:"required,max=300"`
	Content     *string `json:"content" binding:"omitempty,max=40000"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
	LinkURL     *string `json:"linkUrl" binding:"omitempty,url"`
	SubredditID string  `json:"subredditId"`
}

type PaginatedPostResponse struct {
	Data []entity.Post            `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
