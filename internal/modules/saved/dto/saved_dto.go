package dto

import (
	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/google/uuid"
)

type SaveToggleResponse struct {
	PostID uuid.UUID `json:"postId"`
	Saved  bool      `json:"saved"`
}

type SavedStatusResponse struct {
	PostID uuid.UUID `json:"postId"`
	Saved  bool      `json:"saved"`
}

type SavedListResponse struct {
	Data []entity.Post `json:"data"`
}
