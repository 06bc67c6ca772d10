package service

import (
	"context"
	"errors"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	postRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/post/repository"
	savedDto "github.com/torcriss/CocoReddit-sub000/internal/modules/saved/dto"
	savedRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/saved/repository"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SavedPostService interface {
	ToggleSave(ctx context.Context, userID, postID uuid.UUID) (*savedDto.SaveToggleResponse, error)
	ListSaved(ctx context.Context, userID uuid.UUID) (*savedDto.SavedListResponse, error)
	// IsSaved answers false, never an error, for anonymous viewers.
	IsSaved(ctx context.Context, userID *uuid.UUID, postID uuid.UUID) (bool, error)
}

type savedPostService struct {
	repo     savedRepo.SavedPostRepository
	postRepo postRepo.PostRepository
}

func NewSavedPostService(repo savedRepo.SavedPostRepository, postRepo postRepo.PostRepository) SavedPostService {
	return &savedPostService{
		repo:     repo,
		postRepo: postRepo,
	}
}

func (s *savedPostService) ToggleSave(ctx context.Context, userID, postID uuid.UUID) (*savedDto.SaveToggleResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NotFound("post not found")
	}

	existing, err := s.repo.Find(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &savedDto.SaveToggleResponse{PostID: postID, Saved: false}, nil
	}

	err = s.repo.Insert(ctx, &entity.SavedPost{UserID: userID, PostID: postID})
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	return &savedDto.SaveToggleResponse{PostID: postID, Saved: true}, nil
}

func (s *savedPostService) ListSaved(ctx context.Context, userID uuid.UUID) (*savedDto.SavedListResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts := make([]entity.Post, 0, len(rows))
	for _, row := range rows {
		if row.Post != nil {
			posts = append(posts, *row.Post)
		}
	}

	return &savedDto.SavedListResponse{Data: posts}, nil
}

func (s *savedPostService) IsSaved(ctx context.Context, userID *uuid.UUID, postID uuid.UUID) (bool, error) {
	if userID == nil {
		return false, nil
	}
	return s.repo.Exists(ctx, *userID, postID)
}
