package service

import (
	"context"
	"errors"
	"log"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/torcriss/CocoReddit-sub000/internal/identity"
	subredditDto "github.com/torcriss/CocoReddit-sub000/internal/modules/subreddit/dto"
	subredditRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/subreddit/repository"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubredditService interface {
	CreateSubreddit(ctx context.Context, ident identity.Identity, req subredditDto.CreateSubredditRequest) (*entity.Subreddit, error)
	GetAllSubreddits(ctx context.Context) ([]entity.Subreddit, error)
	GetSubredditByName(ctx context.Context, name string) (*entity.Subreddit, error)
	ToggleMembership(ctx context.Context, userID uuid.UUID, name string) (*subredditDto.MembershipResponse, error)
}

type subredditService struct {
	repo subredditRepo.SubredditRepository
}

func NewSubredditService(repo subredditRepo.SubredditRepository) SubredditService {
	return &subredditService{repo: repo}
}

func (s *subredditService) CreateSubreddit(ctx context.Context, ident identity.Identity, req subredditDto.CreateSubredditRequest) (*entity.Subreddit, error) {
	subreddit := &entity.Subreddit{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, subreddit); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("a subreddit with that name already exists")
		}
		return nil, err
	}

	// The creator joins their own subreddit.
	if _, members, err := s.repo.ToggleMembership(ctx, subreddit.ID, ident.UserID); err != nil {
		log.Printf("failed to join creator to subreddit %s: %v", subreddit.Name, err)
	} else {
		subreddit.Members = members
	}

	return subreddit, nil
}

func (s *subredditService) GetAllSubreddits(ctx context.Context) ([]entity.Subreddit, error) {
	return s.repo.FindAll(ctx)
}

func (s *subredditService) GetSubredditByName(ctx context.Context, name string) (*entity.Subreddit, error) {
	subreddit, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if subreddit == nil {
		return nil, apperror.NotFound("subreddit not found")
	}
	return subreddit, nil
}

func (s *subredditService) ToggleMembership(ctx context.Context, userID uuid.UUID, name string) (*subredditDto.MembershipResponse, error) {
	subreddit, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if subreddit == nil {
		return nil, apperror.NotFound("subreddit not found")
	}

	member, members, err := s.repo.ToggleMembership(ctx, subreddit.ID, userID)
	if err != nil {
		return nil, err
	}

	return &subredditDto.MembershipResponse{
		SubredditID: subreddit.ID,
		Member:      member,
		Members:     members,
	}, nil
}
