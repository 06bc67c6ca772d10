package service

import (
	"context"
	"fmt"
	"time"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/torcriss/CocoReddit-sub000/internal/identity"
	postDto "github.com/torcriss/CocoReddit-sub000/internal/modules/post/dto"
	postRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/post/repository"
	search "github.com/torcriss/CocoReddit-sub000/internal/modules/search/service"
	subredditRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/subreddit/repository"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	commonDto "github.com/torcriss/CocoReddit-sub000/pkg/dto"
	"github.com/torcriss/CocoReddit-sub000/pkg/ratelimiter"
	"github.com/torcriss/CocoReddit-sub000/pkg/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
)

type PostService interface {
	CreatePost(ctx context.Context, ident identity.Identity, req postDto.CreatePostRequest) (*entity.Post, error)
	GetPosts(ctx context.Context, filter commonDto.PostFilter) (*postDto.PaginatedPostResponse, error)
	GetPostByID(ctx context.Context, postID uuid.UUID) (*entity.Post, error)
	DeletePost(ctx context.Context, ident identity.Identity, postID uuid.UUID) error
	GetPostsByAuthor(ctx context.Context, ident identity.Identity) ([]entity.Post, error)
}

type postService struct {
	repo          postRepo.PostRepository
	subredditRepo subredditRepo.SubredditRepository
	search        search.SearchService
	fileStorage   storage.ImageStorage
	redisClient   *redis.Client
	sanitizer     *bluemonday.Policy
}

func NewPostService(repo postRepo.PostRepository, subredditRepo subredditRepo.SubredditRepository, searchSvc search.SearchService, fileStorage storage.ImageStorage, redisClient *redis.Client) PostService {
	return &postService{
		repo:          repo,
		subredditRepo: subredditRepo,
		search:        searchSvc,
		fileStorage:   fileStorage,
		redisClient:   redisClient,
		sanitizer:     bluemonday.UGCPolicy(),
	}
}

func (s *postService) CreatePost(ctx context.Context, ident identity.Identity, req postDto.CreatePostRequest) (*entity.Post, error) {
	// Global cooldown, then post-specific cooldown.
	globalLimit := ratelimiter.GetDurationFromEnv("RATE_LIMIT_GLOBAL", 5*time.Second)
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, ident.UserID, "global", globalLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redisClient, ident.UserID, "global")
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you are doing that too fast. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	postLimit := ratelimiter.GetDurationFromEnv("RATE_LIMIT_POST", 15*time.Second)
	allowed, err = ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, ident.UserID, "post", postLimit)
	if err != nil {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, ident.UserID, "global")
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, ident.UserID, "global")
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redisClient, ident.UserID, "post")
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you can only create one post every %.0f seconds. Please wait %.0f seconds", postLimit.Seconds(), ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	creationFailed := true
	defer func() {
		if creationFailed {
			_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, ident.UserID, "global")
			_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, ident.UserID, "post")
		}
	}()

	var subredditID *uuid.UUID
	if req.SubredditID != "" {
		sid, err := uuid.Parse(req.SubredditID)
		if err != nil {
			return nil, apperror.Validation("invalid subreddit id")
		}
		subreddit, err := s.subredditRepo.FindByID(ctx, sid)
		if err != nil {
			return nil, err
		}
		if subreddit == nil {
			return nil, apperror.NotFound("subreddit not found")
		}
		subredditID = &sid
	}

	post := &entity.Post{
		Title:          req.Title,
		ImageURL:       req.ImageURL,
		LinkURL:        req.LinkURL,
		AuthorUsername: ident.DisplayName(),
		SubredditID:    subredditID,
	}
	if req.Content != nil {
		sanitized := s.sanitizer.Sanitize(*req.Content)
		post.Content = &sanitized
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	creationFailed = false

	if s.search != nil {
		if err := s.search.IndexPost(post); err != nil {
			fmt.Printf("Failed to index post: %v\n", err)
		}
	}

	return post, nil
}

func (s *postService) GetPosts(ctx context.Context, filter commonDto.PostFilter) (*postDto.PaginatedPostResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 50 {
		filter.Limit = 20
	}

	offset := (filter.Page - 1) * filter.Limit
	posts, total, err := s.repo.FindAll(ctx, filter, offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	return &postDto.PaginatedPostResponse{
		Data: posts,
		Meta: commonDto.PaginationMeta{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       filter.Limit,
		},
	}, nil
}

func (s *postService) GetPostByID(ctx context.Context, postID uuid.UUID) (*entity.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NotFound("post not found")
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, ident identity.Identity, postID uuid.UUID) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperror.NotFound("post not found")
	}

	if !ident.Owns(post.AuthorUsername) {
		return apperror.Forbidden("you can only delete your own post")
	}

	// Hard delete; comments, votes and saved-post rows go with it via FK
	// cascade.
	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.ImageURL != nil && s.fileStorage != nil {
		_ = s.fileStorage.DeleteImage(ctx, *post.ImageURL)
	}

	if s.search != nil {
		_ = s.search.DeletePost(postID.String())
	}

	return nil
}

func (s *postService) GetPostsByAuthor(ctx context.Context, ident identity.Identity) ([]entity.Post, error) {
	return s.repo.FindByAuthors(ctx, ident.Aliases())
}
