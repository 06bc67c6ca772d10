package service

import (
	"context"
	"fmt"
	"time"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/torcriss/CocoReddit-sub000/internal/identity"
	commentDto "github.com/torcriss/CocoReddit-sub000/internal/modules/comment/dto"
	commentRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/comment/repository"
	notifService "github.com/torcriss/CocoReddit-sub000/internal/modules/notification/service"
	postRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/post/repository"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/torcriss/CocoReddit-sub000/pkg/ratelimiter"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
)

type CommentService interface {
	CreateComment(ctx context.Context, ident identity.Identity, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error)
	EditComment(ctx context.Context, ident identity.Identity, commentID uuid.UUID, req commentDto.EditCommentRequest) (*entity.Comment, error)
	SoftDeleteComment(ctx context.Context, ident identity.Identity, commentID uuid.UUID) (*entity.Comment, error)
	GetCommentsForPost(ctx context.Context, postID uuid.UUID) (*commentDto.CommentThreadResponse, error)
	GetCommentsByAuthor(ctx context.Context, ident identity.Identity) ([]entity.Comment, error)
}

type commentService struct {
	repo                commentRepo.CommentRepository
	postRepo            postRepo.PostRepository
	notificationService notifService.NotificationService
	redisClient         *redis.Client
	sanitizer           *bluemonday.Policy
}

func NewCommentService(repo commentRepo.CommentRepository, postRepo postRepo.PostRepository, notificationService notifService.NotificationService, redisClient *redis.Client) CommentService {
	return &commentService{
		repo:                repo,
		postRepo:            postRepo,
		notificationService: notificationService,
		redisClient:         redisClient,
		sanitizer:           bluemonday.UGCPolicy(),
	}
}

func (s *commentService) CreateComment(ctx context.Context, ident identity.Identity, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	commentLimit := ratelimiter.GetDurationFromEnv("RATE_LIMIT_COMMENT", 5*time.Second)
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, ident.UserID, "comment", commentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redisClient, ident.UserID, "comment")
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you are commenting too fast. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	creationFailed := true
	defer func() {
		if creationFailed {
			_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, ident.UserID, "comment")
		}
	}()

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return nil, apperror.Validation("invalid post id")
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NotFound("post not found")
	}

	// Depth is cached from the parent's stored depth at creation time and
	// never recomputed afterwards.
	depth := 0
	var parentID *uuid.UUID
	var parent *entity.Comment
	if req.ParentID != "" {
		pid, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, apperror.Validation("invalid parent id")
		}
		parent, err = s.repo.FindByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NotFound("parent comment not found")
		}
		if parent.PostID != postID {
			return nil, apperror.Validation("parent comment belongs to a different post")
		}
		depth = parent.Depth + 1
		parentID = &pid
	}

	comment := &entity.Comment{
		PostID:         postID,
		ParentID:       parentID,
		Depth:          depth,
		Content:        s.sanitizer.Sanitize(req.Content),
		AuthorUsername: ident.DisplayName(),
	}

	count, err := s.repo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	creationFailed = false

	s.notifyReply(ident, post, parent, comment)

	return &commentDto.CommentResponse{
		Comment:      comment,
		CommentCount: count,
	}, nil
}

func (s *commentService) EditComment(ctx context.Context, ident identity.Identity, commentID uuid.UUID, req commentDto.EditCommentRequest) (*entity.Comment, error) {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperror.NotFound("comment not found")
	}

	if !ident.Owns(comment.AuthorUsername) {
		return nil, apperror.Forbidden("you can only edit your own comment")
	}
	if comment.Deleted() {
		return nil, apperror.Validation("cannot edit a deleted comment")
	}

	now := time.Now()
	comment.Content = s.sanitizer.Sanitize(req.Content)
	comment.UpdatedAt = &now

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) SoftDeleteComment(ctx context.Context, ident identity.Identity, commentID uuid.UUID) (*entity.Comment, error) {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperror.NotFound("comment not found")
	}

	if !ident.Owns(comment.AuthorUsername) {
		return nil, apperror.Forbidden("you can only delete your own comment")
	}
	if comment.Deleted() {
		return comment, nil
	}

	// Soft delete: the row and its children stay so the thread keeps its
	// shape; replies render under the placeholder. The comment count is
	// untouched for the same reason.
	now := time.Now()
	comment.Content = entity.DeletedContent
	comment.DeletedAt = &now

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) GetCommentsForPost(ctx context.Context, postID uuid.UUID) (*commentDto.CommentThreadResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NotFound("post not found")
	}

	flat, err := s.repo.FindAllByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &commentDto.CommentThreadResponse{
		PostID:       postID,
		CommentCount: post.CommentCount,
		Comments:     BuildTree(flat),
	}, nil
}

func (s *commentService) GetCommentsByAuthor(ctx context.Context, ident identity.Identity) ([]entity.Comment, error) {
	return s.repo.FindByAuthors(ctx, ident.Aliases())
}

func (s *commentService) notifyReply(ident identity.Identity, post *entity.Post, parent *entity.Comment, comment *entity.Comment) {
	if s.notificationService == nil {
		return
	}

	recipient := post.AuthorUsername
	notifType := "reply_post"
	message := fmt.Sprintf("Someone commented on your post '%s'", post.Title)
	if parent != nil {
		recipient = parent.AuthorUsername
		notifType = "reply_comment"
		message = "Someone replied to your comment"
	}

	// Avoid notifying the user themselves
	if recipient == "" || ident.Owns(recipient) {
		return
	}

	go func() {
		notification := &entity.Notification{
			Username:      recipient,
			ActorUsername: ident.DisplayName(),
			PostID:        post.ID,
			CommentID:     &comment.ID,
			Type:          notifType,
			Message:       message,
		}
		_ = s.notificationService.CreateNotification(context.Background(), notification)
	}()
}
