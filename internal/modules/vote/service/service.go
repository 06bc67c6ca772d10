package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/torcriss/CocoReddit-sub000/internal/identity"
	commentRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/comment/repository"
	notifService "github.com/torcriss/CocoReddit-sub000/internal/modules/notification/service"
	postRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/post/repository"
	voteDto "github.com/torcriss/CocoReddit-sub000/internal/modules/vote/dto"
	voteRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/vote/repository"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoteService interface {
	CastVote(ctx context.Context, ident identity.Identity, req voteDto.CastVoteRequest) (*voteDto.VoteResponse, error)
}

type voteService struct {
	repo                voteRepo.VoteRepository
	postRepo            postRepo.PostRepository
	commentRepo         commentRepo.CommentRepository
	notificationService notifService.NotificationService
}

func NewVoteService(repo voteRepo.VoteRepository, postRepo postRepo.PostRepository, commentRepo commentRepo.CommentRepository, notificationService notifService.NotificationService) VoteService {
	return &voteService{
		repo:                repo,
		postRepo:            postRepo,
		commentRepo:         commentRepo,
		notificationService: notificationService,
	}
}

func (s *voteService) CastVote(ctx context.Context, ident identity.Identity, req voteDto.CastVoteRequest) (*voteDto.VoteResponse, error) {
	if req.VoteType != entity.Upvote && req.VoteType != entity.Downvote {
		return nil, apperror.Validation("voteType must be 1 or -1")
	}
	if (req.PostID == "") == (req.CommentID == "") {
		return nil, apperror.Validation("exactly one of postId or commentId must be set")
	}

	target, postID, authorUsername, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	outcome, err := s.repo.Cast(ctx, ident.UserID, target, req.VoteType)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A racing duplicate insert hit the uniqueness constraint; re-read
		// and decide once more, then give up.
		outcome, err = s.repo.Cast(ctx, ident.UserID, target, req.VoteType)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("vote already recorded, please retry")
		}
	}
	if err != nil {
		return nil, err
	}

	if !outcome.Removed && authorUsername != "" && !ident.Owns(authorUsername) {
		s.notifyAuthor(ident, target, postID, authorUsername)
	}

	return &voteDto.VoteResponse{
		Removed:   outcome.Removed,
		Vote:      outcome.Vote,
		PostID:    target.PostID,
		CommentID: target.CommentID,
		Votes:     outcome.Total,
	}, nil
}

// resolveTarget parses the request target, checks it exists, and reports the
// enclosing post id plus the content author for the notification side effect.
func (s *voteService) resolveTarget(ctx context.Context, req voteDto.CastVoteRequest) (voteRepo.Target, uuid.UUID, string, error) {
	if req.PostID != "" {
		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			return voteRepo.Target{}, uuid.Nil, "", apperror.Validation("invalid post id")
		}
		post, err := s.postRepo.FindByID(ctx, postID)
		if err != nil {
			return voteRepo.Target{}, uuid.Nil, "", err
		}
		if post == nil {
			return voteRepo.Target{}, uuid.Nil, "", apperror.NotFound("post not found")
		}
		return voteRepo.Target{PostID: &postID}, postID, post.AuthorUsername, nil
	}

	commentID, err := uuid.Parse(req.CommentID)
	if err != nil {
		return voteRepo.Target{}, uuid.Nil, "", apperror.Validation("invalid comment id")
	}
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return voteRepo.Target{}, uuid.Nil, "", err
	}
	if comment == nil {
		return voteRepo.Target{}, uuid.Nil, "", apperror.NotFound("comment not found")
	}
	return voteRepo.Target{CommentID: &commentID}, comment.PostID, comment.AuthorUsername, nil
}

func (s *voteService) notifyAuthor(ident identity.Identity, target voteRepo.Target, postID uuid.UUID, authorUsername string) {
	if s.notificationService == nil {
		return
	}

	go func() {
		kind := "post"
		if target.CommentID != nil {
			kind = "comment"
		}

		notification := &entity.Notification{
			Username:      authorUsername,
			ActorUsername: ident.DisplayName(),
			PostID:        postID,
			CommentID:     target.CommentID,
			Type:          "vote",
			Message:       fmt.Sprintf("Someone voted on your %s", kind),
		}

		_ = s.notificationService.CreateNotification(context.Background(), notification)
	}()
}
