package service

import (
	"context"
	"testing"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/torcriss/CocoReddit-sub000/internal/identity"
	voteDto "github.com/torcriss/CocoReddit-sub000/internal/modules/vote/dto"
	voteRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/vote/repository"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/torcriss/CocoReddit-sub000/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type voteKey struct {
	user   uuid.UUID
	target uuid.UUID
}

// fakeVoteRepo keeps the vote ledger in memory, applying the same
// resolve-then-resum sequence the real repository runs in its transaction.
type fakeVoteRepo struct {
	votes    map[voteKey]*entity.Vote
	failWith error
	failures int
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[voteKey]*entity.Vote)}
}

func (r *fakeVoteRepo) key(userID uuid.UUID, target voteRepo.Target) voteKey {
	if target.PostID != nil {
		return voteKey{user: userID, target: *target.PostID}
	}
	return voteKey{user: userID, target: *target.CommentID}
}

func (r *fakeVoteRepo) Cast(_ context.Context, userID uuid.UUID, target voteRepo.Target, voteType int) (*voteRepo.CastOutcome, error) {
	if r.failures > 0 {
		r.failures--
		return nil, r.failWith
	}

	k := r.key(userID, target)
	existing := r.votes[k]

	outcome := &voteRepo.CastOutcome{}
	switch voteRepo.Resolve(existing, voteType) {
	case voteRepo.ActionInsert:
		vote := &entity.Vote{
			ID:        uuid.New(),
			UserID:    userID,
			PostID:    target.PostID,
			CommentID: target.CommentID,
			VoteType:  voteType,
		}
		r.votes[k] = vote
		outcome.Vote = vote
	case voteRepo.ActionRemove:
		delete(r.votes, k)
		outcome.Removed = true
	case voteRepo.ActionFlip:
		existing.VoteType = voteType
		outcome.Vote = existing
	}

	for key, v := range r.votes {
		if key.target == k.target {
			outcome.Total += v.VoteType
		}
	}
	return outcome, nil
}

func (r *fakeVoteRepo) FindForUser(_ context.Context, userID uuid.UUID, target voteRepo.Target) (*entity.Vote, error) {
	v, ok := r.votes[r.key(userID, target)]
	if !ok {
		return nil, nil
	}
	return v, nil
}

type fakePostRepo struct {
	posts map[uuid.UUID]*entity.Post
}

func (r *fakePostRepo) Create(_ context.Context, post *entity.Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakePostRepo) FindAll(_ context.Context, _ dto.PostFilter, _, _ int) ([]entity.Post, int64, error) {
	return nil, 0, nil
}

func (r *fakePostRepo) FindByAuthors(_ context.Context, _ []string) ([]entity.Post, error) {
	return nil, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.posts, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*entity.Comment
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) (int, error) {
	r.comments[comment.ID] = comment
	return len(r.comments), nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCommentRepo) FindAllByPostID(_ context.Context, _ uuid.UUID) ([]entity.Comment, error) {
	return nil, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) FindByAuthors(_ context.Context, _ []string) ([]entity.Comment, error) {
	return nil, nil
}

func setupVoteService(t *testing.T) (VoteService, *fakeVoteRepo, *entity.Post, *entity.Comment) {
	t.Helper()

	votes := newFakeVoteRepo()
	posts := &fakePostRepo{posts: make(map[uuid.UUID]*entity.Post)}
	comments := &fakeCommentRepo{comments: make(map[uuid.UUID]*entity.Comment)}

	post := &entity.Post{ID: uuid.New(), Title: "hello", AuthorUsername: "Ana"}
	posts.posts[post.ID] = post

	comment := &entity.Comment{ID: uuid.New(), PostID: post.ID, Content: "hi", AuthorUsername: "Bob"}
	comments.comments[comment.ID] = comment

	svc := NewVoteService(votes, posts, comments, nil)
	return svc, votes, post, comment
}

func voter() identity.Identity {
	return identity.Identity{UserID: uuid.New(), FirstName: "Carol"}
}

func TestCastVoteInsertFlipRemove(t *testing.T) {
	svc, _, post, _ := setupVoteService(t)
	ident := voter()
	req := voteDto.CastVoteRequest{PostID: post.ID.String(), VoteType: entity.Upvote}

	resp, err := svc.CastVote(context.Background(), ident, req)
	assert.NoError(t, err)
	assert.False(t, resp.Removed)
	assert.Equal(t, entity.Upvote, resp.Vote.VoteType)
	assert.Equal(t, 1, resp.Votes)

	// Opposite type flips in place.
	req.VoteType = entity.Downvote
	resp, err = svc.CastVote(context.Background(), ident, req)
	assert.NoError(t, err)
	assert.False(t, resp.Removed)
	assert.Equal(t, entity.Downvote, resp.Vote.VoteType)
	assert.Equal(t, -1, resp.Votes)

	// Same type toggles off.
	resp, err = svc.CastVote(context.Background(), ident, req)
	assert.NoError(t, err)
	assert.True(t, resp.Removed)
	assert.Nil(t, resp.Vote)
	assert.Equal(t, 0, resp.Votes)
}

func TestCastVoteOnComment(t *testing.T) {
	svc, _, _, comment := setupVoteService(t)

	resp, err := svc.CastVote(context.Background(), voter(), voteDto.CastVoteRequest{
		CommentID: comment.ID.String(),
		VoteType:  entity.Upvote,
	})

	assert.NoError(t, err)
	assert.Equal(t, comment.ID, *resp.CommentID)
	assert.Nil(t, resp.PostID)
	assert.Equal(t, 1, resp.Votes)
}

func TestCastVoteMultipleUsers(t *testing.T) {
	svc, _, post, _ := setupVoteService(t)
	req := voteDto.CastVoteRequest{PostID: post.ID.String(), VoteType: entity.Upvote}

	_, err := svc.CastVote(context.Background(), voter(), req)
	assert.NoError(t, err)
	_, err = svc.CastVote(context.Background(), voter(), req)
	assert.NoError(t, err)

	down := voteDto.CastVoteRequest{PostID: post.ID.String(), VoteType: entity.Downvote}
	resp, err := svc.CastVote(context.Background(), voter(), down)
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Votes)
}

func TestCastVoteValidation(t *testing.T) {
	svc, _, post, comment := setupVoteService(t)
	ident := voter()

	_, err := svc.CastVote(context.Background(), ident, voteDto.CastVoteRequest{
		PostID:   post.ID.String(),
		VoteType: 2,
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.CastVote(context.Background(), ident, voteDto.CastVoteRequest{
		VoteType: entity.Upvote,
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.CastVote(context.Background(), ident, voteDto.CastVoteRequest{
		PostID:    post.ID.String(),
		CommentID: comment.ID.String(),
		VoteType:  entity.Upvote,
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCastVoteUnknownTarget(t *testing.T) {
	svc, _, _, _ := setupVoteService(t)
	ident := voter()

	_, err := svc.CastVote(context.Background(), ident, voteDto.CastVoteRequest{
		PostID:   uuid.New().String(),
		VoteType: entity.Upvote,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.CastVote(context.Background(), ident, voteDto.CastVoteRequest{
		CommentID: uuid.New().String(),
		VoteType:  entity.Upvote,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCastVoteRetriesOnceOnDuplicate(t *testing.T) {
	svc, votes, post, _ := setupVoteService(t)
	votes.failWith = gorm.ErrDuplicatedKey
	votes.failures = 1

	resp, err := svc.CastVote(context.Background(), voter(), voteDto.CastVoteRequest{
		PostID:   post.ID.String(),
		VoteType: entity.Upvote,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Votes)
}

func TestCastVoteConflictAfterRetry(t *testing.T) {
	svc, votes, post, _ := setupVoteService(t)
	votes.failWith = gorm.ErrDuplicatedKey
	votes.failures = 2

	_, err := svc.CastVote(context.Background(), voter(), voteDto.CastVoteRequest{
		PostID:   post.ID.String(),
		VoteType: entity.Upvote,
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
}
