package repository

import (
	"context"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Target addresses the single post or comment a vote applies to.
type Target struct {
	PostID    *uuid.UUID
	CommentID *uuid.UUID
}

// CastOutcome is what a cast produced: Removed marks a toggle-off, Vote is
// the surviving row (nil when removed), Total is the recomputed vote total
// for the target.
type CastOutcome struct {
	Removed bool
	Vote    *entity.Vote
	Total   int
}

type Action int

const (
	ActionInsert Action = iota
	ActionRemove
	ActionFlip
)

// Resolve decides what casting voteType does against the user's existing
// vote: no prior vote inserts, same type toggles off, opposite type flips in
// place.
func Resolve(existing *entity.Vote, voteType int) Action {
	if existing == nil {
		return ActionInsert
	}
	if existing.VoteType == voteType {
		return ActionRemove
	}
	return ActionFlip
}

type VoteRepository interface {
	// Cast applies a vote and recomputes the target's denormalized total in
	// the same transaction.
	Cast(ctx context.Context, userID uuid.UUID, target Target, voteType int) (*CastOutcome, error)
	FindForUser(ctx context.Context, userID uuid.UUID, target Target) (*entity.Vote, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func targetScope(db *gorm.DB, target Target) *gorm.DB {
	if target.PostID != nil {
		return db.Where("post_id = ?", *target.PostID)
	}
	return db.Where("comment_id = ?", *target.CommentID)
}

func (r *voteRepository) Cast(ctx context.Context, userID uuid.UUID, target Target, voteType int) (*CastOutcome, error) {
	var outcome CastOutcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Use Find with slice to avoid "record not found" log noise from
		// GORM's First()
		var existing []entity.Vote
		if err := targetScope(tx.Where("user_id = ?", userID), target).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}

		var current *entity.Vote
		if len(existing) > 0 {
			current = &existing[0]
		}

		switch Resolve(current, voteType) {
		case ActionInsert:
			vote := &entity.Vote{
				UserID:    userID,
				PostID:    target.PostID,
				CommentID: target.CommentID,
				VoteType:  voteType,
			}
			if err := tx.Create(vote).Error; err != nil {
				return err
			}
			outcome.Vote = vote
		case ActionRemove:
			if err := tx.Delete(&entity.Vote{}, "id = ?", current.ID).Error; err != nil {
				return err
			}
			outcome.Removed = true
		case ActionFlip:
			current.VoteType = voteType
			if err := tx.Model(&entity.Vote{}).Where("id = ?", current.ID).
				UpdateColumn("vote_type", voteType).Error; err != nil {
				return err
			}
			outcome.Vote = current
		}

		// Full re-sum over the target's rows rather than an incremental
		// adjustment, so the stored total self-heals against any prior drift.
		var total int
		if err := targetScope(tx.Model(&entity.Vote{}), target).
			Select("COALESCE(SUM(vote_type), 0)").
			Scan(&total).Error; err != nil {
			return err
		}
		outcome.Total = total

		if target.PostID != nil {
			return tx.Model(&entity.Post{}).Where("id = ?", *target.PostID).
				UpdateColumn("votes", total).Error
		}
		return tx.Model(&entity.Comment{}).Where("id = ?", *target.CommentID).
			UpdateColumn("votes", total).Error
	})
	if err != nil {
		return nil, err
	}

	return &outcome, nil
}

func (r *voteRepository) FindForUser(ctx context.Context, userID uuid.UUID, target Target) (*entity.Vote, error) {
	var votes []entity.Vote
	err := targetScope(r.db.WithContext(ctx).Where("user_id = ?", userID), target).
		Limit(1).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return nil, nil
	}
	return &votes[0], nil
}
