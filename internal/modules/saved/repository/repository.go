package repository

import (
	"context"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedPostRepository interface {
	Find(ctx context.Context, userID, postID uuid.UUID) (*entity.SavedPost, error)
	// Insert uses insert-or-ignore semantics so a racing duplicate save
	// no-ops instead of erroring.
	Insert(ctx context.Context, saved *entity.SavedPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.SavedPost, error)
	Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error)
}

type savedPostRepository struct {
	db *gorm.DB
}

func NewSavedPostRepository(db *gorm.DB) SavedPostRepository {
	return &savedPostRepository{db: db}
}

func (r *savedPostRepository) Find(ctx context.Context, userID, postID uuid.UUID) (*entity.SavedPost, error) {
	var rows []entity.SavedPost
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *savedPostRepository) Insert(ctx context.Context, saved *entity.SavedPost) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(saved).Error
}

func (r *savedPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SavedPost{}, "id = ?", id).Error
}

func (r *savedPostRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.SavedPost, error) {
	var rows []entity.SavedPost
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.Subreddit").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *savedPostRepository) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SavedPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}
