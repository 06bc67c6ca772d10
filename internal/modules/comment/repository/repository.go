package repository

import (
	"context"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	// Create inserts the comment and recomputes the post's comment_count in
	// the same transaction. Returns the recomputed count.
	Create(ctx context.Context, comment *entity.Comment) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	// FindAllByPostID returns the full flat set for a post, soft-deleted rows
	// included, ordered by votes descending (created_at ascending tie-break).
	FindAllByPostID(ctx context.Context, postID uuid.UUID) ([]entity.Comment, error)
	Update(ctx context.Context, comment *entity.Comment) error
	FindByAuthors(ctx context.Context, authors []string) ([]entity.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		// Full recount rather than increment; soft-deleted rows count too
		// since they stay rendered as placeholders.
		var total int64
		if err := tx.Model(&entity.Comment{}).
			Where("post_id = ?", comment.PostID).
			Count(&total).Error; err != nil {
			return err
		}
		count = int(total)

		return tx.Model(&entity.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", count).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, nil
	}
	return &comments[0], nil
}

func (r *commentRepository) FindAllByPostID(ctx context.Context, postID uuid.UUID) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("votes DESC, created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) FindByAuthors(ctx context.Context, authors []string) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Where("author_username IN ?", authors).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}
