package repository

import (
	"context"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/torcriss/CocoReddit-sub000/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	FindAll(ctx context.Context, filter dto.PostFilter, offset, limit int) ([]entity.Post, int64, error)
	FindByAuthors(ctx context.Context, authors []string) ([]entity.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Preload("Subreddit").
		Where("id = ?", id).
		Limit(1).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

func (r *postRepository) FindAll(ctx context.Context, filter dto.PostFilter, offset, limit int) ([]entity.Post, int64, error) {
	var posts []entity.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Post{})

	if filter.SubredditID != "" {
		if subredditID, err := uuid.Parse(filter.SubredditID); err == nil {
			query = query.Where("subreddit_id = ?", subredditID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.SortBy == "top" {
		order = "votes DESC, created_at DESC"
	}

	err := query.
		Preload("Subreddit").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) FindByAuthors(ctx context.Context, authors []string) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Preload("Subreddit").
		Where("author_username IN ?", authors).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Post{}, "id = ?", id).Error
}
