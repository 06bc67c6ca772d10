package repository

import (
	"context"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubredditRepository interface {
	Create(ctx context.Context, subreddit *entity.Subreddit) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Subreddit, error)
	FindByName(ctx context.Context, name string) (*entity.Subreddit, error)
	FindAll(ctx context.Context) ([]entity.Subreddit, error)
	// ToggleMembership joins or leaves the subreddit and recomputes the
	// denormalized member count in the same transaction. Returns whether the
	// user is a member afterwards, plus the recomputed count.
	ToggleMembership(ctx context.Context, subredditID, userID uuid.UUID) (bool, int, error)
}

type subredditRepository struct {
	db *gorm.DB
}

func NewSubredditRepository(db *gorm.DB) SubredditRepository {
	return &subredditRepository{db: db}
}

func (r *subredditRepository) Create(ctx context.Context, subreddit *entity.Subreddit) error {
	return r.db.WithContext(ctx).Create(subreddit).Error
}

func (r *subredditRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subreddit, error) {
	var subreddits []entity.Subreddit
	err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&subreddits).Error
	if err != nil {
		return nil, err
	}
	if len(subreddits) == 0 {
		return nil, nil
	}
	return &subreddits[0], nil
}

func (r *subredditRepository) FindByName(ctx context.Context, name string) (*entity.Subreddit, error) {
	var subreddits []entity.Subreddit
	err := r.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&subreddits).Error
	if err != nil {
		return nil, err
	}
	if len(subreddits) == 0 {
		return nil, nil
	}
	return &subreddits[0], nil
}

func (r *subredditRepository) FindAll(ctx context.Context) ([]entity.Subreddit, error) {
	var subreddits []entity.Subreddit
	err := r.db.WithContext(ctx).Order("name ASC").Find(&subreddits).Error
	return subreddits, err
}

func (r *subredditRepository) ToggleMembership(ctx context.Context, subredditID, userID uuid.UUID) (bool, int, error) {
	var member bool
	var count int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []entity.SubredditMember
		if err := tx.Where("subreddit_id = ? AND user_id = ?", subredditID, userID).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			if err := tx.Delete(&entity.SubredditMember{}, "id = ?", existing[0].ID).Error; err != nil {
				return err
			}
			member = false
		} else {
			row := &entity.SubredditMember{SubredditID: subredditID, UserID: userID}
			// Insert-or-ignore so a racing duplicate join no-ops.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
				return err
			}
			member = true
		}

		var total int64
		if err := tx.Model(&entity.SubredditMember{}).
			Where("subreddit_id = ?", subredditID).
			Count(&total).Error; err != nil {
			return err
		}
		count = int(total)

		return tx.Model(&entity.Subreddit{}).Where("id = ?", subredditID).
			UpdateColumn("members", count).Error
	})
	if err != nil {
		return false, 0, err
	}

	return member, count, nil
}
