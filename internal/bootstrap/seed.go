package bootstrap

import (
	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Subreddit{},
		&entity.SubredditMember{},
		&entity.Post{},
		&entity.Comment{},
		&entity.Vote{},
		&entity.SavedPost{},
		&entity.Notification{},
	)
}

// SeedSubreddits creates the default communities a fresh install ships with.
// Existing rows with the same name are left untouched.
func SeedSubreddits(db *gorm.DB) error {
	defaults := []entity.Subreddit{
		{Name: "general", Description: "General discussion"},
		{Name: "announcements", Description: "Site announcements"},
		{Name: "random", Description: "Anything goes"},
	}

	for _, subreddit := range defaults {
		var count int64
		if err := db.Model(&entity.Subreddit{}).
			Where("name = ?", subreddit.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&subreddit).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
