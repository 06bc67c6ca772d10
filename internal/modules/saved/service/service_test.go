package service

import (
	"context"
	"testing"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/torcriss/CocoReddit-sub000/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSavedRepo struct {
	rows map[uuid.UUID]*entity.SavedPost
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{rows: make(map[uuid.UUID]*entity.SavedPost)}
}

func (r *fakeSavedRepo) Find(_ context.Context, userID, postID uuid.UUID) (*entity.SavedPost, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.PostID == postID {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeSavedRepo) Insert(_ context.Context, saved *entity.SavedPost) error {
	for _, row := range r.rows {
		if row.UserID == saved.UserID && row.PostID == saved.PostID {
			// insert-or-ignore
			return nil
		}
	}
	if saved.ID == uuid.Nil {
		saved.ID = uuid.New()
	}
	stored := *saved
	r.rows[saved.ID] = &stored
	return nil
}

func (r *fakeSavedRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeSavedRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.SavedPost, error) {
	var out []entity.SavedPost
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeSavedRepo) Exists(_ context.Context, userID, postID uuid.UUID) (bool, error) {
	row, _ := r.Find(context.Background(), userID, postID)
	return row != nil, nil
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

func setupSavedService(t *testing.T) (SavedPostService, *fakeSavedRepo, *entity.Post) {
	t.Helper()

	saved := newFakeSavedRepo()
	posts := &fakePostRepo{posts: make(map[uuid.UUID]*entity.Post)}

	post := &entity.Post{ID: uuid.New(), Title: "hello", AuthorUsername: "Ana"}
	posts.posts[post.ID] = post

	return NewSavedPostService(saved, posts), saved, post
}

func TestToggleSaveRoundTrip(t *testing.T) {
	svc, repo, post := setupSavedService(t)
	userID := uuid.New()

	resp, err := svc.ToggleSave(context.Background(), userID, post.ID)
	assert.NoError(t, err)
	assert.True(t, resp.Saved)
	assert.Len(t, repo.rows, 1)

	resp, err = svc.ToggleSave(context.Background(), userID, post.ID)
	assert.NoError(t, err)
	assert.False(t, resp.Saved)
	assert.Empty(t, repo.rows)
}

func TestToggleSaveNeverDuplicates(t *testing.T) {
	svc, repo, post := setupSavedService(t)
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		_, err := svc.ToggleSave(context.Background(), userID, post.ID)
		assert.NoError(t, err)
	}

	// Odd number of toggles ends saved, with exactly one row.
	assert.Len(t, repo.rows, 1)
}

func TestToggleSaveUnknownPost(t *testing.T) {
	svc, _, _ := setupSavedService(t)

	_, err := svc.ToggleSave(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestToggleSavePerUser(t *testing.T) {
	svc, repo, post := setupSavedService(t)
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.ToggleSave(context.Background(), alice, post.ID)
	assert.NoError(t, err)
	_, err = svc.ToggleSave(context.Background(), bob, post.ID)
	assert.NoError(t, err)
	assert.Len(t, repo.rows, 2)

	// Bob unsaving leaves Alice's row alone.
	_, err = svc.ToggleSave(context.Background(), bob, post.ID)
	assert.NoError(t, err)

	saved, err := svc.IsSaved(context.Background(), &alice, post.ID)
	assert.NoError(t, err)
	assert.True(t, saved)

	saved, err = svc.IsSaved(context.Background(), &bob, post.ID)
	assert.NoError(t, err)
	assert.False(t, saved)
}

func TestIsSavedAnonymous(t *testing.T) {
	svc, _, post := setupSavedService(t)

	saved, err := svc.IsSaved(context.Background(), nil, post.ID)
	assert.NoError(t, err)
	assert.False(t, saved)
}
