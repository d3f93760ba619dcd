package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"burrow/internal/models"
	"burrow/internal/store"
)

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create post %q: %w", post.Pid, store.ErrConflict)
		}
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (s *PostStore) ByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	return &post, nil
}

func (s *PostStore) ByPid(ctx context.Context, pid string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Where("pid = ?", pid).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find post %q: %w", pid, err)
	}
	return &post, nil
}
