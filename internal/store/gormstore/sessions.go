package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"burrow/internal/auth"
	"burrow/internal/models"
)

type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	token, hash, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}

	session := models.Session{
		TokenHash: hash,
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Read resolves a token to a user id. Expiry is checked against the stored
// deadline; reading never extends it. An expired row is reaped on the way out.
func (s *SessionStore) Read(ctx context.Context, token string) (uint, bool, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Where("token_hash = ?", auth.HashToken(token)).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		s.db.WithContext(ctx).Delete(&models.Session{}, "token_hash = ?", session.TokenHash)
		return 0, false, nil
	}
	return session.UserID, true, nil
}

// Destroy removes a session. Destroying a token that is already gone is fine;
// only a store failure is an error.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	err := s.db.WithContext(ctx).
		Delete(&models.Session{}, "token_hash = ?", auth.HashToken(token)).Error
	if err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
