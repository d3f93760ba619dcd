package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"burrow/internal/models"
	"burrow/internal/store"
)

type VoteStore struct {
	db *gorm.DB
}

func NewVoteStore(db *gorm.DB) *VoteStore {
	return &VoteStore{db: db}
}

// Cast records or updates the user's vote on a post and returns the post's
// new score. The whole operation runs in one transaction:
//
//  1. upsert the vote on its composite key, so two concurrent casts for the
//     same (user, post) serialize on the row instead of double-inserting
//  2. recompute the post's score column from the ledger
//
// A flip is a single UPDATE on the existing row; there is never a window
// where the pair has no vote. Keeping the score recompute in the same
// transaction is what guarantees the counter and the ledger cannot be
// observed disagreeing.
func (s *VoteStore) Cast(ctx context.Context, userID, postID uint, value int) (int, error) {
	var score int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vote := models.Vote{
			UserID: userID,
			PostID: postID,
			Value:  value,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      value,
				"updated_at": time.Now(),
			}),
		}).Create(&vote).Error; err != nil {
			if isForeignKeyViolation(err) {
				return store.ErrNotFound
			}
			return fmt.Errorf("upsert vote: %w", err)
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("score", gorm.Expr(
				"(SELECT COALESCE(SUM(value), 0) FROM votes WHERE post_id = ?)", postID,
			)).Error; err != nil {
			return fmt.Errorf("update post score: %w", err)
		}

		return tx.Raw(
			"SELECT COALESCE(SUM(value), 0) FROM votes WHERE post_id = ?", postID,
		).Scan(&score).Error
	})
	if err != nil {
		return 0, err
	}
	return score, nil
}

func (s *VoteStore) Find(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find vote: %w", err)
	}
	return &vote, nil
}

func (s *VoteStore) SumForPost(ctx context.Context, postID uint) (int, error) {
	var sum int
	err := s.db.WithContext(ctx).Raw(
		"SELECT COALESCE(SUM(value), 0) FROM votes WHERE post_id = ?", postID,
	).Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("sum votes for post %d: %w", postID, err)
	}
	return sum, nil
}
