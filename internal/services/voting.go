package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"burrow/internal/store"
)

// Vote directions. There is no retract: once cast, a vote is either kept or
// flipped.
const (
	Upvote   = 1
	Downvote = -1
)

// ErrUnauthorized is returned when a mutating call carries no usable session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidDirection is returned for vote values outside {+1, -1}.
var ErrInvalidDirection = errors.New("vote direction must be +1 or -1")

type VotingService struct {
	sessions store.SessionStore
	votes    store.VoteStore
	logger   *slog.Logger
}

func NewVotingService(sessions store.SessionStore, votes store.VoteStore) *VotingService {
	return &VotingService{
		sessions: sessions,
		votes:    votes,
		logger:   slog.Default().With("service", "voting"),
	}
}

// CastVote applies the caller's vote to a post and returns the post's new
// score. Repeating a direction changes nothing; flipping moves the score by
// two. The ledger write and the score change are one atomic unit inside the
// store, so nothing here needs to read-then-write.
func (s *VotingService) CastVote(ctx context.Context, token string, postID uint, direction int) (int, error) {
	if direction != Upvote && direction != Downvote {
		return 0, ErrInvalidDirection
	}

	userID, ok, err := s.sessions.Read(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	if !ok {
		return 0, ErrUnauthorized
	}

	score, err := s.votes.Cast(ctx, userID, postID, direction)
	if err != nil {
		return 0, err
	}

	s.logger.Info("vote cast", "user_id", userID, "post_id", postID, "direction", direction, "score", score)
	return score, nil
}

// ScoreFor is the post's score as defined: the sum of its ledger entries.
func (s *VotingService) ScoreFor(ctx context.Context, postID uint) (int, error) {
	return s.votes.SumForPost(ctx, postID)
}
