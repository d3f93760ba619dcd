// Package store defines the persistence boundary of the core: contracts for
// users, posts, the vote ledger and sessions, plus the typed errors callers
// are allowed to branch on. Implementations live in gormstore (Postgres) and
// memstore (in-memory, used by tests).
package store

import (
	"context"
	"errors"
	"time"

	"burrow/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert hits a uniqueness constraint.
// Callers check it with errors.Is, never by inspecting driver error codes.
var ErrConflict = errors.New("conflict")

// UserStore manages user persistence. Username uniqueness is enforced by the
// store's constraint, not by a check-then-insert in application code.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id uint) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
}

// PostStore manages post persistence.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	ByID(ctx context.Context, id uint) (*models.Post, error)
	ByPid(ctx context.Context, pid string) (*models.Post, error)
}

// VoteStore is the vote ledger: at most one row per (user, post) pair.
type VoteStore interface {
	// Cast records or updates the user's vote on a post as a single atomic
	// unit (upsert + post score maintenance) and returns the post's new
	// score. Casting the same value twice is a no-op on the stored row.
	Cast(ctx context.Context, userID, postID uint, value int) (int, error)

	// Find returns the user's vote on a post, or ErrNotFound.
	Find(ctx context.Context, userID, postID uint) (*models.Vote, error)

	// SumForPost returns the sum of all vote values for a post. A post with
	// no votes sums to zero.
	SumForPost(ctx context.Context, postID uint) (int, error)
}

// SessionStore maps opaque tokens to user ids. Tokens live for a fixed TTL
// from creation; reads never refresh the clock.
type SessionStore interface {
	// Create allocates a fresh token bound to the user.
	Create(ctx context.Context, userID uint, ttl time.Duration) (string, error)

	// Read resolves a token to a user id. A missing or expired token is
	// (0, false, nil), not an error.
	Read(ctx context.Context, token string) (uint, bool, error)

	// Destroy removes a token. Destroying an absent token is not an error.
	Destroy(ctx context.Context, token string) error
}
