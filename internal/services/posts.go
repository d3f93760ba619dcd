package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"burrow/internal/models"
	"burrow/internal/store"
)

// PostResult mirrors AuthResult for post creation: a post or field errors.
type PostResult struct {
	Post   *models.Post `json:"post,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (r *PostResult) Failed() bool { return len(r.Errors) > 0 }

type PostService struct {
	sessions store.SessionStore
	posts    store.PostStore
	logger   *slog.Logger
}

func NewPostService(sessions store.SessionStore, posts store.PostStore) *PostService {
	return &PostService{
		sessions: sessions,
		posts:    posts,
		logger:   slog.Default().With("service", "posts"),
	}
}

// Create stores a new post owned by the session's user. The public id is a
// fresh ULID, so it is sortable by creation time and safe to put in URLs.
func (s *PostService) Create(ctx context.Context, token, title string) (*PostResult, error) {
	userID, ok, err := s.sessions.Read(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	if strings.TrimSpace(title) == "" {
		return &PostResult{Errors: []FieldError{{Field: "title", Message: "title cannot be empty"}}}, nil
	}

	post := models.Post{
		Pid:    ulid.Make().String(),
		UserID: userID,
		Title:  title,
	}
	if err := s.posts.Create(ctx, &post); err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "pid", post.Pid, "user_id", userID)
	return &PostResult{Post: &post}, nil
}

// ByPid loads a post by its public id.
func (s *PostService) ByPid(ctx context.Context, pid string) (*models.Post, error) {
	return s.posts.ByPid(ctx, pid)
}
