// Package memstore is an in-memory implementation of the store contracts.
// One mutex guards all state, which gives it the same atomicity the Postgres
// store gets from transactions: a vote upsert and its score effect are never
// observable half-done. It backs the service tests and local experiments.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"burrow/internal/auth"
	"burrow/internal/models"
	"burrow/internal/store"
)

type voteKey struct {
	userID uint
	postID uint
}

type sessionRec struct {
	userID    uint
	expiresAt time.Time
}

// Store holds all records. Obtain the individual contracts through Users,
// Posts, Votes and Sessions.
type Store struct {
	mu sync.Mutex

	// Now is the clock used for session expiry. Tests swap it for a fixed
	// or stepped clock.
	Now func() time.Time

	users       map[uint]models.User
	usersByName map[string]uint
	nextUserID  uint

	posts      map[uint]models.Post
	postsByPid map[string]uint
	nextPostID uint

	votes map[voteKey]models.Vote

	sessions map[string]sessionRec
}

func New() *Store {
	return &Store{
		Now:         time.Now,
		users:       make(map[uint]models.User),
		usersByName: make(map[string]uint),
		posts:       make(map[uint]models.Post),
		postsByPid:  make(map[string]uint),
		votes:       make(map[voteKey]models.Vote),
		sessions:    make(map[string]sessionRec),
	}
}

func (s *Store) Users() store.UserStore       { return &userStore{s} }
func (s *Store) Posts() store.PostStore       { return &postStore{s} }
func (s *Store) Votes() store.VoteStore       { return &voteStore{s} }
func (s *Store) Sessions() store.SessionStore { return &sessionStore{s} }

type userStore struct{ *Store }

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByName[user.Username]; taken {
		return fmt.Errorf("create user %q: %w", user.Username, store.ErrConflict)
	}
	s.nextUserID++
	user.ID = s.nextUserID
	now := s.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	s.usersByName[user.Username] = user.ID
	return nil
}

func (s *userStore) ByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *userStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usersByName[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

type postStore struct{ *Store }

func (s *postStore) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.postsByPid[post.Pid]; taken {
		return fmt.Errorf("create post %q: %w", post.Pid, store.ErrConflict)
	}
	s.nextPostID++
	post.ID = s.nextPostID
	now := s.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	s.posts[post.ID] = *post
	s.postsByPid[post.Pid] = post.ID
	return nil
}

func (s *postStore) ByID(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &post, nil
}

func (s *postStore) ByPid(ctx context.Context, pid string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.postsByPid[pid]
	if !ok {
		return nil, store.ErrNotFound
	}
	post := s.posts[id]
	return &post, nil
}

type voteStore struct{ *Store }

func (s *voteStore) Cast(ctx context.Context, userID, postID uint, value int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return 0, store.ErrNotFound
	}

	key := voteKey{userID: userID, postID: postID}
	now := s.Now()
	if vote, exists := s.votes[key]; exists {
		vote.Value = value
		vote.UpdatedAt = now
		s.votes[key] = vote
	} else {
		s.votes[key] = models.Vote{
			UserID:    userID,
			PostID:    postID,
			Value:     value,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	score := s.sumLocked(postID)
	post.Score = score
	post.UpdatedAt = now
	s.posts[postID] = post
	return score, nil
}

func (s *voteStore) Find(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vote, ok := s.votes[voteKey{userID: userID, postID: postID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &vote, nil
}

func (s *voteStore) SumForPost(ctx context.Context, postID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sumLocked(postID), nil
}

func (s *Store) sumLocked(postID uint) int {
	sum := 0
	for key, vote := range s.votes {
		if key.postID == postID {
			sum += vote.Value
		}
	}
	return sum
}

type sessionStore struct{ *Store }

func (s *sessionStore) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	token, hash, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[hash] = sessionRec{userID: userID, expiresAt: s.Now().Add(ttl)}
	return token, nil
}

func (s *sessionStore) Read(ctx context.Context, token string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash := auth.HashToken(token)
	rec, ok := s.sessions[hash]
	if !ok {
		return 0, false, nil
	}
	if s.Now().After(rec.expiresAt) {
		delete(s.sessions, hash)
		return 0, false, nil
	}
	return rec.userID, true, nil
}

func (s *sessionStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, auth.HashToken(token))
	return nil
}
