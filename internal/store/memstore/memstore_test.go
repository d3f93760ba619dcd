package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"burrow/internal/models"
	"burrow/internal/store"
	"burrow/internal/store/memstore"
)

func TestUserCreateConflict(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	require.NoError(t, st.Users().Create(ctx, &models.User{Username: "alice", Password: "x"}))

	err := st.Users().Create(ctx, &models.User{Username: "alice", Password: "y"})
	assert.ErrorIs(t, err, store.ErrConflict)

	// Case-sensitive usernames: a different casing is a different account.
	require.NoError(t, st.Users().Create(ctx, &models.User{Username: "Alice", Password: "z"}))
}

func TestUserLookup(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	user := models.User{Username: "alice", Password: "x"}
	require.NoError(t, st.Users().Create(ctx, &user))
	require.NotZero(t, user.ID)

	byID, err := st.Users().ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := st.Users().ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = st.Users().ByID(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Users().ByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVoteCastMaintainsScore(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	user := models.User{Username: "alice", Password: "x"}
	require.NoError(t, st.Users().Create(ctx, &user))
	post := models.Post{Pid: "01TESTPID", UserID: user.ID, Title: "hi"}
	require.NoError(t, st.Posts().Create(ctx, &post))

	score, err := st.Votes().Cast(ctx, user.ID, post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	// The post row's counter moves inside the same cast.
	stored, err := st.Posts().ByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Score)

	score, err = st.Votes().Cast(ctx, user.ID, post.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, score)

	stored, err = st.Posts().ByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, stored.Score)

	sum, err := st.Votes().SumForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Score, sum)
}

func TestVoteCastUnknownPost(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	_, err := st.Votes().Cast(ctx, 1, 999, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	token, err := st.Sessions().Create(ctx, 7, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok, err := st.Sessions().Read(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint(7), userID)

	require.NoError(t, st.Sessions().Destroy(ctx, token))

	_, ok, err = st.Sessions().Read(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Destroying again is still fine.
	require.NoError(t, st.Sessions().Destroy(ctx, token))
	require.NoError(t, st.Sessions().Destroy(ctx, "never-existed"))
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	start := time.Now()
	st.Now = func() time.Time { return start }

	token, err := st.Sessions().Create(ctx, 7, time.Minute)
	require.NoError(t, err)

	// Reads do not refresh the deadline.
	st.Now = func() time.Time { return start.Add(59 * time.Second) }
	_, ok, err := st.Sessions().Read(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	st.Now = func() time.Time { return start.Add(61 * time.Second) }
	_, ok, err = st.Sessions().Read(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}
