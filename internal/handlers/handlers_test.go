package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"burrow/internal/router"
	"burrow/internal/services"
	"burrow/internal/store/memstore"
)

func newTestServer() *httptest.Server {
	gin.SetMode(gin.TestMode)

	st := memstore.New()
	authService := services.NewAuthService(st.Users(), st.Sessions(), time.Hour)
	postService := services.NewPostService(st.Sessions(), st.Posts())
	votingService := services.NewVotingService(st.Sessions(), st.Votes())

	r := gin.New()
	r.Use(sessions.Sessions("qid", cookie.NewStore([]byte("test_secret"))))
	router.RegisterRoutes(r, authService, postService, votingService)

	return httptest.NewServer(r)
}

// client wraps an http.Client with a cookie jar so the session cookie
// survives across calls, the way a browser would carry it.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, server *httptest.Server) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: server.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func (c *client) post(path string, body any) (int, map[string]any) {
	return c.do(http.MethodPost, path, body)
}

func (c *client) get(path string) (int, map[string]any) {
	return c.do(http.MethodGet, path, nil)
}

func firstError(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	errs, ok := body["errors"].([]any)
	require.True(t, ok, "expected errors in %v", body)
	require.NotEmpty(t, errs)
	fieldErr, ok := errs[0].(map[string]any)
	require.True(t, ok)
	return fieldErr
}

func TestSignupLoginVoteFlow(t *testing.T) {
	server := newTestServer()
	defer server.Close()
	alice := newClient(t, server)

	// Sign up and verify the session cookie works.
	status, body := alice.post("/signup", gin.H{"username": "alice", "password": "secretpw"})
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])

	status, body = alice.get("/me")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["user"].(map[string]any)["username"])

	// Create a post and vote on it.
	status, body = alice.post("/posts", gin.H{"title": "hello burrow"})
	require.Equal(t, http.StatusOK, status)
	pid := body["post"].(map[string]any)["pid"].(string)
	require.NotEmpty(t, pid)

	status, body = alice.post("/vote/"+pid, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["score"])

	// Same direction again: no double count.
	status, body = alice.post("/vote/"+pid, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["score"])

	// A second voter stacks on top.
	bob := newClient(t, server)
	status, _ = bob.post("/signup", gin.H{"username": "bob", "password": "secretpw"})
	require.Equal(t, http.StatusOK, status)
	status, body = bob.post("/vote/"+pid, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["score"])

	// Alice flips: net -2.
	status, body = alice.post("/vote/"+pid+"/down", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["score"])

	// The post detail exposes the same score.
	status, body = alice.get("/p/" + pid)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["post"].(map[string]any)["score"])
}

func TestSignupValidationAndDuplicate(t *testing.T) {
	server := newTestServer()
	defer server.Close()
	c := newClient(t, server)

	status, body := c.post("/signup", gin.H{"username": "ab", "password": "secretpw"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "username", firstError(t, body)["field"])

	status, _ = c.post("/signup", gin.H{"username": "alice", "password": "secretpw"})
	require.Equal(t, http.StatusOK, status)

	other := newClient(t, server)
	status, body = other.post("/signup", gin.H{"username": "alice", "password": "other"})
	require.Equal(t, http.StatusBadRequest, status)
	fieldErr := firstError(t, body)
	assert.Equal(t, "username", fieldErr["field"])
	assert.Equal(t, "username already taken", fieldErr["message"])
}

func TestLoginErrorsAreUniform(t *testing.T) {
	server := newTestServer()
	defer server.Close()
	c := newClient(t, server)

	status, _ := c.post("/signup", gin.H{"username": "alice", "password": "secretpw"})
	require.Equal(t, http.StatusOK, status)

	status, wrongPw := c.post("/login", gin.H{"username": "alice", "password": "wrongpw"})
	require.Equal(t, http.StatusUnauthorized, status)

	status, ghost := c.post("/login", gin.H{"username": "ghost", "password": "x"})
	require.Equal(t, http.StatusUnauthorized, status)

	// Same body whether the username exists or not.
	assert.Equal(t, wrongPw, ghost)
}

func TestVoteRequiresSession(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	owner := newClient(t, server)
	status, _ := owner.post("/signup", gin.H{"username": "alice", "password": "secretpw"})
	require.Equal(t, http.StatusOK, status)
	status, body := owner.post("/posts", gin.H{"title": "hello"})
	require.Equal(t, http.StatusOK, status)
	pid := body["post"].(map[string]any)["pid"].(string)

	anonymous := newClient(t, server)
	status, _ = anonymous.post("/vote/"+pid, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// After logout the old cookie no longer counts.
	status, _ = owner.get("/logout")
	require.Equal(t, http.StatusOK, status)
	status, _ = owner.post("/vote/"+pid, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Logout twice is fine.
	status, body = owner.get("/logout")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])

	status, body = owner.get("/me")
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["user"])
}
