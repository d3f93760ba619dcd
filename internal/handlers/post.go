package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"burrow/internal/middleware"
	"burrow/internal/services"
)

type PostHandler struct {
	posts  *services.PostService
	voting *services.VotingService
}

func NewPostHandler(posts *services.PostService, voting *services.VotingService) *PostHandler {
	return &PostHandler{posts: posts, voting: voting}
}

type createPostInput struct {
	Title string `json:"title"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var input createPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.posts.Create(c.Request.Context(), middleware.Token(c), input.Title)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if result.Failed() {
		respondErrors(c, http.StatusBadRequest, result.Errors)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": result.Post})
}

// Detail returns a post with its current score, recomputed from the ledger.
func (h *PostHandler) Detail(c *gin.Context) {
	post, err := h.posts.ByPid(c.Request.Context(), c.Param("pid"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	score, err := h.voting.ScoreFor(c.Request.Context(), post.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	post.Score = score
	c.JSON(http.StatusOK, gin.H{"post": post})
}
