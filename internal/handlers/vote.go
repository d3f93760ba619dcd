package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"burrow/internal/middleware"
	"burrow/internal/services"
)

type VoteHandler struct {
	voting *services.VotingService
	posts  *services.PostService
}

func NewVoteHandler(voting *services.VotingService, posts *services.PostService) *VoteHandler {
	return &VoteHandler{voting: voting, posts: posts}
}

// Vote handles upvote logic
func (h *VoteHandler) Vote(c *gin.Context) {
	h.cast(c, services.Upvote)
}

// Downvote handles downvote logic
func (h *VoteHandler) Downvote(c *gin.Context) {
	h.cast(c, services.Downvote)
}

func (h *VoteHandler) cast(c *gin.Context, direction int) {
	post, err := h.posts.ByPid(c.Request.Context(), c.Param("pid"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	score, err := h.voting.CastVote(c.Request.Context(), middleware.Token(c), post.ID, direction)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score})
}
