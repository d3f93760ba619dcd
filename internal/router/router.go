package router

import (
	"github.com/gin-gonic/gin"

	"burrow/internal/handlers"
	"burrow/internal/middleware"
	"burrow/internal/services"
)

func RegisterRoutes(r *gin.Engine, auth *services.AuthService, posts *services.PostService, voting *services.VotingService) {
	// Handlers
	authHandler := handlers.NewAuthHandler(auth)
	postHandler := handlers.NewPostHandler(posts, voting)
	voteHandler := handlers.NewVoteHandler(voting, posts)

	r.Use(middleware.LoadUser(auth))

	// Public Routes
	r.POST("/signup", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/me", authHandler.Me)
	r.GET("/p/:pid", postHandler.Detail)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts", postHandler.Create)
		authorized.POST("/vote/:pid", voteHandler.Vote)
		authorized.POST("/vote/:pid/down", voteHandler.Downvote)
	}
}
