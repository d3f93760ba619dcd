package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"burrow/internal/config"
	"burrow/internal/db"
	"burrow/internal/router"
	"burrow/internal/services"
	"burrow/internal/store/gormstore"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize Database
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}

	// Stores and services
	users := gormstore.NewUserStore(db.DB)
	posts := gormstore.NewPostStore(db.DB)
	votes := gormstore.NewVoteStore(db.DB)
	sessionStore := gormstore.NewSessionStore(db.DB)

	authService := services.NewAuthService(users, sessionStore, cfg.SessionTTL)
	postService := services.NewPostService(sessionStore, posts)
	votingService := services.NewVotingService(sessionStore, votes)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions: the cookie carries only the opaque token. MaxAge
	// mirrors the server-side TTL; reads never refresh either.
	cookieStore := cookie.NewStore([]byte(cfg.SessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.CookieName, cookieStore))

	router.RegisterRoutes(r, authService, postService, votingService)

	log.Printf("burrow server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
