package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"burrow/internal/models"
	"burrow/internal/services"
)

const CheckUserKey = "user"
const SessionTokenKey = "session_token"

// LoadUser pulls the session token out of the cookie, resolves it to a user
// and stashes both on the request context. Resolution failures fall through
// to anonymous; only the core session store knows about expiry.
func LoadUser(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(SessionTokenKey).(string)
		if token != "" {
			c.Set(SessionTokenKey, token)
			user, err := authService.Me(c.Request.Context(), token)
			if err == nil && user != nil {
				c.Set(CheckUserKey, user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user on the context, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// Token returns the session token on the context, or "".
func Token(c *gin.Context) string {
	token, _ := c.Get(SessionTokenKey)
	s, _ := token.(string)
	return s
}
