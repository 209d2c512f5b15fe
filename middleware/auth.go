package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uph-campus/campus-events-backend/internal/auth"
)

// AdminSession rejects requests without a valid admin session. The token is
// read from the session cookie, or from a Bearer header for API clients.
func AdminSession(authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := loadSession(c, authSvc)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInactive):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
		default:
			log.Printf("❌ session check failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to verify session"})
		}
	}
}

// OptionalSession marks admin callers on public routes and lets everyone
// else through untouched.
func OptionalSession(authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		loadSession(c, authSvc)
		c.Next()
	}
}

func loadSession(c *gin.Context, authSvc auth.Service) error {
	token := sessionToken(c)
	if token == "" {
		return auth.ErrInvalidToken
	}
	sess, err := authSvc.Authenticate(c.Request.Context(), token)
	if err != nil {
		return err
	}
	c.Set(auth.ContextAdminID, sess.AdminID)
	c.Set(auth.ContextAdminEmail, sess.Email)
	return nil
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// IsAdmin reports whether the request carries an admin session.
func IsAdmin(c *gin.Context) bool {
	return c.GetUint(auth.ContextAdminID) != 0
}

// AdminFromContext returns the session admin id (nil when anonymous) and email.
func AdminFromContext(c *gin.Context) (*uint, string) {
	id := c.GetUint(auth.ContextAdminID)
	if id == 0 {
		return nil, ""
	}
	return &id, c.GetString(auth.ContextAdminEmail)
}
