package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/account/usecase"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserID      = "userID"
	ContextDisplayName = "displayName"
	ContextSessionID   = "sessionID"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session_token"

// AuthRequired returns a Gin middleware function that resolves the session
// cookie against the store and restricts access to authenticated users only.
func AuthRequired(store usecase.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get session token from the cookie
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		// 2. Resolve the token against the session store
		sess, err := store.FindByID(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrSessionNotFound) {
				// Unknown, expired or logged-out token
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
				return
			}
			// Store unreachable: not the client's fault
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		// 3. Expose the authenticated identity to downstream handlers
		c.Set(ContextUserID, sess.UserID)
		c.Set(ContextDisplayName, sess.DisplayName)
		c.Set(ContextSessionID, sess.ID)

		// 4. Pass control to the next handler
		c.Next()
	}
}
