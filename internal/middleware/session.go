package middleware

import (
	"fmt"

	"bloomshop-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "session_id"

// Session resolves the cart session key. Authenticated users get a stable
// key derived from their id so the cart follows them across devices;
// guests are keyed by a generated cookie.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		var key string

		if userID, ok := utils.GetUserIDFromContext(c.Request.Context()); ok {
			key = fmt.Sprintf("user:%d", userID)
		} else if sid := c.GetHeader("X-Session-ID"); sid != "" {
			key = "guest:" + sid
		} else if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
			key = "guest:" + cookie
		} else {
			sid := uuid.NewString()
			c.SetCookie(sessionCookie, sid, 72*3600, "/", "", false, true)
			key = "guest:" + sid
		}

		c.Request = c.Request.WithContext(utils.WithSessionKey(c.Request.Context(), key))
		c.Next()
	}
}
