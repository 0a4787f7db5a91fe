package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// roleKey is the key used to store the authenticated user's role in the request context.
const roleKey = contextKey("role")

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok
}

// GetRoleFromContext retrieves the authenticated user's role from the request context.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	role, ok := c.Request.Context().Value(roleKey).(string)
	return role, ok
}
