package middleware

import "github.com/gin-gonic/gin"

// userIDHeader names the header carrying the acting user for audit fields.
// The suite's gateway authenticates upstream and forwards the identity here.
const userIDHeader = "X-User-ID"

// defaultUserID attributes unattributed writes, e.g. from migrations or
// local tooling.
const defaultUserID = "system"

// GetUserIDFromContext returns the acting user ID for the request.
func GetUserIDFromContext(c *gin.Context) string {
	if userID := c.GetHeader(userIDHeader); userID != "" {
		return userID
	}
	return defaultUserID
}
