package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"articles-backend/internal/shared/response"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminMiddleware bảo vệ các endpoint vận hành (reindex...) bằng static token.
// Token rỗng => endpoint bị tắt.
func AdminMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			response.Forbidden(c, "Access denied: admin endpoints disabled")
			c.Abort()
			return
		}

		got := c.GetHeader(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(adminToken)) != 1 {
			response.Forbidden(c, "Access denied: admin token required")
			c.Abort()
			return
		}

		c.Next()
	}
}
