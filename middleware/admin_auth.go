package middleware

import (
	"crypto/subtle"

	"lead-rag-platform/utils"

	"github.com/gin-gonic/gin"
)

const AdminSecretHeader = "X-Admin-Secret"

// AdminAuth guards the data-management endpoints behind a shared secret.
// When no secret is configured the endpoints stay open, which is only
// acceptable for local development.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(AdminSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			utils.RespondWithUnauthorized(c, "invalid or missing admin secret")
			c.Abort()
			return
		}

		c.Next()
	}
}
