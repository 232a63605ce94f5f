package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionContext reads the simulated session headers into the gin context.
// There is no authentication in this demo: the client declares its role and
// company the same way the original set a login flag.
func SessionContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("company_id", strings.TrimSpace(c.GetHeader("X-Company-ID")))
		c.Set("role", strings.ToUpper(strings.TrimSpace(c.GetHeader("X-Role"))))
		c.Next()
	}
}
