package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// CustomLoggerMiddleware logs HTTP requests in simple text format.
func CustomLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		userEmail := "-"
		if email, exists := c.Get("user_email"); exists {
			if s, ok := email.(string); ok && s != "" {
				userEmail = s
			}
		}

		fmt.Printf("[API] %s | %s | %d | %s | %s | User: %s\n",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency.String(),
			c.ClientIP(),
			userEmail,
		)
	}
}
