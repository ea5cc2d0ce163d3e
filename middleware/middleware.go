package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger is a Gin middleware logging HTTP requests through the standard log
// package, so webhook traffic shows up in the same stream as the rest of the
// application logs.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		c.Writer.Header().Set("X-Response-Time", latency.String())

		log.Printf("[GIN] %3d | %13v | %15s | %-7s %s",
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
		)
	}
}
