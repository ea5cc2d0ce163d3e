package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

// SendJSONError sends a standardized JSON error response and logs the
// underlying error; the internal error itself is never exposed to the client.
func SendJSONError(c *gin.Context, statusCode int, publicMsg string, internalError error) {
	if internalError != nil {
		log.Printf("ERROR: Handler error: status_code=%d, public_message='%s', internal_error='%v', path='%s'",
			statusCode, publicMsg, internalError, c.Request.URL.Path)
	}
	c.AbortWithStatusJSON(statusCode, gin.H{"error": publicMsg})
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut. Used to keep user input in diagnostic logs short.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
