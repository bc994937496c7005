package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return BodyLimitExcept(maxBytes)
}

// BodyLimitExcept limits request body size on every path except those
// starting with one of skipPrefixes, which apply their own limit on the route.
func BodyLimitExcept(maxBytes int64, skipPrefixes ...string) gin.HandlerFunc {
	skipped := func(path string) bool {
		for _, p := range skipPrefixes {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		if maxBytes <= 0 || skipped(c.Request.URL.Path) {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size.")
			return
		}

		// Chunked bodies carry no Content-Length.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
