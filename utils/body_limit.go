package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// BodyLimit caps request bodies at limit bytes. A declared length over the
// limit is refused right away, anything else fails on read once it gets there.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			log.Warnf("[bodyLimit] %s %s: %d bytes refused", c.Request.Method, c.Request.URL.Path, c.Request.ContentLength)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
