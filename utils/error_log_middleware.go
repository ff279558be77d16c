package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		log.Debugf("[DEBUG ERROR]: Status %d, Path: %s, Body: %s", status, w.gc.Request.URL.Path, string(b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware doesn't work with GZIP
func ErrorLogMiddleware(c *gin.Context) {
	blw := &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
}

// RequestLogger replaces gin's default logger with logrus fields
func RequestLogger(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.RequestURI()
	c.Next()
	entry := log.WithFields(log.Fields{
		"method":  c.Request.Method,
		"path":    path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start),
		"ip":      c.ClientIP(),
	})
	switch status := c.Writer.Status(); {
	case status >= 500:
		entry.Error(c.Errors.String())
	case status >= 400:
		entry.Warn("request")
	default:
		entry.Info("request")
	}
}
