package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
	CacheMedia   = 30 * 86400 // uploaded files never change, names are random
)

// CacheRouter sets the cache-control header. A group registered later can
// override the default with its own CacheRouter.
type CacheRouter struct {
	CacheTime int // defaults to CacheNoCache = 0
	Public    bool
}

func (cr *CacheRouter) header() string {
	if cr.CacheTime == CacheNoCache {
		return "no-cache"
	}
	scope := "private"
	if cr.Public {
		scope = "public"
	}
	return scope + ", max-age=" + strconv.Itoa(cr.CacheTime)
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	value := cr.header()
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			c.Header("cache-control", value)
		}
		c.Next()
	}
}
