// Package pagecache keeps whole rendered responses for a fixed time.
// Within the TTL the stored bytes are served even if the data behind them
// changed; Clear drops everything at once.
package pagecache

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	log "github.com/sirupsen/logrus"
)

type entry struct {
	status      int
	contentType string
	body        []byte
	expires     time.Time
}

type Cache struct {
	ttl     time.Duration
	entries cmap.ConcurrentMap[string, entry]
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: cmap.New[entry](),
		now:     time.Now,
	}
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) get(key string) (entry, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return e, false
	}
	if !c.now().Before(e.expires) {
		c.entries.RemoveCb(key, func(_ string, v entry, exists bool) bool {
			return exists && !c.now().Before(v.expires)
		})
		return entry{}, false
	}
	return e, true
}

func (c *Cache) set(key string, e entry) {
	e.expires = c.now().Add(c.ttl)
	c.entries.Set(key, e)
}

// Clear invalidates all entries immediately
func (c *Cache) Clear() {
	c.entries.Clear()
	log.Debug("[pagecache] cleared")
}

func (c *Cache) Len() int {
	return c.entries.Count()
}

// DeleteExpired removes stale entries that were never requested again
func (c *Cache) DeleteExpired() (removed int) {
	now := c.now()
	for item := range c.entries.IterBuffered() {
		if now.Before(item.Val.expires) {
			continue
		}
		if c.entries.RemoveCb(item.Key, func(_ string, v entry, exists bool) bool {
			return exists && !now.Before(v.expires)
		}) {
			removed++
		}
	}
	return
}

type KeyFunc func(c *gin.Context) string

// ByURL keys on the full request URI
func ByURL(c *gin.Context) string {
	return c.Request.URL.RequestURI()
}

type cachingWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *cachingWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *cachingWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}

// Handler serves GET requests from the cache and stores successful
// responses under prefix + key.
func (c *Cache) Handler(prefix string, key KeyFunc) gin.HandlerFunc {
	return func(gc *gin.Context) {
		if gc.Request.Method != http.MethodGet {
			gc.Next()
			return
		}
		cacheKey := prefix + ":" + key(gc)
		if e, ok := c.get(cacheKey); ok {
			gc.Data(e.status, e.contentType, e.body)
			gc.Abort()
			return
		}
		w := &cachingWriter{ResponseWriter: gc.Writer}
		gc.Writer = w
		gc.Next()
		gc.Writer = w.ResponseWriter
		if w.Status() != http.StatusOK || len(gc.Errors) > 0 {
			return
		}
		c.set(cacheKey, entry{
			status:      w.Status(),
			contentType: w.Header().Get("Content-Type"),
			body:        w.body,
		})
	}
}
