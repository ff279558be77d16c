package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"blog/config"
	"blog/db"
	"blog/models"
	"blog/pagecache"
	"blog/routes"
	"blog/storage"
	"blog/store"
	"blog/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func setupLogging() {
	level, err := log.ParseLevel(config.LOG_LEVEL)
	if err != nil {
		level = log.InfoLevel
	}
	if config.DEBUG_MODE {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func sessionKey() []byte {
	if config.SESSION_KEY != "" {
		return []byte(config.SESSION_KEY)
	}
	log.Warn("[main] SESSION_KEY is not set, sessions will not survive a restart")
	return []byte(utils.RandSalt(32))
}

// watchCache drops expired entries periodically and everything on SIGHUP
func watchCache(cache *pagecache.Cache) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	ticker := time.NewTicker(cache.TTL())
	defer ticker.Stop()
	for {
		select {
		case <-hup:
			cache.Clear()
			log.Info("[main] page cache cleared")
		case <-ticker.C:
			if removed := cache.DeleteExpired(); removed > 0 {
				log.Debugf("[main] %d expired pages removed", removed)
			}
		}
	}
}

func main() {
	setupLogging()
	db.Init()
	if err := models.Migrate(db.Instance); err != nil {
		log.Fatalf("[main] migration failed: %v", err)
	}
	media, err := storage.FromConfig()
	if err != nil {
		log.Fatalf("[main] storage: %v", err)
	}

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	_ = router.SetTrustedProxies([]string{})
	router.Use(utils.RequestLogger)
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "X-CSRF-TOKEN"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{config.MEDIA_URL})))
	}

	key := sessionKey()
	cookieStore := gormsessions.NewStore(db.Instance, true, key)
	cache := pagecache.New(time.Duration(config.INDEX_CACHE_SECONDS) * time.Second)
	go watchCache(cache)

	if _, err = routes.Setup(router, routes.Deps{
		Store:      store.New(db.Instance),
		Storage:    media,
		Sessions:   cookieStore,
		CSRFSecret: string(key),
		Cache:      cache,
	}); err != nil {
		log.Fatalf("[main] routes: %v", err)
	}

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		log.Infof("[main] listening on %s", config.BIND_ADDRESS)
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
