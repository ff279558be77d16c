package routes

import (
	"net/http"
	"strconv"
	"strings"

	"blog/auth"
	"blog/config"
	"blog/handlers"
	"blog/pagecache"
	"blog/render"
	"blog/storage"
	"blog/store"
	"blog/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"
)

const (
	sessionCookieName = "token"
	indexCachePrefix  = "index_page"
)

type Deps struct {
	Store      *store.Store
	Storage    storage.StorageAPI
	Sessions   sessions.Store
	CSRFSecret string
	Cache      *pagecache.Cache
}

// SessionOptions keeps the session cookie away from scripts and from
// cross-site subrequests
func SessionOptions() sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   config.SESSION_MAX_AGE,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// bodyLimit leaves room for the other form fields next to the largest upload
func bodyLimit() int64 {
	return int64(config.MAX_UPLOAD_SIZE) + 1<<20
}

// viewerKey separates cached pages per user, the navigation differs
func viewerKey(c *gin.Context) string {
	return strconv.FormatUint(auth.CurrentIdentity(c).UserID, 10) + ":" + pagecache.ByURL(c)
}

// Setup installs templates, the per request middleware and every route
func Setup(router *gin.Engine, deps Deps) (*handlers.Handlers, error) {
	if err := render.Install(router); err != nil {
		return nil, err
	}
	h := handlers.New(deps.Store, deps.Storage, render.Negotiator{})

	deps.Sessions.Options(SessionOptions())
	router.Use(gin.CustomRecovery(h.Recover))
	router.Use(utils.BodyLimit(bodyLimit()))
	router.Use(sessions.Sessions(sessionCookieName, deps.Sessions))
	router.Use(auth.Identify(deps.Store.Users))
	// Every POST carries the _csrf form field or the X-CSRF-TOKEN header
	router.Use(csrf.Middleware(csrf.Options{
		Secret:    deps.CSRFSecret,
		ErrorFunc: h.Forbidden,
	}))
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, media overrides that
	router.NoRoute(h.NotFound)

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}

	// Posts
	router.GET("/", deps.Cache.Handler(indexCachePrefix, viewerKey), h.Index)
	router.GET("/group/:slug/", h.GroupPosts)
	router.GET("/posts/:id/", h.PostDetail)
	authRouter.Form("/create/", h.PostCreate)
	authRouter.Form("/posts/:id/edit/", h.PostEdit)
	authRouter.POST("/posts/:id/comment/", h.AddComment)
	// Profiles and follow edges
	router.GET("/profile/:username/", h.Profile)
	authRouter.GET("/profile/:username/follow/", h.ProfileFollow)
	authRouter.GET("/profile/:username/unfollow/", h.ProfileUnfollow)
	authRouter.GET("/follow/", h.FollowIndex)
	// Accounts
	router.GET("/auth/login/", h.Login)
	router.POST("/auth/login/", h.Login)
	router.GET("/auth/signup/", h.Signup)
	router.POST("/auth/signup/", h.Signup)
	router.GET("/auth/logout/", h.Logout)
	// Misc
	router.GET("/about/author/", h.AboutAuthor)
	router.GET("/about/tech/", h.AboutTech)
	router.GET("/robots.txt", h.Robots)

	// Media is only served by us when MEDIA_URL is local
	if strings.HasPrefix(config.MEDIA_URL, "/") {
		media := router.Group(config.MEDIA_URL, (&utils.CacheRouter{CacheTime: utils.CacheMedia, Public: true}).Handler())
		media.GET("/*path", h.ServeMedia)
	}
	return h, nil
}
