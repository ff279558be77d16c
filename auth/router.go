package auth

import (
	"net/http"
	"net/url"
	"strings"

	"blog/access"
	"blog/config"
	"blog/models"

	"github.com/gin-gonic/gin"
)

// HandlerFunc is only called for authenticated users
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper that sends anonymous users to the login page and
// hands the loaded User to the handler.
type Router struct {
	Base gin.IRoutes
}

func (r *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	user := CurrentUser(c)
	if access.IdentityOf(user).Anonymous() {
		RedirectToLogin(c)
		return
	}
	handler(c, user)
}

func (r *Router) wrap(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		r.baseExec(c, handler)
	}
}

func (r *Router) GET(path string, handler HandlerFunc) {
	r.Base.GET(path, r.wrap(handler))
}

func (r *Router) POST(path string, handler HandlerFunc) {
	r.Base.POST(path, r.wrap(handler))
}

// Form registers GET and POST, used by form pages
func (r *Router) Form(path string, handler HandlerFunc) {
	r.GET(path, handler)
	r.POST(path, handler)
}

// LoginURL keeps slashes in next readable: /auth/login/?next=/create/
func LoginURL(next string) string {
	if next == "" {
		return config.LOGIN_URL
	}
	return config.LOGIN_URL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

func RedirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
	c.Abort()
}

// SafeNext accepts local paths only, anything else becomes fallback
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
