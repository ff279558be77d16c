package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"blog/access"
	"blog/auth"
	"blog/config"
	"blog/media"
	"blog/paginate"
	"blog/render"
	"blog/storage"
	"blog/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Handlers holds everything request handlers need, routes wires it up
type Handlers struct {
	Users    store.UserRepository
	Groups   store.GroupRepository
	Posts    store.PostRepository
	Comments store.CommentRepository
	Follows  store.FollowRepository
	Storage  storage.StorageAPI
	Media    *media.Uploader
	Render   render.Renderer
	PerPage  int
}

func New(s *store.Store, files storage.StorageAPI, r render.Renderer) *Handlers {
	return &Handlers{
		Users:    s.Users,
		Groups:   s.Groups,
		Posts:    s.Posts,
		Comments: s.Comments,
		Follows:  s.Follows,
		Storage:  files,
		Media: &media.Uploader{
			Storage:   files,
			ThumbSize: uint(config.THUMB_SIZE),
			MaxSize:   int64(config.MAX_UPLOAD_SIZE),
		},
		Render:  r,
		PerPage: config.POSTS_PER_PAGE,
	}
}

// postPage counts, locates and loads the requested page of posts
func (h *Handlers) postPage(c *gin.Context, filter store.PostFilter) (paginate.Page[PostInfo], error) {
	ctx := c.Request.Context()
	total, err := h.Posts.Count(ctx, filter)
	if err != nil {
		return paginate.Page[PostInfo]{}, err
	}
	w := paginate.Locate(total, c.Query("page"), h.PerPage)
	var infos []PostInfo
	if w.Limit > 0 {
		posts, err := h.Posts.List(ctx, filter, w.Offset, w.Limit)
		if err != nil {
			return paginate.Page[PostInfo]{}, err
		}
		infos = make([]PostInfo, 0, len(posts))
		for _, p := range posts {
			infos = append(infos, postInfo(p, h.Storage))
		}
	}
	return paginate.New(w, infos), nil
}

// allowed performs the redirect for anything but access.Allow
func (h *Handlers) allowed(c *gin.Context, decision access.Decision, safePath string) bool {
	switch decision {
	case access.Allow:
		return true
	case access.Deny:
		auth.RedirectToLogin(c)
	default:
		c.Redirect(http.StatusFound, safePath)
	}
	return false
}

func (h *Handlers) NotFound(c *gin.Context) {
	h.Render.Render(c, http.StatusNotFound, "404", ErrorView{
		Status: http.StatusNotFound,
		Error:  "Not Found",
		Path:   c.Request.URL.Path,
	})
}

func (h *Handlers) serverError(c *gin.Context, where string, err error) {
	log.Errorf("[%s] %v", where, err)
	_ = c.Error(err)
	h.Render.Render(c, http.StatusInternalServerError, "500", ErrorView{
		Status: http.StatusInternalServerError,
		Error:  "Internal Server Error",
	})
}

// Forbidden answers a failed CSRF check
func (h *Handlers) Forbidden(c *gin.Context) {
	log.Warnf("[csrf] rejected %s %s", c.Request.Method, c.Request.URL.Path)
	h.Render.Render(c, http.StatusForbidden, "error", ErrorView{
		Status: http.StatusForbidden,
		Error:  "Forbidden",
		Reason: "CSRF verification failed. Request aborted.",
	})
	c.Abort()
}

// bind parses the submitted form. A body that cannot be parsed gets 400,
// one cut off by the body limit gets 413.
func (h *Handlers) bind(c *gin.Context, where string, form any) bool {
	err := c.ShouldBind(form)
	if err == nil {
		return true
	}
	log.Debugf("[%s] cannot bind form: %v", where, err)
	status := http.StatusBadRequest
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	h.Render.Render(c, status, "error", ErrorView{Status: status, Error: http.StatusText(status)})
	return false
}

// fail renders 404 for missing records and 500 for everything else
func (h *Handlers) fail(c *gin.Context, where string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(c)
		return
	}
	h.serverError(c, where, err)
}

// Recover is used with gin.CustomRecovery
func (h *Handlers) Recover(c *gin.Context, recovered any) {
	h.serverError(c, "recover", errors.Errorf("panic serving %s: %v", c.Request.URL.Path, recovered))
	c.Abort()
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postPath(id uint64) string {
	return "/posts/" + formatID(id) + "/"
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
