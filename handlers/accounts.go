package handlers

import (
	"net/http"

	"blog/auth"
	"blog/models"
	"blog/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	csrf "github.com/utrack/gin-csrf"
)

func nextParam(c *gin.Context) string {
	if next := c.PostForm("next"); next != "" {
		return next
	}
	return c.Query("next")
}

// renderAccount shows the login or signup form with a fresh CSRF token
func (h *Handlers) renderAccount(c *gin.Context, name string, view AccountView) {
	view.CSRFToken = csrf.GetToken(c)
	h.Render.Render(c, http.StatusOK, name, view)
}

func (h *Handlers) Login(c *gin.Context) {
	view := AccountView{Errors: FormErrors{}, Next: nextParam(c)}
	if c.Request.Method != http.MethodPost {
		h.renderAccount(c, "login", view)
		return
	}
	if !h.bind(c, "login", &view.Form) {
		return
	}
	if view.Errors = view.Form.cleanLogin(); !view.Errors.Valid() {
		h.renderAccount(c, "login", view)
		return
	}
	user, err := h.Users.GetByUsername(c.Request.Context(), view.Form.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(c, "login", err)
		return
	}
	if err != nil || !user.CheckPassword(view.Form.Password) {
		view.Errors[""] = msgBadLogin
		h.renderAccount(c, "login", view)
		return
	}
	h.startSession(c, &user, auth.SafeNext(view.Next, "/"))
}

func (h *Handlers) Signup(c *gin.Context) {
	view := AccountView{Errors: FormErrors{}}
	if c.Request.Method != http.MethodPost {
		h.renderAccount(c, "signup", view)
		return
	}
	if !h.bind(c, "signup", &view.Form) {
		return
	}
	view.Errors = view.Form.cleanSignup()
	ctx := c.Request.Context()
	if _, ok := view.Errors["username"]; !ok {
		_, err := h.Users.GetByUsername(ctx, view.Form.Username)
		switch {
		case err == nil:
			view.Errors["username"] = msgUsernameTaken
		case !errors.Is(err, store.ErrNotFound):
			h.serverError(c, "signup", err)
			return
		}
	}
	if !view.Errors.Valid() {
		h.renderAccount(c, "signup", view)
		return
	}
	user := models.User{Username: view.Form.Username}
	if err := user.SetPassword(view.Form.Password); err != nil {
		h.serverError(c, "signup", err)
		return
	}
	err := h.Users.Create(ctx, &user)
	if errors.Is(err, store.ErrAlreadyExists) {
		view.Errors["username"] = msgUsernameTaken
		h.renderAccount(c, "signup", view)
		return
	}
	if err != nil {
		h.serverError(c, "signup", err)
		return
	}
	log.Infof("[signup] new user %s", user.Username)
	h.startSession(c, &user, "/")
}

func (h *Handlers) startSession(c *gin.Context, user *models.User, next string) {
	if err := auth.LoadSession(c).LoginUser(user); err != nil {
		h.serverError(c, "session", err)
		return
	}
	c.Redirect(http.StatusFound, next)
}

func (h *Handlers) Logout(c *gin.Context) {
	auth.LoadSession(c).LogoutUser()
	c.Redirect(http.StatusFound, "/")
}
