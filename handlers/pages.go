package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type StaticView struct {
	Title string `json:"title"`
}

func (h *Handlers) AboutAuthor(c *gin.Context) {
	h.Render.Render(c, http.StatusOK, "about_author", StaticView{Title: "About the author"})
}

func (h *Handlers) AboutTech(c *gin.Context) {
	h.Render.Render(c, http.StatusOK, "about_tech", StaticView{Title: "Technologies"})
}

// ServeMedia serves uploaded files, S3 storage answers with a redirect
func (h *Handlers) ServeMedia(c *gin.Context) {
	h.Storage.Serve(strings.TrimPrefix(c.Param("path"), "/"), c.Request, c.Writer)
}

func (h *Handlers) Robots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /auth/\n")
}
