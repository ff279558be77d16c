// Package render turns handler view models into responses. Pages are HTML
// templates embedded in the binary; adding ?format=json to any page returns
// the view model itself.
package render

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"blog/auth"
	"blog/models"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const formatParam = "format"

type Renderer interface {
	Render(c *gin.Context, status int, name string, view any)
}

// Data is what every HTML template receives
type Data struct {
	Title  string
	Viewer *models.User
	Path   string
	View   any
}

var titles = map[string]string{
	"index":        "Latest updates",
	"group_list":   "Group posts",
	"profile":      "Profile",
	"post_detail":  "Post",
	"create_post":  "New post",
	"follow":       "Following",
	"login":        "Log in",
	"signup":       "Sign up",
	"about_author": "About the author",
	"about_tech":   "Technologies",
	"404":          "Page not found",
	"error":        "Error",
	"500":          "Server error",
}

var funcs = template.FuncMap{
	"linebreaks": linebreaks,
	"date":       formatDate,
}

func linebreaks(text string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// Templates parses every page and partial, page templates are named after
// their file: "index.tmpl", "post_detail.tmpl", ...
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}

// Install sets the templates on the engine
func Install(engine *gin.Engine) error {
	t, err := Templates()
	if err != nil {
		return err
	}
	engine.SetHTMLTemplate(t)
	return nil
}

// Negotiator renders HTML unless JSON was asked for
type Negotiator struct{}

func (Negotiator) Render(c *gin.Context, status int, name string, view any) {
	if c.Query(formatParam) == "json" {
		c.JSON(status, view)
		return
	}
	title, ok := titles[name]
	if !ok {
		title = name
	}
	c.HTML(status, name+".tmpl", Data{
		Title:  title,
		Viewer: auth.CurrentUser(c),
		Path:   c.Request.URL.Path,
		View:   view,
	})
}
