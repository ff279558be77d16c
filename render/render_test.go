package render_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog/handlers"
	"blog/models"
	"blog/paginate"
	"blog/render"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePosts(n int) []handlers.PostInfo {
	posts := make([]handlers.PostInfo, 0, n)
	for i := 1; i <= n; i++ {
		posts = append(posts, handlers.PostInfo{
			ID:       uint64(i),
			Title:    "post",
			Text:     "line one\nline <two>",
			PubDate:  time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
			Author:   handlers.UserInfo{ID: 1, Username: "auth", Name: "auth"},
			Group:    &handlers.GroupInfo{ID: 1, Title: "Group", Slug: "test-slug"},
			ThumbURL: "/media/posts/thumbs/x.jpg",
		})
	}
	return posts
}

func pageOf(posts []handlers.PostInfo, requested string) paginate.Page[handlers.PostInfo] {
	w := paginate.Locate(int64(len(posts)), requested, 10)
	return paginate.New(w, posts[w.Offset:w.Offset+w.Limit])
}

func TestTemplates(t *testing.T) {
	tmpl, err := render.Templates()
	require.NoError(t, err)

	page := pageOf(samplePosts(13), "2")
	post := samplePosts(1)[0]
	viewer := &models.User{ID: 1, Username: "auth"}
	sized := post
	sized.ImageURL, sized.ImageWidth, sized.ImageHeight = "/media/posts/x.gif", 640, 480

	tests := []struct {
		name   string
		viewer *models.User
		view   any
		want   string
	}{
		{name: "index", view: handlers.FeedView{Title: "Latest", Page: page}, want: `href="?page=1"`},
		{name: "follow", viewer: viewer, view: handlers.FeedView{Title: "Following", Page: pageOf(nil, "")}, want: "You do not follow"},
		{name: "group_list", view: handlers.GroupView{Group: handlers.GroupInfo{Title: "Group", Slug: "test-slug"}, Page: page}, want: "<h1>Group</h1>"},
		{name: "profile", viewer: viewer, view: handlers.ProfileView{Author: handlers.UserInfo{Username: "other", Name: "other"}, Page: page, CanFollow: true}, want: "/profile/other/follow/"},
		{name: "post_detail", viewer: viewer, view: handlers.PostDetailView{Post: post, IsAuthor: true, Comments: []handlers.CommentInfo{{Text: "nice", Author: post.Author}}}, want: "line one<br>line &lt;two&gt;"},
		{name: "post_detail", viewer: viewer, view: handlers.PostDetailView{Post: post, CSRFToken: "tok3n"}, want: `<input type="hidden" name="_csrf" value="tok3n">`},
		{name: "post_detail", view: handlers.PostDetailView{Post: sized}, want: `<img src="/media/posts/x.gif" width="640" height="480" alt="">`},
		{name: "create_post", viewer: viewer, view: handlers.PostFormView{Form: handlers.PostForm{Group: "1"}, Errors: handlers.FormErrors{"text": "This field is required."}, Groups: []handlers.GroupInfo{{ID: 1, Title: "Group"}}}, want: `value="1" selected`},
		{name: "create_post", viewer: viewer, view: handlers.PostFormView{CSRFToken: "tok3n"}, want: `name="_csrf" value="tok3n"`},
		{name: "login", view: handlers.AccountView{Errors: handlers.FormErrors{"": "bad login"}, Next: "/create/"}, want: "bad login"},
		{name: "login", view: handlers.AccountView{CSRFToken: "tok3n"}, want: `name="_csrf" value="tok3n"`},
		{name: "signup", view: handlers.AccountView{Errors: handlers.FormErrors{}}, want: "password_confirm"},
		{name: "signup", view: handlers.AccountView{CSRFToken: "tok3n"}, want: `name="_csrf" value="tok3n"`},
		{name: "error", view: handlers.ErrorView{Status: 403, Error: "Forbidden", Reason: "CSRF verification failed."}, want: "CSRF verification failed."},
		{name: "about_author", view: handlers.StaticView{Title: "About the author"}, want: "About the author"},
		{name: "about_tech", view: handlers.StaticView{Title: "Technologies"}, want: "gorm"},
		{name: "404", view: handlers.ErrorView{Path: "/missing/"}, want: "/missing/"},
		{name: "500", view: handlers.ErrorView{}, want: "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tmpl.ExecuteTemplate(&buf, tt.name+".tmpl", render.Data{Title: tt.name, Viewer: tt.viewer, View: tt.view})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
			assert.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "</html>"))
		})
	}
}

func TestNegotiator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	require.NoError(t, render.Install(engine))
	engine.GET("/about/", func(c *gin.Context) {
		render.Negotiator{}.Render(c, http.StatusOK, "about_author", handlers.StaticView{Title: "About the author"})
	})

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/about/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "<title>About the author | Blog</title>")

	rr = httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/about/?format=json", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"title":"About the author"}`, rr.Body.String())
}
