package handlers

import (
	"net/http"

	"blog/access"
	"blog/auth"
	"blog/media"
	"blog/models"
	"blog/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	csrf "github.com/utrack/gin-csrf"
)

func (h *Handlers) Index(c *gin.Context) {
	page, err := h.postPage(c, store.PostFilter{})
	if err != nil {
		h.serverError(c, "index", err)
		return
	}
	h.Render.Render(c, http.StatusOK, "index", FeedView{
		Title: "Latest updates on the site",
		Page:  page,
	})
}

func (h *Handlers) GroupPosts(c *gin.Context) {
	group, err := h.Groups.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, "groupPosts", err)
		return
	}
	page, err := h.postPage(c, store.PostFilter{GroupID: group.ID})
	if err != nil {
		h.serverError(c, "groupPosts", err)
		return
	}
	h.Render.Render(c, http.StatusOK, "group_list", GroupView{
		Group: groupInfo(group),
		Page:  page,
	})
}

func (h *Handlers) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, "profile", err)
		return
	}
	page, err := h.postPage(c, store.PostFilter{AuthorID: author.ID})
	if err != nil {
		h.serverError(c, "profile", err)
		return
	}
	view := ProfileView{
		Author:    userInfo(author),
		Page:      page,
		PostCount: page.Total,
	}
	if view.FollowerCount, err = h.Follows.CountFollowers(ctx, author.ID); err != nil {
		h.serverError(c, "profile", err)
		return
	}
	if view.FollowingCount, err = h.Follows.CountFollowing(ctx, author.ID); err != nil {
		h.serverError(c, "profile", err)
		return
	}
	who := auth.CurrentIdentity(c)
	if !who.Anonymous() {
		if view.Following, err = h.Follows.Exists(ctx, who.UserID, author.ID); err != nil {
			h.serverError(c, "profile", err)
			return
		}
		view.CanFollow = who.UserID != author.ID
	}
	h.Render.Render(c, http.StatusOK, "profile", view)
}

func (h *Handlers) PostDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.NotFound(c)
		return
	}
	ctx := c.Request.Context()
	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		h.fail(c, "postDetail", err)
		return
	}
	view := PostDetailView{
		Post:     postInfo(post, h.Storage),
		IsAuthor: access.IsAuthor(auth.CurrentIdentity(c), post),
		Comments: []CommentInfo{},
	}
	if view.AuthorPostCount, err = h.Posts.Count(ctx, store.PostFilter{AuthorID: post.AuthorID}); err != nil {
		h.serverError(c, "postDetail", err)
		return
	}
	comments, err := h.Comments.ListByPost(ctx, post.ID)
	if err != nil {
		h.serverError(c, "postDetail", err)
		return
	}
	for _, comment := range comments {
		view.Comments = append(view.Comments, commentInfo(comment))
	}
	if auth.CurrentUser(c) != nil {
		view.CSRFToken = csrf.GetToken(c)
	}
	h.Render.Render(c, http.StatusOK, "post_detail", view)
}

func (h *Handlers) groupChoices(c *gin.Context) ([]GroupInfo, error) {
	groups, err := h.Groups.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	infos := make([]GroupInfo, 0, len(groups))
	for _, g := range groups {
		infos = append(infos, groupInfo(g))
	}
	return infos, nil
}

func (h *Handlers) renderPostForm(c *gin.Context, view PostFormView) {
	groups, err := h.groupChoices(c)
	if err != nil {
		h.serverError(c, "postForm", err)
		return
	}
	view.Groups = groups
	view.CSRFToken = csrf.GetToken(c)
	if view.Errors == nil {
		view.Errors = FormErrors{}
	}
	h.Render.Render(c, http.StatusOK, "create_post", view)
}

// saveImage stores the optional "image" upload. Invalid images end up in
// errs, a nil result without errors means nothing was uploaded.
func (h *Handlers) saveImage(c *gin.Context, errs FormErrors) (*media.Saved, error) {
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		errs["image"] = media.ErrUnsupportedImage.Error()
		return nil, nil
	}
	reader, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer reader.Close()
	saved, err := h.Media.Save(reader)
	if errors.Is(err, media.ErrUnsupportedImage) || errors.Is(err, media.ErrTooLarge) {
		errs["image"] = err.Error()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// cleanPost validates the bound post form including the image
func (h *Handlers) cleanPost(c *gin.Context, form PostForm) (groupID *uint64, saved *media.Saved, errs FormErrors, err error) {
	groupID, errs, err = form.clean(c.Request.Context(), h.Groups)
	if err != nil || !errs.Valid() {
		return
	}
	saved, err = h.saveImage(c, errs)
	return
}

func (h *Handlers) PostCreate(c *gin.Context, user *models.User) {
	if !h.allowed(c, access.CreatePost(access.IdentityOf(user)), "/") {
		return
	}
	if c.Request.Method != http.MethodPost {
		h.renderPostForm(c, PostFormView{})
		return
	}
	var form PostForm
	if !h.bind(c, "postCreate", &form) {
		return
	}
	groupID, saved, errs, err := h.cleanPost(c, form)
	if err != nil {
		h.serverError(c, "postCreate", err)
		return
	}
	if !errs.Valid() {
		h.renderPostForm(c, PostFormView{Form: form, Errors: errs})
		return
	}
	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  groupID,
	}
	if saved != nil {
		post.Image, post.Thumb = saved.Path, saved.Thumb
		post.ImageWidth, post.ImageHeight = saved.Width, saved.Height
	}
	if err = h.Posts.Create(c.Request.Context(), &post); err != nil {
		if saved != nil {
			h.Media.Remove(saved.Path, saved.Thumb)
		}
		h.serverError(c, "postCreate", err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(user.Username))
}

func (h *Handlers) PostEdit(c *gin.Context, user *models.User) {
	id, ok := paramID(c, "id")
	if !ok {
		h.NotFound(c)
		return
	}
	ctx := c.Request.Context()
	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		h.fail(c, "postEdit", err)
		return
	}
	if !h.allowed(c, access.EditPost(access.IdentityOf(user), post), postPath(post.ID)) {
		return
	}
	view := PostFormView{IsEdit: true, PostID: post.ID}
	if post.HasImage() {
		view.ImageURL = h.Storage.URL(post.Image)
	}
	if c.Request.Method != http.MethodPost {
		view.Form = PostForm{Text: post.Text}
		if post.GroupID != nil {
			view.Form.Group = formatID(*post.GroupID)
		}
		h.renderPostForm(c, view)
		return
	}
	var form PostForm
	if !h.bind(c, "postEdit", &form) {
		return
	}
	groupID, saved, errs, err := h.cleanPost(c, form)
	if err != nil {
		h.serverError(c, "postEdit", err)
		return
	}
	if !errs.Valid() {
		view.Form, view.Errors = form, errs
		h.renderPostForm(c, view)
		return
	}
	oldImage, oldThumb := post.Image, post.Thumb
	post.Text = form.Text
	post.GroupID = groupID
	if saved != nil {
		post.Image, post.Thumb = saved.Path, saved.Thumb
		post.ImageWidth, post.ImageHeight = saved.Width, saved.Height
	}
	if err = h.Posts.Update(ctx, &post); err != nil {
		if saved != nil {
			h.Media.Remove(saved.Path, saved.Thumb)
		}
		h.serverError(c, "postEdit", err)
		return
	}
	if saved != nil {
		h.Media.Remove(oldImage, oldThumb)
	}
	c.Redirect(http.StatusFound, postPath(post.ID))
}

// AddComment always ends on the detail page, invalid comments are dropped
func (h *Handlers) AddComment(c *gin.Context, user *models.User) {
	id, ok := paramID(c, "id")
	if !ok {
		h.NotFound(c)
		return
	}
	ctx := c.Request.Context()
	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		h.fail(c, "addComment", err)
		return
	}
	if !h.allowed(c, access.Comment(access.IdentityOf(user)), postPath(post.ID)) {
		return
	}
	var form CommentForm
	if !h.bind(c, "addComment", &form) {
		return
	}
	if form.clean().Valid() {
		comment := models.Comment{
			PostID:   post.ID,
			AuthorID: user.ID,
			Text:     form.Text,
		}
		if err = h.Comments.Create(ctx, &comment); err != nil {
			h.serverError(c, "addComment", err)
			return
		}
	}
	c.Redirect(http.StatusFound, postPath(post.ID))
}
