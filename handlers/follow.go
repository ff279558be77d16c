package handlers

import (
	"net/http"

	"blog/access"
	"blog/models"
	"blog/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const followIndexPath = "/follow/"

func (h *Handlers) FollowIndex(c *gin.Context, user *models.User) {
	if !h.allowed(c, access.FollowFeed(access.IdentityOf(user)), "/") {
		return
	}
	page, err := h.postPage(c, store.PostFilter{FollowerID: user.ID})
	if err != nil {
		h.serverError(c, "followIndex", err)
		return
	}
	h.Render.Render(c, http.StatusOK, "follow", FeedView{
		Title: "Posts of the authors you follow",
		Page:  page,
	})
}

// ProfileFollow ignores self-follows and repeated follows
func (h *Handlers) ProfileFollow(c *gin.Context, user *models.User) {
	ctx := c.Request.Context()
	author, err := h.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, "profileFollow", err)
		return
	}
	exists, err := h.Follows.Exists(ctx, user.ID, author.ID)
	if err != nil {
		h.serverError(c, "profileFollow", err)
		return
	}
	if !h.allowed(c, access.Follow(access.IdentityOf(user), author, exists), profilePath(author.Username)) {
		return
	}
	created, err := h.Follows.Follow(ctx, user.ID, author.ID)
	if err != nil {
		h.serverError(c, "profileFollow", err)
		return
	}
	if created {
		log.Debugf("[profileFollow] %s follows %s", user.Username, author.Username)
	}
	c.Redirect(http.StatusFound, profilePath(author.Username))
}

func (h *Handlers) ProfileUnfollow(c *gin.Context, user *models.User) {
	ctx := c.Request.Context()
	author, err := h.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, "profileUnfollow", err)
		return
	}
	if !h.allowed(c, access.Unfollow(access.IdentityOf(user)), followIndexPath) {
		return
	}
	if err = h.Follows.Unfollow(ctx, user.ID, author.ID); err != nil {
		h.serverError(c, "profileUnfollow", err)
		return
	}
	c.Redirect(http.StatusFound, followIndexPath)
}
