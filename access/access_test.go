package access

import (
	"testing"

	"blog/models"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous = Identity{}
	author    = Identity{UserID: 1, Username: "auth"}
	stranger  = Identity{UserID: 2, Username: "stranger"}
)

func TestIdentityOf(t *testing.T) {
	assert.True(t, IdentityOf(nil).Anonymous())
	assert.True(t, IdentityOf(&models.User{}).Anonymous())
	assert.Equal(t, author, IdentityOf(&models.User{ID: 1, Username: "auth"}))
}

func TestEditPost(t *testing.T) {
	post := models.Post{ID: 10, AuthorID: author.UserID}
	tests := []struct {
		name string
		who  Identity
		want Decision
	}{
		{name: "anonymous", who: anonymous, want: Deny},
		{name: "author", who: author, want: Allow},
		{name: "other user", who: stranger, want: Redirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EditPost(tt.who, post))
			assert.Equal(t, tt.want == Allow, IsAuthor(tt.who, post))
		})
	}
}

func TestAuthenticatedOnly(t *testing.T) {
	rules := map[string]func(Identity) Decision{
		"create post": CreatePost,
		"comment":     Comment,
		"unfollow":    Unfollow,
		"follow feed": FollowFeed,
	}
	for name, rule := range rules {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Deny, rule(anonymous))
			assert.Equal(t, Allow, rule(stranger))
		})
	}
	assert.Equal(t, Allow, Read(anonymous))
}

func TestFollow(t *testing.T) {
	target := models.User{ID: author.UserID, Username: author.Username}
	tests := []struct {
		name      string
		who       Identity
		following bool
		want      Decision
	}{
		{name: "anonymous", who: anonymous, want: Deny},
		{name: "new follow", who: stranger, want: Allow},
		{name: "already following", who: stranger, following: true, want: Redirect},
		{name: "self", who: author, want: Redirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Follow(tt.who, target, tt.following))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny", Deny.String())
	assert.Equal(t, "redirect", Redirect.String())
}
