// Package access decides what an identity may do with posts, comments and
// follow edges. Allowed mutations are the only ones handlers perform.
package access

import "blog/models"

type Decision int

const (
	Allow Decision = iota
	// Deny sends anonymous users to the login page
	Deny
	// Redirect sends authenticated users to a safe page without changes
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// Identity is the acting user, the zero value is anonymous
type Identity struct {
	UserID   uint64
	Username string
}

func IdentityOf(user *models.User) Identity {
	if user == nil || user.ID == 0 {
		return Identity{}
	}
	return Identity{UserID: user.ID, Username: user.Username}
}

func (i Identity) Anonymous() bool {
	return i.UserID == 0
}

// Read is open to everybody
func Read(who Identity) Decision {
	return Allow
}

func authenticated(who Identity) Decision {
	if who.Anonymous() {
		return Deny
	}
	return Allow
}

func CreatePost(who Identity) Decision {
	return authenticated(who)
}

func Comment(who Identity) Decision {
	return authenticated(who)
}

// EditPost allows the author only
func EditPost(who Identity, post models.Post) Decision {
	if who.Anonymous() {
		return Deny
	}
	if post.AuthorID != who.UserID {
		return Redirect
	}
	return Allow
}

// IsAuthor drives the edit link on the detail page
func IsAuthor(who Identity, post models.Post) bool {
	return EditPost(who, post) == Allow
}

// Follow refuses self-follows and repeated follows with a Redirect: they
// are silent no-ops rather than errors.
func Follow(who Identity, author models.User, alreadyFollowing bool) Decision {
	if who.Anonymous() {
		return Deny
	}
	if who.UserID == author.ID || alreadyFollowing {
		return Redirect
	}
	return Allow
}

// Unfollow is idempotent so any authenticated user may try it
func Unfollow(who Identity) Decision {
	return authenticated(who)
}

// FollowFeed lists posts of the authors followed by who
func FollowFeed(who Identity) Decision {
	return authenticated(who)
}
