package auth

import (
	"blog/access"
	"blog/models"
	"blog/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	userIdKey      = "id"
	userContextKey = "user"
)

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Clear()
	s.Set(userIdKey, user.ID)
	return s.Save()
}

func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = s.Save()
}

func (s *Session) UserID() uint64 {
	id, _ := s.Get(userIdKey).(uint64)
	return id
}

// Identify loads the session user once per request, see CurrentUser
func Identify(users store.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := LoadSession(c)
		if id := session.UserID(); id != 0 {
			user, err := users.GetByID(c.Request.Context(), id)
			switch {
			case err == nil:
				c.Set(userContextKey, &user)
			case errors.Is(err, store.ErrNotFound):
				session.LogoutUser()
			default:
				log.Errorf("[Identify] cannot load user %d: %v", id, err)
			}
		}
		c.Next()
	}
}

// CurrentUser returns nil for anonymous requests
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func CurrentIdentity(c *gin.Context) access.Identity {
	return access.IdentityOf(CurrentUser(c))
}
