package handlers

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"blog/store"

	"github.com/pkg/errors"
)

const (
	msgRequired      = "This field is required."
	msgInvalidGroup  = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidName   = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgUsernameTaken = "A user with that username already exists."
	msgShortPassword = "This password is too short. It must contain at least 8 characters."
	msgPasswordMatch = "The two password fields didn't match."
	msgBadLogin      = "Please enter a correct username and password."

	maxUsernameLength = 150
	minPasswordLength = 8
)

var usernameRegexp = regexp.MustCompile(`^[\w.@+-]+$`)

// FormErrors maps a field name to its message, "" holds form level errors
type FormErrors map[string]string

func (e FormErrors) Valid() bool {
	return len(e) == 0
}

type PostForm struct {
	Text  string `form:"text" json:"text"`
	Group string `form:"group" json:"group"`
}

// clean trims the text and resolves the optional group
func (f *PostForm) clean(ctx context.Context, groups store.GroupRepository) (groupID *uint64, errs FormErrors, err error) {
	errs = FormErrors{}
	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		errs["text"] = msgRequired
	}
	f.Group = strings.TrimSpace(f.Group)
	if f.Group == "" {
		return nil, errs, nil
	}
	id, convErr := strconv.ParseUint(f.Group, 10, 64)
	if convErr != nil {
		errs["group"] = msgInvalidGroup
		return nil, errs, nil
	}
	group, err := groups.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		errs["group"] = msgInvalidGroup
		return nil, errs, nil
	}
	if err != nil {
		return nil, errs, err
	}
	return &group.ID, errs, nil
}

type CommentForm struct {
	Text string `form:"text" json:"text"`
}

func (f *CommentForm) clean() FormErrors {
	errs := FormErrors{}
	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		errs["text"] = msgRequired
	}
	return errs
}

type AccountForm struct {
	Username        string `form:"username" json:"username"`
	Password        string `form:"password" json:"-"`
	PasswordConfirm string `form:"password_confirm" json:"-"`
}

func (f *AccountForm) cleanLogin() FormErrors {
	errs := FormErrors{}
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" {
		errs["username"] = msgRequired
	}
	if f.Password == "" {
		errs["password"] = msgRequired
	}
	return errs
}

func (f *AccountForm) cleanSignup() FormErrors {
	errs := f.cleanLogin()
	if _, ok := errs["username"]; !ok {
		if utf8.RuneCountInString(f.Username) > maxUsernameLength || !usernameRegexp.MatchString(f.Username) {
			errs["username"] = msgInvalidName
		}
	}
	if _, ok := errs["password"]; !ok && utf8.RuneCountInString(f.Password) < minPasswordLength {
		errs["password"] = msgShortPassword
	}
	if f.Password != f.PasswordConfirm {
		errs["password_confirm"] = msgPasswordMatch
	}
	return errs
}
