package handlers

import (
	"time"

	"blog/models"
	"blog/paginate"
	"blog/storage"
)

type UserInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type GroupInfo struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostInfo struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	PubDate     time.Time  `json:"pub_date"`
	Author      UserInfo   `json:"author"`
	Group       *GroupInfo `json:"group,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	ThumbURL    string     `json:"thumb_url,omitempty"`
	ImageWidth  uint16     `json:"image_width,omitempty"`
	ImageHeight uint16     `json:"image_height,omitempty"`
}

type CommentInfo struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    UserInfo  `json:"author"`
}

type FeedView struct {
	Title string                  `json:"title"`
	Page  paginate.Page[PostInfo] `json:"page"`
}

type GroupView struct {
	Group GroupInfo               `json:"group"`
	Page  paginate.Page[PostInfo] `json:"page"`
}

type ProfileView struct {
	Author         UserInfo                `json:"author"`
	Page           paginate.Page[PostInfo] `json:"page"`
	PostCount      int64                   `json:"post_count"`
	FollowerCount  int64                   `json:"follower_count"`
	FollowingCount int64                   `json:"following_count"`
	Following      bool                    `json:"following"`
	CanFollow      bool                    `json:"can_follow"`
}

type PostDetailView struct {
	Post            PostInfo      `json:"post"`
	IsAuthor        bool          `json:"is_author"`
	AuthorPostCount int64         `json:"author_post_count"`
	Comments        []CommentInfo `json:"comments"`
	Form            CommentForm   `json:"form"`
	CSRFToken       string        `json:"csrf_token,omitempty"`
}

type PostFormView struct {
	Form      PostForm    `json:"form"`
	Errors    FormErrors  `json:"errors"`
	Groups    []GroupInfo `json:"groups"`
	IsEdit    bool        `json:"is_edit"`
	PostID    uint64      `json:"post_id,omitempty"`
	ImageURL  string      `json:"image_url,omitempty"`
	CSRFToken string      `json:"csrf_token"`
}

type AccountView struct {
	Form      AccountForm `json:"form"`
	Errors    FormErrors  `json:"errors"`
	Next      string      `json:"next,omitempty"`
	CSRFToken string      `json:"csrf_token"`
}

type ErrorView struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Path   string `json:"path,omitempty"`
}

func userInfo(u models.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Name: u.DisplayName()}
}

func groupInfo(g models.Group) GroupInfo {
	return GroupInfo{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func postInfo(p models.Post, media storage.StorageAPI) PostInfo {
	info := PostInfo{
		ID:      p.ID,
		Title:   p.String(),
		Text:    p.Text,
		PubDate: p.PubDate,
		Author:  userInfo(p.Author),
	}
	if p.Group != nil {
		g := groupInfo(*p.Group)
		info.Group = &g
	}
	if p.HasImage() {
		info.ImageURL = media.URL(p.Image)
		info.ImageWidth, info.ImageHeight = p.ImageWidth, p.ImageHeight
		info.ThumbURL = info.ImageURL
		if p.Thumb != "" {
			info.ThumbURL = media.URL(p.Thumb)
		}
	}
	return info
}

func commentInfo(c models.Comment) CommentInfo {
	return CommentInfo{ID: c.ID, Text: c.Text, CreatedAt: c.CreatedAt, Author: userInfo(c.Author)}
}
