package models

import "time"

// Post carries the author's name and avatar as they were at creation time.
type Post struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

func (p *Post) OwnerID() string {
	if p == nil {
		return ""
	}
	return p.UserID
}

// Like is unique per (post, user).
type Like struct {
	UserID string `json:"user"`
}

type Comment struct {
	ID        string    `json:"_id"`
	PostID    string    `json:"-"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

func (c *Comment) OwnerID() string {
	if c == nil {
		return ""
	}
	return c.UserID
}
