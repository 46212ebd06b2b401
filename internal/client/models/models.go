// Package models holds the client-side view of API resources.
package models

import "time"

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

type Like struct {
	UserID string `json:"user"`
}

type Comment struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

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

type ProfileUser struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Experience struct {
	ID      string     `json:"_id"`
	Title   string     `json:"title"`
	Company string     `json:"company"`
	From    time.Time  `json:"from"`
	To      *time.Time `json:"to,omitempty"`
	Current bool       `json:"current"`
}

type Education struct {
	ID           string     `json:"_id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
}

type Profile struct {
	ID             string       `json:"_id"`
	User           ProfileUser  `json:"user"`
	Company        string       `json:"company"`
	Website        string       `json:"website"`
	Location       string       `json:"location"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	Bio            string       `json:"bio"`
	GitHubUsername string       `json:"githubusername"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
}

// ProfileInput is the body of a create/update profile request.
type ProfileInput struct {
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	Bio            string `json:"bio,omitempty"`
	GitHubUsername string `json:"githubusername,omitempty"`
}

// AvatarUpload is a presigned upload slot for a custom avatar.
type AvatarUpload struct {
	UploadURL string    `json:"uploadUrl"`
	AvatarURL string    `json:"avatar"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires"`
}
