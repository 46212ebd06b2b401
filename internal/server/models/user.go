package models

import "time"

// User is an account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"date"`
}

func (u *User) OwnerID() string {
	if u == nil {
		return ""
	}
	return u.ID
}
