package auth

import "time"

const UsersKey = "users"

const MinPasswordLength = 6

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) RecordID() int { return u.ID }

func (u User) WithRecordID(id int) User {
	u.ID = id
	return u
}

// UserContext is the authenticated caller attached to a request.
type UserContext struct {
	UserID   int
	Username string
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserView  `json:"user"`
}

type UserView struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
