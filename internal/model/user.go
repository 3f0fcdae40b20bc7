package model

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Public returns a copy without the password hash.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

type UserWithPostCount struct {
	ID        int64
	Username  string
	CreatedAt time.Time
	PostCount int64
}
