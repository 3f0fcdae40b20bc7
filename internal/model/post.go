package model

import "time"

type Post struct {
	ID         int64
	AuthorID   int64
	PostTypeID int64
	Title      string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  *time.Time

	// filled by read queries only
	AuthorUsername string
	PostTypeName   string
}
