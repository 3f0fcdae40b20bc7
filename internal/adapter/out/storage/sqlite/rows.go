package sqlite

import (
	"time"

	"postboard/internal/model"
)

type userRow struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toModel() model.User {
	return model.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

type userWithPostCountRow struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
	PostCount int64     `db:"post_count"`
}

type postTypeRow struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
}

func (r postTypeRow) toModel() model.PostType {
	return model.PostType{ID: r.ID, Name: r.Name, Description: r.Description}
}

type postRow struct {
	ID             int64      `db:"id"`
	AuthorID       int64      `db:"author_id"`
	PostTypeID     int64      `db:"post_type_id"`
	Title          string     `db:"title"`
	Content        string     `db:"content"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
	AuthorUsername string     `db:"author_username"`
	PostTypeName   string     `db:"post_type_name"`
}

func (r postRow) toModel() model.Post {
	return model.Post{
		ID:             r.ID,
		AuthorID:       r.AuthorID,
		PostTypeID:     r.PostTypeID,
		Title:          r.Title,
		Content:        r.Content,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		AuthorUsername: r.AuthorUsername,
		PostTypeName:   r.PostTypeName,
	}
}

type commentRow struct {
	ID             int64      `db:"id"`
	PostID         int64      `db:"post_id"`
	AuthorID       int64      `db:"author_id"`
	Content        string     `db:"content"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
	AuthorUsername string     `db:"author_username"`
}

func (r commentRow) toModel() model.Comment {
	return model.Comment{
		ID:             r.ID,
		PostID:         r.PostID,
		AuthorID:       r.AuthorID,
		Content:        r.Content,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		AuthorUsername: r.AuthorUsername,
	}
}
