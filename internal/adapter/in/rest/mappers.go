package rest

import (
	"time"

	"postboard/internal/model"
)

type userDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type userWithPostCountDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	PostCount int64     `json:"post_count"`
}

type postTypeDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type postDTO struct {
	ID             int64      `json:"id"`
	AuthorID       int64      `json:"author_id"`
	PostTypeID     int64      `json:"post_type_id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
	AuthorUsername string     `json:"author_username,omitempty"`
	PostTypeName   string     `json:"post_type_name,omitempty"`
}

type commentDTO struct {
	ID             int64      `json:"id"`
	PostID         int64      `json:"post_id"`
	AuthorID       int64      `json:"author_id"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
	AuthorUsername string     `json:"author_username,omitempty"`
}

type userMessageBody struct {
	Message string  `json:"message"`
	User    userDTO `json:"user"`
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordBody struct {
	UserID          *int64 `json:"userId"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type postTypeBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type postBody struct {
	PostTypeID int64  `json:"post_type_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

type commentBody struct {
	PostID  int64  `json:"post_id"`
	Content string `json:"content"`
}

func toUserDTO(u model.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

func toUserWithPostCountDTOs(in []model.UserWithPostCount) []userWithPostCountDTO {
	out := make([]userWithPostCountDTO, 0, len(in))
	for _, u := range in {
		out = append(out, userWithPostCountDTO{
			ID:        u.ID,
			Username:  u.Username,
			CreatedAt: u.CreatedAt,
			PostCount: u.PostCount,
		})
	}
	return out
}

func toPostTypeDTO(pt model.PostType) postTypeDTO {
	return postTypeDTO{ID: pt.ID, Name: pt.Name, Description: pt.Description}
}

func toPostTypeDTOs(in []model.PostType) []postTypeDTO {
	out := make([]postTypeDTO, 0, len(in))
	for _, pt := range in {
		out = append(out, toPostTypeDTO(pt))
	}
	return out
}

func toPostDTO(p model.Post) postDTO {
	return postDTO{
		ID:             p.ID,
		AuthorID:       p.AuthorID,
		PostTypeID:     p.PostTypeID,
		Title:          p.Title,
		Content:        p.Content,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		AuthorUsername: p.AuthorUsername,
		PostTypeName:   p.PostTypeName,
	}
}

func toPostDTOs(in []model.Post) []postDTO {
	out := make([]postDTO, 0, len(in))
	for _, p := range in {
		out = append(out, toPostDTO(p))
	}
	return out
}

func toCommentDTO(c model.Comment) commentDTO {
	return commentDTO{
		ID:             c.ID,
		PostID:         c.PostID,
		AuthorID:       c.AuthorID,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		AuthorUsername: c.AuthorUsername,
	}
}

func toCommentDTOs(in []model.Comment) []commentDTO {
	out := make([]commentDTO, 0, len(in))
	for _, c := range in {
		out = append(out, toCommentDTO(c))
	}
	return out
}
