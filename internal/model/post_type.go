package model

type PostType struct {
	ID          int64
	Name        string
	Description *string
}
