package tableinfo

const (
	UsersTableName = "users"

	UserIDColumn           = "id"
	UserUsernameColumn     = "username"
	UserPasswordHashColumn = "password_hash"
	UserCreatedAtColumn    = "created_at"
)

const (
	PostTypesTableName = "post_types"

	PostTypeIDColumn          = "id"
	PostTypeNameColumn        = "name"
	PostTypeDescriptionColumn = "description"
)

const (
	PostsTableName = "posts"

	PostIDColumn         = "id"
	PostAuthorIDColumn   = "author_id"
	PostPostTypeIDColumn = "post_type_id"
	PostTitleColumn      = "title"
	PostContentColumn    = "content"
	PostCreatedAtColumn  = "created_at"
	PostUpdatedAtColumn  = "updated_at"
)

const (
	CommentsTableName = "comments"

	CommentIDColumn        = "id"
	CommentPostIDColumn    = "post_id"
	CommentAuthorIDColumn  = "author_id"
	CommentContentColumn   = "content"
	CommentCreatedAtColumn = "created_at"
	CommentUpdatedAtColumn = "updated_at"
)

// Col qualifies a column with its table name for joined queries.
func Col(table, column string) string {
	return table + "." + column
}
