package sqlite

import (
	"context"
	"fmt"

	"postboard/internal/model"
	"postboard/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"
)

type PostStorage struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewPostStorage(db *sqlx.DB, getter *trmsqlx.CtxGetter) *PostStorage {
	return &PostStorage{db: db, getter: getter}
}

func postCol(c string) string { return tableinfo.Col(tableinfo.PostsTableName, c) }

func selectPosts() sq.SelectBuilder {
	as := func(col, alias string) string { return col + " AS " + alias }

	return psql.
		Select(
			as(postCol(tableinfo.PostIDColumn), "id"),
			as(postCol(tableinfo.PostAuthorIDColumn), "author_id"),
			as(postCol(tableinfo.PostPostTypeIDColumn), "post_type_id"),
			as(postCol(tableinfo.PostTitleColumn), "title"),
			as(postCol(tableinfo.PostContentColumn), "content"),
			as(postCol(tableinfo.PostCreatedAtColumn), "created_at"),
			as(postCol(tableinfo.PostUpdatedAtColumn), "updated_at"),
			as(tableinfo.Col(tableinfo.UsersTableName, tableinfo.UserUsernameColumn), "author_username"),
			as(tableinfo.Col(tableinfo.PostTypesTableName, tableinfo.PostTypeNameColumn), "post_type_name"),
		).
		From(tableinfo.PostsTableName).
		Join(fmt.Sprintf("%s ON %s = %s",
			tableinfo.UsersTableName,
			tableinfo.Col(tableinfo.UsersTableName, tableinfo.UserIDColumn),
			postCol(tableinfo.PostAuthorIDColumn),
		)).
		Join(fmt.Sprintf("%s ON %s = %s",
			tableinfo.PostTypesTableName,
			tableinfo.Col(tableinfo.PostTypesTableName, tableinfo.PostTypeIDColumn),
			postCol(tableinfo.PostPostTypeIDColumn),
		))
}

func (s *PostStorage) CreatePost(ctx context.Context, in model.Post) (model.Post, error) {
	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	id, err := insertID(ctx, tr, "exec insert post", psql.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostAuthorIDColumn,
			tableinfo.PostPostTypeIDColumn,
			tableinfo.PostTitleColumn,
			tableinfo.PostContentColumn,
			tableinfo.PostCreatedAtColumn,
		).
		Values(in.AuthorID, in.PostTypeID, in.Title, in.Content, now()))
	if err != nil {
		return model.Post{}, err
	}
	return s.GetPostByID(ctx, id)
}

func (s *PostStorage) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	query, args, err := selectPosts().
		Where(sq.Eq{postCol(tableinfo.PostIDColumn): postID}).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var row postRow
	if err := sqlx.GetContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &row, query, args...); err != nil {
		return model.Post{}, mapError("exec select post by id", err)
	}
	return row.toModel(), nil
}

func (s *PostStorage) GetPosts(ctx context.Context) ([]model.Post, error) {
	query, args, err := selectPosts().
		OrderBy(
			postCol(tableinfo.PostCreatedAtColumn)+" DESC",
			postCol(tableinfo.PostIDColumn)+" DESC",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var rows []postRow
	if err := sqlx.SelectContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("exec error selecting posts: %w", err)
	}

	out := make([]model.Post, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *PostStorage) GetPostAuthorID(ctx context.Context, postID int64) (int64, error) {
	query, args, err := psql.
		Select(tableinfo.PostAuthorIDColumn).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var authorID int64
	if err := sqlx.GetContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &authorID, query, args...); err != nil {
		return 0, mapError("exec select author_id", err)
	}
	return authorID, nil
}

func (s *PostStorage) UpdatePost(ctx context.Context, in model.Post) (model.Post, error) {
	err := execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec update post", psql.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostPostTypeIDColumn, in.PostTypeID).
		Set(tableinfo.PostTitleColumn, in.Title).
		Set(tableinfo.PostContentColumn, in.Content).
		Set(tableinfo.PostUpdatedAtColumn, now()).
		Where(sq.Eq{tableinfo.PostIDColumn: in.ID}))
	if err != nil {
		return model.Post{}, err
	}
	return s.GetPostByID(ctx, in.ID)
}

// DeletePost relies on ON DELETE CASCADE for the post's comments.
func (s *PostStorage) DeletePost(ctx context.Context, postID int64) error {
	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec delete post", psql.
		Delete(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}))
}
