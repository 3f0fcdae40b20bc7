package sqlite

import (
	"context"
	"fmt"

	"postboard/internal/adapter/out/storage"
	"postboard/internal/model"
	"postboard/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"
)

type CommentStorage struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewCommentStorage(db *sqlx.DB, getter *trmsqlx.CtxGetter) *CommentStorage {
	return &CommentStorage{db: db, getter: getter}
}

func commentCol(c string) string { return tableinfo.Col(tableinfo.CommentsTableName, c) }

func selectComments() sq.SelectBuilder {
	as := func(col, alias string) string { return col + " AS " + alias }

	return psql.
		Select(
			as(commentCol(tableinfo.CommentIDColumn), "id"),
			as(commentCol(tableinfo.CommentPostIDColumn), "post_id"),
			as(commentCol(tableinfo.CommentAuthorIDColumn), "author_id"),
			as(commentCol(tableinfo.CommentContentColumn), "content"),
			as(commentCol(tableinfo.CommentCreatedAtColumn), "created_at"),
			as(commentCol(tableinfo.CommentUpdatedAtColumn), "updated_at"),
			as(tableinfo.Col(tableinfo.UsersTableName, tableinfo.UserUsernameColumn), "author_username"),
		).
		From(tableinfo.CommentsTableName).
		Join(fmt.Sprintf("%s ON %s = %s",
			tableinfo.UsersTableName,
			tableinfo.Col(tableinfo.UsersTableName, tableinfo.UserIDColumn),
			commentCol(tableinfo.CommentAuthorIDColumn),
		))
}

func (s *CommentStorage) CreateComment(ctx context.Context, in model.Comment) (model.Comment, error) {
	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	id, err := insertID(ctx, tr, "exec insert comment", psql.
		Insert(tableinfo.CommentsTableName).
		Columns(
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentAuthorIDColumn,
			tableinfo.CommentContentColumn,
			tableinfo.CommentCreatedAtColumn,
		).
		Values(in.PostID, in.AuthorID, in.Content, now()))
	if err != nil {
		return model.Comment{}, err
	}
	return s.GetCommentByID(ctx, id)
}

func (s *CommentStorage) GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error) {
	query, args, err := selectComments().
		Where(sq.Eq{commentCol(tableinfo.CommentIDColumn): commentID}).
		ToSql()
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var row commentRow
	if err := sqlx.GetContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &row, query, args...); err != nil {
		return model.Comment{}, mapError("exec select comment by id", err)
	}
	return row.toModel(), nil
}

func (s *CommentStorage) GetComments(ctx context.Context, params storage.GetCommentsParams) ([]model.Comment, error) {
	qb := selectComments().
		OrderBy(
			commentCol(tableinfo.CommentCreatedAtColumn)+" ASC",
			commentCol(tableinfo.CommentIDColumn)+" ASC",
		)
	if params.PostID != nil {
		qb = qb.Where(sq.Eq{commentCol(tableinfo.CommentPostIDColumn): *params.PostID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var rows []commentRow
	if err := sqlx.SelectContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("exec select comments: %w", err)
	}

	out := make([]model.Comment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *CommentStorage) GetCommentAuthorID(ctx context.Context, commentID int64) (int64, error) {
	query, args, err := psql.
		Select(tableinfo.CommentAuthorIDColumn).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var authorID int64
	if err := sqlx.GetContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &authorID, query, args...); err != nil {
		return 0, mapError("exec select comment author_id", err)
	}
	return authorID, nil
}

func (s *CommentStorage) UpdateComment(ctx context.Context, commentID int64, content string) (model.Comment, error) {
	err := execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec update comment", psql.
		Update(tableinfo.CommentsTableName).
		Set(tableinfo.CommentContentColumn, content).
		Set(tableinfo.CommentUpdatedAtColumn, now()).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}))
	if err != nil {
		return model.Comment{}, err
	}
	return s.GetCommentByID(ctx, commentID)
}

func (s *CommentStorage) DeleteComment(ctx context.Context, commentID int64) error {
	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec delete comment", psql.
		Delete(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}))
}
