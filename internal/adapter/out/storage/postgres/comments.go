package postgres

import (
	"context"
	"fmt"

	"postboard/internal/adapter/out/storage"
	"postboard/internal/model"
	"postboard/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

type CommentStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewCommentStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *CommentStorage {
	return &CommentStorage{db: db, getter: getter}
}

func commentCol(c string) string { return tableinfo.Col(tableinfo.CommentsTableName, c) }

func selectComments() sq.SelectBuilder {
	return sq.
		Select(
			commentCol(tableinfo.CommentIDColumn),
			commentCol(tableinfo.CommentPostIDColumn),
			commentCol(tableinfo.CommentAuthorIDColumn),
			commentCol(tableinfo.CommentContentColumn),
			commentCol(tableinfo.CommentCreatedAtColumn),
			commentCol(tableinfo.CommentUpdatedAtColumn),
			tableinfo.Col(tableinfo.UsersTableName, tableinfo.UserUsernameColumn),
		).
		From(tableinfo.CommentsTableName).
		Join(fmt.Sprintf("%s ON %s = %s",
			tableinfo.UsersTableName,
			tableinfo.Col(tableinfo.UsersTableName, tableinfo.UserIDColumn),
			commentCol(tableinfo.CommentAuthorIDColumn),
		)).
		PlaceholderFormat(sq.Dollar)
}

func commentDest(c *model.Comment) []any {
	return []any{
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.Content,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.AuthorUsername,
	}
}

func (s *CommentStorage) CreateComment(ctx context.Context, in model.Comment) (model.Comment, error) {
	query, args, err := sq.
		Insert(tableinfo.CommentsTableName).
		Columns(
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentAuthorIDColumn,
			tableinfo.CommentContentColumn,
		).
		Values(in.PostID, in.AuthorID, in.Content).
		Suffix("RETURNING " + tableinfo.CommentIDColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var id int64
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return model.Comment{}, mapError("exec insert comment", err)
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

	var out model.Comment
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(commentDest(&out)...); err != nil {
		return model.Comment{}, mapError("exec select comment by id", err)
	}
	return out, nil
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

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select comments: %w", err)
	}
	defer rows.Close()

	out := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(commentDest(&c)...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *CommentStorage) GetCommentAuthorID(ctx context.Context, commentID int64) (int64, error) {
	query, args, err := sq.
		Select(tableinfo.CommentAuthorIDColumn).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var authorID int64
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(&authorID); err != nil {
		return 0, mapError("exec select comment author_id", err)
	}
	return authorID, nil
}

func (s *CommentStorage) UpdateComment(ctx context.Context, commentID int64, content string) (model.Comment, error) {
	query, args, err := sq.
		Update(tableinfo.CommentsTableName).
		Set(tableinfo.CommentContentColumn, content).
		Set(tableinfo.CommentUpdatedAtColumn, sq.Expr("NOW()")).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		Suffix("RETURNING " + tableinfo.CommentIDColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var id int64
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return model.Comment{}, mapError("exec update comment", err)
	}
	return s.GetCommentByID(ctx, id)
}

func (s *CommentStorage) DeleteComment(ctx context.Context, commentID int64) error {
	query, args, err := sq.
		Delete(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec delete comment", query, args)
}
