package postgres

import (
	"context"
	"fmt"

	"postboard/internal/model"
	"postboard/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

type PostStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewPostStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *PostStorage {
	return &PostStorage{db: db, getter: getter}
}

func postCol(c string) string { return tableinfo.Col(tableinfo.PostsTableName, c) }

// selectPosts is the joined read view shared by the single and list queries.
func selectPosts() sq.SelectBuilder {
	return sq.
		Select(
			postCol(tableinfo.PostIDColumn),
			postCol(tableinfo.PostAuthorIDColumn),
			postCol(tableinfo.PostPostTypeIDColumn),
			postCol(tableinfo.PostTitleColumn),
			postCol(tableinfo.PostContentColumn),
			postCol(tableinfo.PostCreatedAtColumn),
			postCol(tableinfo.PostUpdatedAtColumn),
			tableinfo.Col(tableinfo.UsersTableName, tableinfo.UserUsernameColumn),
			tableinfo.Col(tableinfo.PostTypesTableName, tableinfo.PostTypeNameColumn),
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
		)).
		PlaceholderFormat(sq.Dollar)
}

func postDest(p *model.Post) []any {
	return []any{
		&p.ID,
		&p.AuthorID,
		&p.PostTypeID,
		&p.Title,
		&p.Content,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.AuthorUsername,
		&p.PostTypeName,
	}
}

func (s *PostStorage) CreatePost(ctx context.Context, in model.Post) (model.Post, error) {
	query, args, err := sq.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostAuthorIDColumn,
			tableinfo.PostPostTypeIDColumn,
			tableinfo.PostTitleColumn,
			tableinfo.PostContentColumn,
		).
		Values(in.AuthorID, in.PostTypeID, in.Title, in.Content).
		Suffix("RETURNING " + tableinfo.PostIDColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var id int64
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return model.Post{}, mapError("exec insert post", err)
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

	var out model.Post
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(postDest(&out)...); err != nil {
		return model.Post{}, mapError("exec select post by id", err)
	}
	return out, nil
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

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec error selecting posts: %w", err)
	}
	defer rows.Close()

	out := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(postDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *PostStorage) GetPostAuthorID(ctx context.Context, postID int64) (int64, error) {
	query, args, err := sq.
		Select(tableinfo.PostAuthorIDColumn).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var authorID int64
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(&authorID); err != nil {
		return 0, mapError("exec select author_id", err)
	}
	return authorID, nil
}

func (s *PostStorage) UpdatePost(ctx context.Context, in model.Post) (model.Post, error) {
	query, args, err := sq.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostPostTypeIDColumn, in.PostTypeID).
		Set(tableinfo.PostTitleColumn, in.Title).
		Set(tableinfo.PostContentColumn, in.Content).
		Set(tableinfo.PostUpdatedAtColumn, sq.Expr("NOW()")).
		Where(sq.Eq{tableinfo.PostIDColumn: in.ID}).
		Suffix("RETURNING " + tableinfo.PostIDColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var id int64
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return model.Post{}, mapError("exec update post", err)
	}
	return s.GetPostByID(ctx, id)
}

// DeletePost relies on ON DELETE CASCADE for the post's comments.
func (s *PostStorage) DeletePost(ctx context.Context, postID int64) error {
	query, args, err := sq.
		Delete(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec delete post", query, args)
}
