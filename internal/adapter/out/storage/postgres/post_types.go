package postgres

import (
	"context"
	"fmt"

	"postboard/internal/model"
	"postboard/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

type PostTypeStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewPostTypeStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *PostTypeStorage {
	return &PostTypeStorage{db: db, getter: getter}
}

var postTypeReturning = fmt.Sprintf("RETURNING %s, %s, %s",
	tableinfo.PostTypeIDColumn,
	tableinfo.PostTypeNameColumn,
	tableinfo.PostTypeDescriptionColumn,
)

func (s *PostTypeStorage) CreatePostType(ctx context.Context, pt model.PostType) (model.PostType, error) {
	query, args, err := sq.
		Insert(tableinfo.PostTypesTableName).
		Columns(tableinfo.PostTypeNameColumn, tableinfo.PostTypeDescriptionColumn).
		Values(pt.Name, pt.Description).
		Suffix(postTypeReturning).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.PostType{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return s.scanOne(ctx, "exec insert post type", query, args)
}

func (s *PostTypeStorage) GetPostTypeByID(ctx context.Context, postTypeID int64) (model.PostType, error) {
	query, args, err := sq.
		Select(
			tableinfo.PostTypeIDColumn,
			tableinfo.PostTypeNameColumn,
			tableinfo.PostTypeDescriptionColumn,
		).
		From(tableinfo.PostTypesTableName).
		Where(sq.Eq{tableinfo.PostTypeIDColumn: postTypeID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.PostType{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return s.scanOne(ctx, "exec select post type", query, args)
}

func (s *PostTypeStorage) GetPostTypes(ctx context.Context) ([]model.PostType, error) {
	query, args, err := sq.
		Select(
			tableinfo.PostTypeIDColumn,
			tableinfo.PostTypeNameColumn,
			tableinfo.PostTypeDescriptionColumn,
		).
		From(tableinfo.PostTypesTableName).
		OrderBy(tableinfo.PostTypeNameColumn).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select post types: %w", err)
	}
	defer rows.Close()

	out := make([]model.PostType, 0)
	for rows.Next() {
		var pt model.PostType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Description); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *PostTypeStorage) UpdatePostType(ctx context.Context, pt model.PostType) (model.PostType, error) {
	query, args, err := sq.
		Update(tableinfo.PostTypesTableName).
		Set(tableinfo.PostTypeNameColumn, pt.Name).
		Set(tableinfo.PostTypeDescriptionColumn, pt.Description).
		Where(sq.Eq{tableinfo.PostTypeIDColumn: pt.ID}).
		Suffix(postTypeReturning).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.PostType{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return s.scanOne(ctx, "exec update post type", query, args)
}

// DeletePostType fails with ErrInvalidReference while posts still use the type.
func (s *PostTypeStorage) DeletePostType(ctx context.Context, postTypeID int64) error {
	query, args, err := sq.
		Delete(tableinfo.PostTypesTableName).
		Where(sq.Eq{tableinfo.PostTypeIDColumn: postTypeID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec delete post type", query, args)
}

func (s *PostTypeStorage) CountPostsByType(ctx context.Context, postTypeID int64) (int64, error) {
	query, args, err := sq.
		Select("COUNT(*)").
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostPostTypeIDColumn: postTypeID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var n int64
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("exec count posts by type: %w", err)
	}
	return n, nil
}

func (s *PostTypeStorage) scanOne(ctx context.Context, op, query string, args []any) (model.PostType, error) {
	var out model.PostType

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Name,
		&out.Description,
	); err != nil {
		return model.PostType{}, mapError(op, err)
	}
	return out, nil
}
