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

type PostTypeStorage struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewPostTypeStorage(db *sqlx.DB, getter *trmsqlx.CtxGetter) *PostTypeStorage {
	return &PostTypeStorage{db: db, getter: getter}
}

func selectPostTypes() sq.SelectBuilder {
	return psql.
		Select(
			tableinfo.PostTypeIDColumn,
			tableinfo.PostTypeNameColumn,
			tableinfo.PostTypeDescriptionColumn,
		).
		From(tableinfo.PostTypesTableName)
}

func (s *PostTypeStorage) CreatePostType(ctx context.Context, pt model.PostType) (model.PostType, error) {
	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	id, err := insertID(ctx, tr, "exec insert post type", psql.
		Insert(tableinfo.PostTypesTableName).
		Columns(tableinfo.PostTypeNameColumn, tableinfo.PostTypeDescriptionColumn).
		Values(pt.Name, pt.Description))
	if err != nil {
		return model.PostType{}, err
	}
	return s.GetPostTypeByID(ctx, id)
}

func (s *PostTypeStorage) GetPostTypeByID(ctx context.Context, postTypeID int64) (model.PostType, error) {
	query, args, err := selectPostTypes().
		Where(sq.Eq{tableinfo.PostTypeIDColumn: postTypeID}).
		ToSql()
	if err != nil {
		return model.PostType{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var row postTypeRow
	if err := sqlx.GetContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &row, query, args...); err != nil {
		return model.PostType{}, mapError("exec select post type", err)
	}
	return row.toModel(), nil
}

func (s *PostTypeStorage) GetPostTypes(ctx context.Context) ([]model.PostType, error) {
	query, args, err := selectPostTypes().
		OrderBy(tableinfo.PostTypeNameColumn).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var rows []postTypeRow
	if err := sqlx.SelectContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("exec select post types: %w", err)
	}

	out := make([]model.PostType, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *PostTypeStorage) UpdatePostType(ctx context.Context, pt model.PostType) (model.PostType, error) {
	err := execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec update post type", psql.
		Update(tableinfo.PostTypesTableName).
		Set(tableinfo.PostTypeNameColumn, pt.Name).
		Set(tableinfo.PostTypeDescriptionColumn, pt.Description).
		Where(sq.Eq{tableinfo.PostTypeIDColumn: pt.ID}))
	if err != nil {
		return model.PostType{}, err
	}
	return s.GetPostTypeByID(ctx, pt.ID)
}

// DeletePostType fails with ErrInvalidReference while posts still use the type.
func (s *PostTypeStorage) DeletePostType(ctx context.Context, postTypeID int64) error {
	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec delete post type", psql.
		Delete(tableinfo.PostTypesTableName).
		Where(sq.Eq{tableinfo.PostTypeIDColumn: postTypeID}))
}

func (s *PostTypeStorage) CountPostsByType(ctx context.Context, postTypeID int64) (int64, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostPostTypeIDColumn: postTypeID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var n int64
	if err := sqlx.GetContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &n, query, args...); err != nil {
		return 0, fmt.Errorf("exec count posts by type: %w", err)
	}
	return n, nil
}
