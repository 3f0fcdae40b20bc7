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

type UserStorage struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewUserStorage(db *sqlx.DB, getter *trmsqlx.CtxGetter) *UserStorage {
	return &UserStorage{db: db, getter: getter}
}

func (s *UserStorage) CreateUser(ctx context.Context, username, passwordHash string) (model.User, error) {
	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	id, err := insertID(ctx, tr, "exec insert user", psql.
		Insert(tableinfo.UsersTableName).
		Columns(tableinfo.UserUsernameColumn, tableinfo.UserPasswordHashColumn, tableinfo.UserCreatedAtColumn).
		Values(username, passwordHash, now()))
	if err != nil {
		return model.User{}, err
	}
	return s.GetUserByID(ctx, id)
}

func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.getUser(ctx, sq.Eq{tableinfo.UserUsernameColumn: username})
}

func (s *UserStorage) GetUserByID(ctx context.Context, userID int64) (model.User, error) {
	return s.getUser(ctx, sq.Eq{tableinfo.UserIDColumn: userID})
}

func (s *UserStorage) getUser(ctx context.Context, where sq.Eq) (model.User, error) {
	query, args, err := psql.
		Select(
			tableinfo.UserIDColumn,
			tableinfo.UserUsernameColumn,
			tableinfo.UserPasswordHashColumn,
			tableinfo.UserCreatedAtColumn,
		).
		From(tableinfo.UsersTableName).
		Where(where).
		ToSql()
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var row userRow
	if err := sqlx.GetContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &row, query, args...); err != nil {
		return model.User{}, mapError("exec select user", err)
	}
	return row.toModel(), nil
}

func (s *UserStorage) GetUsersWithPostCount(ctx context.Context) ([]model.UserWithPostCount, error) {
	u := func(c string) string { return tableinfo.Col(tableinfo.UsersTableName, c) }

	query, args, err := psql.
		Select(
			u(tableinfo.UserIDColumn)+" AS id",
			u(tableinfo.UserUsernameColumn)+" AS username",
			u(tableinfo.UserCreatedAtColumn)+" AS created_at",
			fmt.Sprintf("COUNT(%s) AS post_count", tableinfo.Col(tableinfo.PostsTableName, tableinfo.PostIDColumn)),
		).
		From(tableinfo.UsersTableName).
		LeftJoin(fmt.Sprintf("%s ON %s = %s",
			tableinfo.PostsTableName,
			tableinfo.Col(tableinfo.PostsTableName, tableinfo.PostAuthorIDColumn),
			u(tableinfo.UserIDColumn),
		)).
		GroupBy(u(tableinfo.UserIDColumn)).
		OrderBy(u(tableinfo.UserCreatedAtColumn)+" DESC", u(tableinfo.UserIDColumn)+" DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var rows []userWithPostCountRow
	if err := sqlx.SelectContext(ctx, s.getter.DefaultTrOrDB(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("exec select users: %w", err)
	}

	out := make([]model.UserWithPostCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.UserWithPostCount(r))
	}
	return out, nil
}

func (s *UserStorage) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec update password", psql.
		Update(tableinfo.UsersTableName).
		Set(tableinfo.UserPasswordHashColumn, passwordHash).
		Where(sq.Eq{tableinfo.UserIDColumn: userID}))
}

// DeleteUser relies on ON DELETE CASCADE to drop the user's posts and comments.
func (s *UserStorage) DeleteUser(ctx context.Context, userID int64) error {
	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec delete user", psql.
		Delete(tableinfo.UsersTableName).
		Where(sq.Eq{tableinfo.UserIDColumn: userID}))
}
