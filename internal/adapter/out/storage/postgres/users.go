package postgres

import (
	"context"
	"fmt"

	"postboard/internal/model"
	"postboard/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

type UserStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewUserStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *UserStorage {
	return &UserStorage{db: db, getter: getter}
}

var userColumns = []string{
	tableinfo.UserIDColumn,
	tableinfo.UserUsernameColumn,
	tableinfo.UserPasswordHashColumn,
	tableinfo.UserCreatedAtColumn,
}

func (s *UserStorage) CreateUser(ctx context.Context, username, passwordHash string) (model.User, error) {
	var out model.User

	query, args, err := sq.
		Insert(tableinfo.UsersTableName).
		Columns(tableinfo.UserUsernameColumn, tableinfo.UserPasswordHashColumn).
		Values(username, passwordHash).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s", userColumns[0], userColumns[1], userColumns[2], userColumns[3])).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Username,
		&out.PasswordHash,
		&out.CreatedAt,
	); err != nil {
		return model.User{}, mapError("exec insert user", err)
	}
	return out, nil
}

func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.getUser(ctx, sq.Eq{tableinfo.UserUsernameColumn: username})
}

func (s *UserStorage) GetUserByID(ctx context.Context, userID int64) (model.User, error) {
	return s.getUser(ctx, sq.Eq{tableinfo.UserIDColumn: userID})
}

func (s *UserStorage) getUser(ctx context.Context, where sq.Eq) (model.User, error) {
	var out model.User

	query, args, err := sq.
		Select(userColumns...).
		From(tableinfo.UsersTableName).
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := tr.QueryRow(ctx, query, args...).Scan(
		&out.ID,
		&out.Username,
		&out.PasswordHash,
		&out.CreatedAt,
	); err != nil {
		return model.User{}, mapError("exec select user", err)
	}
	return out, nil
}

func (s *UserStorage) GetUsersWithPostCount(ctx context.Context) ([]model.UserWithPostCount, error) {
	u := func(c string) string { return tableinfo.Col(tableinfo.UsersTableName, c) }

	query, args, err := sq.
		Select(
			u(tableinfo.UserIDColumn),
			u(tableinfo.UserUsernameColumn),
			u(tableinfo.UserCreatedAtColumn),
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
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select users: %w", err)
	}
	defer rows.Close()

	out := make([]model.UserWithPostCount, 0)
	for rows.Next() {
		var r model.UserWithPostCount
		if err := rows.Scan(&r.ID, &r.Username, &r.CreatedAt, &r.PostCount); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *UserStorage) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	query, args, err := sq.
		Update(tableinfo.UsersTableName).
		Set(tableinfo.UserPasswordHashColumn, passwordHash).
		Where(sq.Eq{tableinfo.UserIDColumn: userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec update password", query, args)
}

// DeleteUser relies on ON DELETE CASCADE to drop the user's posts and comments.
func (s *UserStorage) DeleteUser(ctx context.Context, userID int64) error {
	query, args, err := sq.
		Delete(tableinfo.UsersTableName).
		Where(sq.Eq{tableinfo.UserIDColumn: userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return execAffectingOne(ctx, s.getter.DefaultTrOrDB(ctx, s.db), "exec delete user", query, args)
}
