package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"gitlab.com/ranfdev/clubhouse/internal/models"
	"gitlab.com/ranfdev/clubhouse/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies the credentials and mints an opaque session token.
// A provisioned user (invited, never registered) cannot log in.
func (sdb *SharedDB) Login(ctx context.Context, email string, passwd string) (token string, err error) {
	sql, args, _ := psql.
		Select("id", "passwd_hash").
		From("users").
		Where("lower(email) = lower(?)", email).
		ToSql()

	var data struct {
		ID         int
		PasswdHash *string
	}
	err = pgxscan.Get(ctx, sdb.db, &data, sql, args...)
	if pgxscan.NotFound(err) {
		return "", models.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if data.PasswdHash == nil {
		return "", bcrypt.ErrMismatchedHashAndPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*data.PasswdHash), []byte(passwd)); err != nil {
		return "", err
	}

	token = utils.GenToken(SessionTokenLen)
	sql, args, _ = psql.
		Insert("tokens").
		Columns("user_id", "token").
		Values(data.ID, token).
		ToSql()

	_, err = sdb.db.Exec(ctx, sql, args...)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (sdb *SharedDB) Signout(ctx context.Context, token string) error {
	_, err := sdb.db.Exec(ctx, "DELETE FROM tokens WHERE tokens.token = $1", token)
	return err
}

// UserBySessionToken resolves a session token to its user.
func (sdb *SharedDB) UserBySessionToken(ctx context.Context, token string) (*models.User, error) {
	sql, args, _ := psql.
		Select(
			"users.id",
			"users.first_name",
			"users.last_name",
			"users.email",
			"users.passwd_hash",
			"users.created_at",
		).
		From("tokens").
		Join("users ON tokens.user_id = users.id").
		Where(sq.Eq{"tokens.token": token}).
		ToSql()

	var user models.User
	err := pgxscan.Get(ctx, sdb.db, &user, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
