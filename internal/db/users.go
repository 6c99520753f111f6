package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
	"gitlab.com/ranfdev/clubhouse/internal/models"
)

var userColumns = []string{"id", "first_name", "last_name", "email", "passwd_hash", "created_at"}

// FindUserByEmail returns (nil, nil) when no user matches. Emails
// compare case-insensitively.
func (sdb *SharedDB) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, _ := psql.
		Select(userColumns...).
		From("users").
		Where("lower(email) = lower(?)", email).
		ToSql()

	var user models.User
	err := pgxscan.Get(ctx, sdb.db, &user, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a self-registered user. creds.Password must
// already be the bcrypt hash. A row provisioned by an earlier invite
// (passwd_hash IS NULL) is claimed in place; a registered row wins the
// unique constraint and surfaces models.ErrEmailAlreadyUsed, also under
// concurrent signups that passed the advisory pre-check.
func (sdb *SharedDB) CreateUser(ctx context.Context, creds models.Credentials) (*models.User, error) {
	sql, args, _ := psql.
		Insert("users").
		Columns("first_name", "last_name", "email", "passwd_hash").
		Values(creds.FirstName, creds.LastName, creds.Email, creds.Password).
		Suffix(`ON CONFLICT (lower(email)) DO UPDATE
			SET first_name = EXCLUDED.first_name,
			    last_name = EXCLUDED.last_name,
			    passwd_hash = EXCLUDED.passwd_hash
			WHERE users.passwd_hash IS NULL
			RETURNING id, created_at`).
		ToSql()

	hash := creds.Password
	user := models.User{
		FirstName:  creds.FirstName,
		LastName:   creds.LastName,
		Email:      creds.Email,
		PasswdHash: &hash,
	}
	row := sdb.db.QueryRow(ctx, sql, args...)
	err := row.Scan(&user.ID, &user.CreatedAt)
	if err == pgx.ErrNoRows {
		// Conflicting row already has credentials.
		return nil, models.ErrEmailAlreadyUsed
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateUser is a single conditional insert-or-fetch against the
// unique email index: no read-then-write window. The created user is
// provisioned, pending future self-registration.
func (sdb *SharedDB) FindOrCreateUser(ctx context.Context, email string) (*models.User, bool, error) {
	insert, args, _ := psql.
		Insert("users").
		Columns("email").
		Values(email).
		Suffix("ON CONFLICT (lower(email)) DO NOTHING RETURNING id, created_at").
		ToSql()

	// Two rounds cover the insert losing to a concurrent writer whose
	// row disappears before our fetch.
	var err error
	for i := 0; i < 2; i++ {
		user := models.User{Email: email}
		row := sdb.db.QueryRow(ctx, insert, args...)
		err = row.Scan(&user.ID, &user.CreatedAt)
		if err == nil {
			return &user, true, nil
		}
		if err != pgx.ErrNoRows {
			return nil, false, err
		}
		existing, ferr := sdb.FindUserByEmail(ctx, email)
		if ferr != nil {
			return nil, false, ferr
		}
		if existing != nil {
			return existing, false, nil
		}
	}
	return nil, false, err
}

// UserView returns a user with the clubs they belong to and their role
// in each.
func (sdb *SharedDB) UserView(ctx context.Context, userID int) (*models.UserView, error) {
	sql, args, _ := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()

	var user models.User
	err := pgxscan.Get(ctx, sdb.db, &user, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	sql, args, _ = psql.
		Select("memberships.club_id", "clubs.name AS club_name", "memberships.role").
		From("memberships").
		Join("clubs ON memberships.club_id = clubs.id").
		Where(sq.Eq{"memberships.user_id": userID}).
		OrderBy("memberships.club_id").
		ToSql()

	clubs := []models.ClubMembership{}
	err = pgxscan.Select(ctx, sdb.db, &clubs, sql, args...)
	if err != nil {
		return nil, err
	}
	return &models.UserView{PublicUser: *user.Sanitize(), Clubs: clubs}, nil
}
