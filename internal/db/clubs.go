package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"gitlab.com/ranfdev/clubhouse/internal/models"
)

// CreateClub inserts a club and gives the creator an admin membership,
// in one transaction.
func (sdb *SharedDB) CreateClub(ctx context.Context, name string, creatorID int) (*models.ClubView, error) {
	var clubID int
	err := execTx(ctx, sdb.db, func(ctx context.Context, tx DBTX) error {
		sql, args, _ := psql.
			Insert("clubs").
			Columns("name").
			Values(name).
			Suffix("RETURNING id").
			ToSql()

		row := tx.QueryRow(ctx, sql, args...)
		if err := row.Scan(&clubID); err != nil {
			return err
		}
		return attachMembership(ctx, tx, creatorID, clubID, models.RoleAdmin)
	})
	if err != nil {
		return nil, err
	}
	return sdb.ReloadClub(ctx, clubID)
}

// AttachMembership is an idempotent upsert on (user, club). An existing
// membership keeps its role, so a re-invite never demotes an admin.
func (sdb *SharedDB) AttachMembership(ctx context.Context, userID, clubID int, role models.Role) error {
	return attachMembership(ctx, sdb.db, userID, clubID, role)
}

func attachMembership(ctx context.Context, db DBTX, userID, clubID int, role models.Role) error {
	sql, args, _ := psql.
		Insert("memberships").
		Columns("user_id", "club_id", "role").
		Values(userID, clubID, string(role)).
		Suffix("ON CONFLICT (user_id, club_id) DO NOTHING").
		ToSql()

	_, err := db.Exec(ctx, sql, args...)
	return err
}

// ReloadClub reads the club with its current membership roster.
func (sdb *SharedDB) ReloadClub(ctx context.Context, clubID int) (*models.ClubView, error) {
	sql, args, _ := psql.
		Select("id", "name").
		From("clubs").
		Where(sq.Eq{"id": clubID}).
		ToSql()

	var club models.Club
	err := pgxscan.Get(ctx, sdb.db, &club, sql, args...)
	if err != nil {
		return nil, err
	}

	sql, args, _ = psql.
		Select("memberships.user_id", "users.first_name", "users.last_name", "users.email", "memberships.role").
		From("memberships").
		Join("users ON memberships.user_id = users.id").
		Where(sq.Eq{"memberships.club_id": clubID}).
		OrderBy("memberships.user_id").
		ToSql()

	members := []models.Member{}
	err = pgxscan.Select(ctx, sdb.db, &members, sql, args...)
	if err != nil {
		return nil, err
	}
	return &models.ClubView{Club: club, Members: members}, nil
}

// ActiveMembership reports whether the user currently belongs to the
// club. Used by the authorization middleware guarding invites.
func (sdb *SharedDB) ActiveMembership(ctx context.Context, userID, clubID int) (bool, error) {
	var exists bool
	err := pgxscan.Get(ctx, sdb.db, &exists,
		"SELECT exists(SELECT 1 FROM memberships WHERE user_id = $1 AND club_id = $2)",
		userID, clubID)
	if err != nil {
		return false, err
	}
	return exists, nil
}
