package db

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"gitlab.com/ranfdev/clubhouse/internal/models"
)

// CreateInvitation inserts an invitation with a caller-supplied token.
// The token is the claim credential; it is stored as-is and must be
// globally unique.
func (sdb *SharedDB) CreateInvitation(ctx context.Context, token string) (*models.Invitation, error) {
	sql, args, _ := psql.
		Insert("invitations").
		Columns("token").
		Values(token).
		Suffix("RETURNING id, created_at").
		ToSql()

	inv := models.Invitation{Token: token}
	row := sdb.db.QueryRow(ctx, sql, args...)
	if err := row.Scan(&inv.ID, &inv.CreatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

// AttachInvitationToUser links a pending invitation to its invitee.
func (sdb *SharedDB) AttachInvitationToUser(ctx context.Context, invitationID, userID int) error {
	sql, args, _ := psql.
		Update("invitations").
		Set("user_id", userID).
		Where(sq.Eq{"id": invitationID}).
		ToSql()

	tag, err := sdb.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("attach invitation: no rows affected")
	}
	return nil
}
