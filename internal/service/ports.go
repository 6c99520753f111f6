package service

import (
	"context"

	"gitlab.com/ranfdev/clubhouse/internal/models"
)

// Store is the persistence port consumed by the workflows. Correctness
// under concurrent requests comes from the store's constraints, not
// from in-process locking: CreateUser must reject a duplicate email
// with models.ErrEmailAlreadyUsed even when a pre-check passed, and
// FindOrCreateUser must be a single conditional insert-or-fetch with no
// race window.
type Store interface {
	// FindUserByEmail returns (nil, nil) when no user matches.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindOrCreateUser atomically returns the existing user for email or
	// creates a provisioned one. The bool reports whether a row was created.
	FindOrCreateUser(ctx context.Context, email string) (*models.User, bool, error)
	// CreateUser persists a self-registered user. creds.Password holds
	// the bcrypt hash by the time it reaches the store.
	CreateUser(ctx context.Context, creds models.Credentials) (*models.User, error)
	CreateInvitation(ctx context.Context, token string) (*models.Invitation, error)
	AttachInvitationToUser(ctx context.Context, invitationID, userID int) error
	// AttachMembership is an idempotent upsert on (user, club); an
	// existing membership keeps its role.
	AttachMembership(ctx context.Context, userID, clubID int, role models.Role) error
	ReloadClub(ctx context.Context, clubID int) (*models.ClubView, error)
}
