package service

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/ranfdev/clubhouse/internal/models"
	"gitlab.com/ranfdev/clubhouse/internal/utils"
)

// InviteResult is the response of a successful invite: the club with
// its refreshed roster and the freshly minted invitation.
type InviteResult struct {
	Club       *models.ClubView   `json:"club"`
	Invitation *models.Invitation `json:"invitation"`
}

// InviteService attaches people, registered or not, to a club. Every
// failure collapses to a generic server error: callers cannot tell
// which step failed.
type InviteService struct {
	store  Store
	logger zerolog.Logger
}

func NewInviteService(store Store, logger zerolog.Logger) *InviteService {
	return &InviteService{store: store, logger: logger}
}

// Invite finds or provisions a user for email, mints an invitation and
// attaches both the invitation and an "invited" membership to the club.
// The two attachments hit different tables and run concurrently; both
// must finish before the club is reloaded, otherwise the returned
// roster could be stale. There is no compensating rollback: a partial
// attach surfaces a server error and leaves the rows for cleanup, and a
// retried invite converges because the membership upsert is idempotent.
func (s *InviteService) Invite(ctx context.Context, clubID int, email string) (*InviteResult, *models.StatusError) {
	user, created, err := s.store.FindOrCreateUser(ctx, email)
	if err != nil {
		return nil, s.internal(err, "find-or-create user")
	}
	s.logger.Debug().Int("user_id", user.ID).Bool("created", created).Int("club_id", clubID).
		Msg("inviting user")

	invitation, err := s.store.CreateInvitation(ctx, utils.NewInviteToken())
	if err != nil {
		return nil, s.internal(err, "creating invitation")
	}

	errc := make(chan error, 2)
	go func() {
		errc <- s.store.AttachInvitationToUser(ctx, invitation.ID, user.ID)
	}()
	go func() {
		errc <- s.store.AttachMembership(ctx, user.ID, clubID, models.RoleInvited)
	}()
	for i := 0; i < 2; i++ {
		if aerr := <-errc; aerr != nil && err == nil {
			err = aerr
		}
	}
	if err != nil {
		return nil, s.internal(err, "attaching invitation and membership")
	}

	club, err := s.store.ReloadClub(ctx, clubID)
	if err != nil {
		return nil, s.internal(err, "reloading club")
	}
	invitation.UserID = &user.ID
	return &InviteResult{Club: club, Invitation: invitation}, nil
}

func (s *InviteService) internal(err error, during string) *models.StatusError {
	s.logger.Error().Err(err).Str("during", during).Msg("invite failed")
	return models.NewInternalError(err)
}
