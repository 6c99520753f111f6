package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gitlab.com/ranfdev/clubhouse/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// RegistrationService turns raw signup input into a persisted account:
// validate, duplicate-check, hash, persist, sanitize. Each stage
// returns a new value instead of mutating its input, and the first
// failing stage short-circuits the rest.
type RegistrationService struct {
	store      Store
	bcryptCost int
	logger     zerolog.Logger
}

func NewRegistrationService(store Store, bcryptCost int, logger zerolog.Logger) *RegistrationService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &RegistrationService{store: store, bcryptCost: bcryptCost, logger: logger}
}

// Register runs the signup pipeline. On failure the returned
// StatusError carries the classification of the stage that failed,
// forwarded unchanged to the caller. No stage with side effects runs
// after a failure.
func (s *RegistrationService) Register(ctx context.Context, req models.SignupRequest) (*models.PublicUser, *models.StatusError) {
	creds, serr := validateRequest(req)
	if serr != nil {
		return nil, serr
	}
	if serr := s.checkForExisting(ctx, creds.Email); serr != nil {
		return nil, serr
	}
	hashed, serr := s.generateHash(creds)
	if serr != nil {
		return nil, serr
	}
	user, serr := s.createUser(ctx, hashed)
	if serr != nil {
		return nil, serr
	}
	return user.Sanitize(), nil
}

// validateRequest only checks presence. An empty string counts as
// present, exactly like the behavior this service replaces.
func validateRequest(req models.SignupRequest) (models.Credentials, *models.StatusError) {
	if req.FirstName == nil || req.LastName == nil || req.Email == nil || req.Password == nil {
		return models.Credentials{}, models.NewValidationError(models.MsgMissingFields)
	}
	return models.Credentials{
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
		Email:     *req.Email,
		Password:  *req.Password,
	}, nil
}

// checkForExisting is advisory: two concurrent signups can both pass
// it. The store's uniqueness constraint closes the race in createUser.
func (s *RegistrationService) checkForExisting(ctx context.Context, email string) *models.StatusError {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return s.internal(err, "looking up email")
	}
	if user != nil && !user.Provisioned() {
		return models.NewConflictError(models.MsgEmailExists)
	}
	return nil
}

// generateHash returns a copy of creds with Password replaced by its
// bcrypt hash. The plaintext is never logged.
func (s *RegistrationService) generateHash(creds models.Credentials) (models.Credentials, *models.StatusError) {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.bcryptCost)
	if err != nil {
		return models.Credentials{}, s.internal(err, "hashing password")
	}
	hashed := creds
	hashed.Password = string(hash)
	return hashed, nil
}

func (s *RegistrationService) createUser(ctx context.Context, creds models.Credentials) (*models.User, *models.StatusError) {
	user, err := s.store.CreateUser(ctx, creds)
	if errors.Is(err, models.ErrEmailAlreadyUsed) {
		// A concurrent signup won the insert after our pre-check passed.
		// Surface the same conflict the pre-check would have produced.
		return nil, models.NewConflictError(models.MsgEmailExists)
	}
	if err != nil {
		return nil, s.internal(err, "persisting user")
	}
	return user, nil
}

func (s *RegistrationService) internal(err error, during string) *models.StatusError {
	s.logger.Error().Err(err).Str("during", during).Msg("registration failed")
	return models.NewInternalError(err)
}
