package models

import (
	"errors"
	"time"
)

var (
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrUserNotFound     = errors.New("user not found")
)

// SignupRequest is the raw signup payload. Fields are pointers so an
// absent JSON key stays distinguishable from an empty string.
type SignupRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// Credentials is a validated signup payload.
type Credentials struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type User struct {
	ID         int
	FirstName  string
	LastName   string
	Email      string
	PasswdHash *string
	CreatedAt  time.Time
}

// Provisioned reports whether the user was created by an invitation and
// has not yet registered credentials.
func (u *User) Provisioned() bool {
	return u.PasswdHash == nil
}

// PublicUser is what crosses the system boundary: never carries a
// password or hash.
type PublicUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (u *User) Sanitize() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// UserView is a user together with the clubs they belong to.
type UserView struct {
	PublicUser
	Clubs []ClubMembership `json:"clubs"`
}

type ClubMembership struct {
	ClubID   int    `json:"clubId"`
	ClubName string `json:"clubName"`
	Role     Role   `json:"role"`
}
