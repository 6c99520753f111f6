package models

type Role string

const (
	RoleInvited Role = "invited"
	RoleMember  Role = "member"
	RoleAdmin   Role = "admin"
)

type Club struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Member is a row of a club's roster.
type Member struct {
	UserID    int    `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// ClubView is a club with its current membership roster.
type ClubView struct {
	Club
	Members []Member `json:"members"`
}
