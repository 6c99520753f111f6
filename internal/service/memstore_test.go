package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gitlab.com/ranfdev/clubhouse/internal/models"
	"gitlab.com/ranfdev/clubhouse/internal/utils"
)

// memStore is an in-memory service.Store enforcing the same constraints
// as the SQL schema: unique email (case-insensitive) and one membership
// row per (user, club). The mutex stands in for the store-level
// atomicity the workflows rely on.
type memStore struct {
	mu          sync.Mutex
	nextUserID  int
	nextInvID   int
	nextClubID  int
	users       map[int]*models.User
	byEmail     map[string]int
	invitations map[int]*models.Invitation
	memberships map[[2]int]models.Role // (userID, clubID) -> role
	clubs       map[int]*models.Club

	// injectable faults
	findErr       error
	attachInvErr  error
	attachMembErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[int]*models.User{},
		byEmail:     map[string]int{},
		invitations: map[int]*models.Invitation{},
		memberships: map[[2]int]models.Role{},
		clubs:       map[int]*models.Club{},
	}
}

func (m *memStore) addClub(name string) *models.Club {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextClubID++
	club := &models.Club{ID: m.nextClubID, Name: name}
	m.clubs[club.ID] = club
	return club
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	id, ok := m.byEmail[utils.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	u := *m.users[id]
	return &u, nil
}

func (m *memStore) FindOrCreateUser(ctx context.Context, email string) (*models.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := utils.NormalizeEmail(email)
	if id, ok := m.byEmail[key]; ok {
		u := *m.users[id]
		return &u, false, nil
	}
	m.nextUserID++
	user := &models.User{ID: m.nextUserID, Email: email, CreatedAt: time.Now()}
	m.users[user.ID] = user
	m.byEmail[key] = user.ID
	u := *user
	return &u, true, nil
}

func (m *memStore) CreateUser(ctx context.Context, creds models.Credentials) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := utils.NormalizeEmail(creds.Email)
	if id, ok := m.byEmail[key]; ok {
		existing := m.users[id]
		if !existing.Provisioned() {
			return nil, models.ErrEmailAlreadyUsed
		}
		// Claim the row provisioned by an earlier invite.
		hash := creds.Password
		existing.FirstName = creds.FirstName
		existing.LastName = creds.LastName
		existing.PasswdHash = &hash
		u := *existing
		return &u, nil
	}
	m.nextUserID++
	hash := creds.Password
	user := &models.User{
		ID:         m.nextUserID,
		FirstName:  creds.FirstName,
		LastName:   creds.LastName,
		Email:      creds.Email,
		PasswdHash: &hash,
		CreatedAt:  time.Now(),
	}
	m.users[user.ID] = user
	m.byEmail[key] = user.ID
	u := *user
	return &u, nil
}

func (m *memStore) CreateInvitation(ctx context.Context, token string) (*models.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.invitations {
		if inv.Token == token {
			return nil, errors.New("duplicate invitation token")
		}
	}
	m.nextInvID++
	inv := &models.Invitation{ID: m.nextInvID, Token: token, CreatedAt: time.Now()}
	m.invitations[inv.ID] = inv
	i := *inv
	return &i, nil
}

func (m *memStore) AttachInvitationToUser(ctx context.Context, invitationID, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attachInvErr != nil {
		return m.attachInvErr
	}
	inv, ok := m.invitations[invitationID]
	if !ok {
		return errors.New("invitation not found")
	}
	id := userID
	inv.UserID = &id
	return nil
}

func (m *memStore) AttachMembership(ctx context.Context, userID, clubID int, role models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attachMembErr != nil {
		return m.attachMembErr
	}
	if _, ok := m.clubs[clubID]; !ok {
		return errors.New("club not found")
	}
	key := [2]int{userID, clubID}
	if _, ok := m.memberships[key]; ok {
		// Idempotent: the existing row keeps its role.
		return nil
	}
	m.memberships[key] = role
	return nil
}

func (m *memStore) ReloadClub(ctx context.Context, clubID int) (*models.ClubView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	club, ok := m.clubs[clubID]
	if !ok {
		return nil, errors.New("club not found")
	}
	view := &models.ClubView{Club: *club}
	for key, role := range m.memberships {
		if key[1] != clubID {
			continue
		}
		u := m.users[key[0]]
		view.Members = append(view.Members, models.Member{
			UserID:    u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Role:      role,
		})
	}
	sort.Slice(view.Members, func(i, j int) bool {
		return view.Members[i].UserID < view.Members[j].UserID
	})
	return view, nil
}

func (m *memStore) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *memStore) membershipCount(clubID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for key := range m.memberships {
		if key[1] == clubID {
			n++
		}
	}
	return n
}

func (m *memStore) invitationsFor(userID int) []*models.Invitation {
	m.mu.Lock()
	defer m.mu.Unlock()
	var invs []*models.Invitation
	for _, inv := range m.invitations {
		if inv.UserID != nil && *inv.UserID == userID {
			i := *inv
			invs = append(invs, &i)
		}
	}
	return invs
}
