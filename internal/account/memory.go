package account

import (
	"context"
	"sort"
	"sync"
	"time"
)

var _ Store = (*InMemory)(nil)

// InMemory is a Store kept entirely in process memory. Used for development
// without a database and in tests.
type InMemory struct {
	mu      sync.RWMutex
	users   map[string]*User
	byEmail map[string]string
	orgs    map[string]*Organisation
	members map[string]map[string]time.Time // orgID -> userID -> joined
}

func NewInMemory() *InMemory {
	return &InMemory{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
		orgs:    make(map[string]*Organisation),
		members: make(map[string]map[string]time.Time),
	}
}

func (s *InMemory) CreateUserWithOrganisation(_ context.Context, u *User, org *Organisation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.UserID]; ok {
		return ErrConflict
	}
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrConflict
	}
	if _, ok := s.orgs[org.OrgID]; ok {
		return ErrConflict
	}

	now := time.Now().UTC()
	uc := *u
	uc.CreatedAt, uc.UpdatedAt = now, now
	oc := *org
	oc.CreatedAt, oc.UpdatedAt = now, now

	s.users[uc.UserID] = &uc
	s.byEmail[uc.Email] = uc.UserID
	s.orgs[oc.OrgID] = &oc
	s.members[oc.OrgID] = map[string]time.Time{uc.UserID: now}
	return nil
}

func (s *InMemory) FindUser(_ context.Context, userID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	uc := *u
	return &uc, nil
}

func (s *InMemory) FindUserByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	uc := *s.users[id]
	return &uc, nil
}

func (s *InMemory) SharesOrganisation(_ context.Context, userID, otherID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, members := range s.members {
		if _, a := members[userID]; !a {
			continue
		}
		if _, b := members[otherID]; b {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemory) CreateOrganisation(_ context.Context, org *Organisation, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgs[org.OrgID]; ok {
		return ErrConflict
	}
	if _, ok := s.users[ownerID]; !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	oc := *org
	oc.CreatedAt, oc.UpdatedAt = now, now
	s.orgs[oc.OrgID] = &oc
	s.members[oc.OrgID] = map[string]time.Time{ownerID: now}
	return nil
}

func (s *InMemory) FindOrganisationForUser(_ context.Context, orgID, userID string) (*Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members, ok := s.members[orgID]
	if !ok {
		return nil, ErrNotFound
	}
	if _, ok := members[userID]; !ok {
		return nil, ErrNotFound
	}
	oc := *s.orgs[orgID]
	return &oc, nil
}

func (s *InMemory) ListOrganisationsForUser(_ context.Context, userID string) ([]*Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*Organisation
	for orgID, members := range s.members {
		if _, ok := members[userID]; ok {
			oc := *s.orgs[orgID]
			res = append(res, &oc)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (s *InMemory) IsMember(_ context.Context, orgID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members, ok := s.members[orgID]
	if !ok {
		return false, nil
	}
	_, ok = members[userID]
	return ok, nil
}

func (s *InMemory) AddMember(_ context.Context, orgID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, ok := s.members[orgID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return ErrNotFound
	}
	if _, ok := members[userID]; ok {
		return nil
	}
	members[userID] = time.Now().UTC()
	return nil
}
