package design

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/plantforge/plantforge/pkg/errors"
)

// MemoryStore is an in-process Store. Records are copied on the way in and
// out, so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	designs map[string]*Design
	users   map[string]*User
	emails  map[string]string // email -> user ID
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		designs: make(map[string]*Design),
		users:   make(map[string]*User),
		emails:  make(map[string]string),
	}
}

func (s *MemoryStore) CreateDesign(ctx context.Context, d *Design) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.designs[d.ID]; ok {
		return errors.New(errors.ErrCodeConflict, "design %q already exists", d.ID)
	}
	s.designs[d.ID] = d.clone()
	return nil
}

func (s *MemoryStore) GetDesign(ctx context.Context, id string) (*Design, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.designs[id]
	if !ok {
		return nil, designNotFound(id)
	}
	return d.clone(), nil
}

func (s *MemoryStore) UpdateDesign(ctx context.Context, d *Design) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.designs[d.ID]; !ok {
		return designNotFound(d.ID)
	}
	s.designs[d.ID] = d.clone()
	return nil
}

func (s *MemoryStore) DeleteDesign(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.designs[id]; !ok {
		return designNotFound(id)
	}
	delete(s.designs, id)
	return nil
}

func (s *MemoryStore) ListDesigns(ctx context.Context, ownerID string, limit int) ([]*Design, error) {
	return s.listNewest(ownerID, limit, func(d *Design) time.Time { return d.UpdatedAt }), nil
}

func (s *MemoryStore) ListRecentDesigns(ctx context.Context, limit int) ([]*Design, error) {
	return s.listNewest("", limit, func(d *Design) time.Time { return d.CreatedAt }), nil
}

// listNewest copies the owner's designs sorted by the given timestamp,
// newest first, with ties broken by ID.
func (s *MemoryStore) listNewest(ownerID string, limit int, at func(*Design) time.Time) []*Design {
	s.mu.RLock()
	out := make([]*Design, 0, len(s.designs))
	for _, d := range s.designs {
		if ownerID == "" || d.OwnerID == ownerID {
			out = append(out, d.clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ti, tj := at(out[i]), at(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *MemoryStore) DeleteDesignsByOwner(ctx context.Context, ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, d := range s.designs {
		if d.OwnerID == ownerID {
			delete(s.designs, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountDesigns(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.designs), nil
}

func (s *MemoryStore) CountDesignsByLayout(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, d := range s.designs {
		counts[d.LayoutType]++
	}
	return counts, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return errors.New(errors.ErrCodeConflict, "user %q already exists", u.ID)
	}
	if _, ok := s.emails[u.Email]; ok {
		return emailTaken(u.Email)
	}
	s.users[u.ID] = u.clone()
	s.emails[u.Email] = u.ID
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, userNotFound(id)
	}
	return u.clone(), nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, errors.New(errors.ErrCodeUserNotFound, "no user with email %q", email)
	}
	return s.users[id].clone(), nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[u.ID]
	if !ok {
		return userNotFound(u.ID)
	}
	if u.Email != old.Email {
		if _, taken := s.emails[u.Email]; taken {
			return emailTaken(u.Email)
		}
		delete(s.emails, old.Email)
		s.emails[u.Email] = u.ID
	}
	s.users[u.ID] = u.clone()
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return userNotFound(id)
	}
	delete(s.emails, u.Email)
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) CountUsers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func designNotFound(id string) error {
	return errors.New(errors.ErrCodeDesignNotFound, "design %q not found", id)
}

func userNotFound(id string) error {
	return errors.New(errors.ErrCodeUserNotFound, "user %q not found", id)
}

func emailTaken(email string) error {
	return errors.New(errors.ErrCodeConflict, "email %q is already registered", email)
}
