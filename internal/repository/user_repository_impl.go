package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"dermassist/internal/domain/entity"
	domainRepo "dermassist/internal/domain/repository"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]*domainRepo.UserRecord
}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{users: make(map[string]*domainRepo.UserRecord)}
}

func (r *userRepository) Create(_ context.Context, user *domainRepo.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return domainRepo.ErrUsernameTaken
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return domainRepo.ErrEmailTaken
		}
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*domainRepo.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, nil
}

func (r *userRepository) FindByLogin(_ context.Context, usernameOrEmail string) (*domainRepo.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, usernameOrEmail) || strings.EqualFold(u.Email, usernameOrEmail) {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*domainRepo.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *userRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) SearchDermatologists(_ context.Context, query string) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	out := []entity.User{}
	for _, u := range r.users {
		if u.Role != entity.RoleDermatologist {
			continue
		}
		if q == "" || matchesAny(q, u.Username, u.FullName, u.Specialization, u.ClinicName) {
			out = append(out, u.User)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *userRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func matchesAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
