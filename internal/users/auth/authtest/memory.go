// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package authtest provides an in-memory account store for tests.
package authtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/users/auth"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

// MemoryUserRepository implements auth.UserRepository and the account listing
// contract with the same error semantics as the Postgres store.
type MemoryUserRepository struct {
	mu     sync.Mutex
	users  map[int64]*auth.User
	nextID int64
	now    func() time.Time
}

// NewMemoryUserRepository returns an empty store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*auth.User),
		now:   time.Now,
	}
}

func (repository *MemoryUserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if user := repository.byEmail(email); user != nil {
		copied := *user
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (repository *MemoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.byEmail(user.Email) != nil {
		return dberr.ErrConflict
	}

	repository.nextID++
	user.ID = repository.nextID
	user.Email = auth.NormalizeEmail(user.Email)
	user.CreatedAt = repository.now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	repository.users[user.ID] = &stored
	return nil
}

func (repository *MemoryUserRepository) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	return repository.mutate(userID, func(user *auth.User) { user.PasswordHash = newHash })
}

func (repository *MemoryUserRepository) SetEnabled(_ context.Context, userID int64, enabled bool) error {
	return repository.mutate(userID, func(user *auth.User) { user.Enabled = enabled })
}

func (repository *MemoryUserRepository) UpdateRole(_ context.Context, userID int64, role sec.UserRole) error {
	return repository.mutate(userID, func(user *auth.User) { user.Role = role })
}

// List returns one page of accounts ordered by id, plus the total count.
func (repository *MemoryUserRepository) List(_ context.Context, params pagination.Params) ([]*auth.User, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	all := make([]*auth.User, 0, len(repository.users))
	for _, user := range repository.users {
		copied := *user
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := min(params.Offset(), total)
	end := min(start+params.Limit, total)

	return all[start:end], total, nil
}

func (repository *MemoryUserRepository) byEmail(email string) *auth.User {
	normalized := auth.NormalizeEmail(email)
	for _, user := range repository.users {
		if user.Email == normalized {
			return user
		}
	}
	return nil
}

func (repository *MemoryUserRepository) mutate(userID int64, apply func(*auth.User)) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[userID]
	if !ok {
		return dberr.ErrNotFound
	}
	apply(user)
	user.UpdatedAt = repository.now()
	return nil
}
