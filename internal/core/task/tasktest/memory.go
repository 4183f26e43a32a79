// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tasktest provides an in-memory task store for tests.
package tasktest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/platform/dberr"
	"github.com/taibuivan/taskboard/pkg/pagination"
)

// MemoryTaskRepository implements task.TaskRepository with the Postgres store's semantics.
type MemoryTaskRepository struct {
	mu     sync.Mutex
	tasks  map[int64]*task.Task
	nextID int64
	owners task.OwnerDirectory
	clock  time.Time
}

// NewMemoryTaskRepository returns an empty store resolving owner emails through owners.
func NewMemoryTaskRepository(owners task.OwnerDirectory) *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks:  make(map[int64]*task.Task),
		owners: owners,
		clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (repository *MemoryTaskRepository) List(_ context.Context, filter task.Filter, params pagination.Params) ([]*task.Task, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	matched := make([]*task.Task, 0, len(repository.tasks))
	for _, stored := range repository.tasks {
		if filter.OwnerID != 0 && stored.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && stored.Status != filter.Status {
			continue
		}
		matched = append(matched, stored)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := min(params.Offset(), total)
	end := min(start+params.Limit, total)

	page := make([]*task.Task, 0, end-start)
	for _, stored := range matched[start:end] {
		copied := *stored
		page = append(page, &copied)
	}

	return page, total, nil
}

func (repository *MemoryTaskRepository) FindByIDAndOwner(_ context.Context, id, ownerID int64) (*task.Task, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.owned(id, ownerID)
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (repository *MemoryTaskRepository) Create(ctx context.Context, t *task.Task) error {
	owner, err := repository.owners.FindByID(ctx, t.OwnerID)
	if err != nil {
		return fmt.Errorf("tasktest: owner %d: %w", t.OwnerID, err)
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextID++
	// Strictly increasing timestamps keep newest-first ordering deterministic.
	repository.clock = repository.clock.Add(time.Second)

	t.ID = repository.nextID
	t.CreatedAt = repository.clock
	t.OwnerEmail = owner.Email

	stored := *t
	repository.tasks[t.ID] = &stored
	return nil
}

func (repository *MemoryTaskRepository) Update(_ context.Context, t *task.Task) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.owned(t.ID, t.OwnerID)
	if !ok {
		return dberr.ErrNotFound
	}

	stored.Title = t.Title
	stored.Status = t.Status
	stored.Urgency = t.Urgency
	stored.Importance = t.Importance
	return nil
}

func (repository *MemoryTaskRepository) UpdateStatus(_ context.Context, id, ownerID int64, status task.Status) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.owned(id, ownerID)
	if !ok {
		return dberr.ErrNotFound
	}

	stored.Status = status
	return nil
}

func (repository *MemoryTaskRepository) Delete(_ context.Context, id, ownerID int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.owned(id, ownerID); !ok {
		return dberr.ErrNotFound
	}

	delete(repository.tasks, id)
	return nil
}

func (repository *MemoryTaskRepository) DeleteByStatus(_ context.Context, ownerID int64, status task.Status) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var deleted int64
	for id, stored := range repository.tasks {
		if stored.OwnerID == ownerID && stored.Status == status {
			delete(repository.tasks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (repository *MemoryTaskRepository) owned(id, ownerID int64) (*task.Task, bool) {
	stored, ok := repository.tasks[id]
	if !ok || stored.OwnerID != ownerID {
		return nil, false
	}
	return stored, true
}
