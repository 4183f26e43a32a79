// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/core/task"
	"github.com/taibuivan/taskboard/internal/core/task/tasktest"
	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/users/auth"
	"github.com/taibuivan/taskboard/internal/users/auth/authtest"
	"github.com/taibuivan/taskboard/pkg/pagination"
	"github.com/taibuivan/taskboard/pkg/pointer"
)

type fixture struct {
	service *task.Service
	users   *authtest.MemoryUserRepository
	alice   *auth.User
	bob     *auth.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := authtest.NewMemoryUserRepository()
	alice := &auth.User{Email: "alice@example.com", Role: sec.RoleUser, Enabled: true}
	bob := &auth.User{Email: "bob@example.com", Role: sec.RoleUser, Enabled: true}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	service := task.NewService(tasktest.NewMemoryTaskRepository(users), users)
	return &fixture{service: service, users: users, alice: alice, bob: bob}
}

func (f *fixture) create(t *testing.T, ownerID int64, title string) *task.Task {
	t.Helper()
	created, err := f.service.Create(context.Background(), ownerID, task.CreateInput{Title: title})
	require.NoError(t, err)
	return created
}

func assertCode(t *testing.T, err error, status int, code string) {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.HTTPStatus)
	assert.Equal(t, code, appErr.Code)
}

func TestService_CreateDefaults(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, f.alice.ID, "Write report")

	assert.NotZero(t, created.ID)
	assert.Equal(t, task.StatusTodo, created.Status)
	assert.Equal(t, task.UrgencyNotUrgent, created.Urgency)
	assert.Equal(t, task.ImportanceNotImportant, created.Importance)
	assert.Equal(t, "alice@example.com", created.OwnerEmail)

	explicit, err := f.service.Create(context.Background(), f.alice.ID, task.CreateInput{
		Title:      "Call plumber",
		Urgency:    pointer.To(task.UrgencyUrgent),
		Importance: pointer.To(task.ImportanceImportant),
	})
	require.NoError(t, err)
	assert.Equal(t, task.UrgencyUrgent, explicit.Urgency)
	assert.Equal(t, task.ImportanceImportant, explicit.Importance)
}

func TestService_OwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alicesTask := f.create(t, f.alice.ID, "Private")

	_, err := f.service.GetMine(ctx, alicesTask.ID, f.bob.ID)
	assertCode(t, err, http.StatusNotFound, task.CodeTaskNotFound)

	err = f.service.Update(ctx, alicesTask.ID, f.bob.ID, task.UpdateInput{
		Title: "Hijacked", Status: task.StatusDone, Urgency: task.UrgencyUrgent, Importance: task.ImportanceImportant,
	})
	assertCode(t, err, http.StatusNotFound, task.CodeTaskNotFound)

	err = f.service.UpdateStatus(ctx, alicesTask.ID, f.bob.ID, task.StatusDone)
	assertCode(t, err, http.StatusNotFound, task.CodeTaskNotFound)

	err = f.service.Delete(ctx, alicesTask.ID, f.bob.ID)
	assertCode(t, err, http.StatusNotFound, task.CodeTaskNotFound)

	// Untouched for the owner.
	stored, err := f.service.GetMine(ctx, alicesTask.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", stored.Title)
	assert.Equal(t, task.StatusTodo, stored.Status)
}

func TestService_UpdateAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, f.alice.ID, "Draft")

	require.NoError(t, f.service.Update(ctx, created.ID, f.alice.ID, task.UpdateInput{
		Title: "Final", Status: task.StatusInProgress, Urgency: task.UrgencyUrgent, Importance: task.ImportanceImportant,
	}))
	require.NoError(t, f.service.UpdateStatus(ctx, created.ID, f.alice.ID, task.StatusDone))

	stored, err := f.service.GetMine(ctx, created.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", stored.Title)
	assert.Equal(t, task.StatusDone, stored.Status)
	assert.Equal(t, task.UrgencyUrgent, stored.Urgency)
}

func TestService_DeleteByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	params := pagination.Params{Page: 1, Limit: 20}

	done := f.create(t, f.alice.ID, "Done one")
	f.create(t, f.alice.ID, "Still open")
	bobsDone := f.create(t, f.bob.ID, "Bob done")

	require.NoError(t, f.service.UpdateStatus(ctx, done.ID, f.alice.ID, task.StatusDone))
	require.NoError(t, f.service.UpdateStatus(ctx, bobsDone.ID, f.bob.ID, task.StatusDone))

	require.NoError(t, f.service.DeleteByStatus(ctx, f.alice.ID, task.StatusDone))

	remaining, total, err := f.service.ListMine(ctx, f.alice.ID, "", params)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Still open", remaining[0].Title)

	// Other owners keep their tasks.
	_, bobTotal, err := f.service.ListMine(ctx, f.bob.ID, task.StatusDone, params)
	require.NoError(t, err)
	assert.Equal(t, 1, bobTotal)

	// Nothing to delete is fine.
	assert.NoError(t, f.service.DeleteByStatus(ctx, f.alice.ID, task.StatusDone))
}

func TestService_AdminListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for range 3 {
		f.create(t, f.alice.ID, "Alice task")
	}
	newest := f.create(t, f.bob.ID, "Bob task")

	all, total, err := f.service.ListAll(ctx, "", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, newest.ID, all[0].ID, "newest first")

	page, total, err := f.service.ListForUser(ctx, f.alice.ID, task.StatusTodo, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 1)

	_, _, err = f.service.ListForUser(ctx, 404, "", pagination.Params{Page: 1, Limit: 10})
	assertCode(t, err, http.StatusNotFound, auth.CodeUserNotFound)
}

func TestParseStatus(t *testing.T) {
	status, ok := task.ParseStatus(" in_progress ")
	assert.True(t, ok)
	assert.Equal(t, task.StatusInProgress, status)

	_, ok = task.ParseStatus("ARCHIVED")
	assert.False(t, ok)
}
