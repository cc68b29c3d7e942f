package services

import (
	"context"
	"testing"
	"time"

	"github.com/NikhilKumarMandal/todo-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTodoCreateAndGet(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", "two litres")
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.IsComplete)

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "two litres", got.Description)
}

func TestTodoGetInvalidID(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())

	_, err := svc.Get(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrInvalidTodoID)
}

func TestTodoGetMissing(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoUpdate(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", "")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID.Hex(), "Buy oat milk", "barista blend")
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.Equal(t, "barista blend", updated.Description)

	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), "x", "y")
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoDelete(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", "")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.Get(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, ErrTodoNotFound)

	_, err = svc.Delete(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoToggle(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", "")
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.True(t, toggled.IsComplete)

	// the flip is persisted, not just returned
	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.IsComplete)

	back, err := svc.Toggle(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.False(t, back.IsComplete)
}

func TestTodoList(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := NewTodoService(repo)
	ctx := context.Background()

	now := time.Now().UTC()
	repo.seed(&models.Todo{Title: "Milkshake recipe", UpdatedAt: now.Add(-2 * time.Hour)})
	repo.seed(&models.Todo{Title: "Walk dog", UpdatedAt: now.Add(-time.Hour)})
	repo.seed(&models.Todo{Title: "Buy milk", IsComplete: true, UpdatedAt: now})

	all, err := svc.List(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest update first
	assert.Equal(t, "Buy milk", all[0].Title)
	assert.Equal(t, "Walk dog", all[1].Title)
	assert.Equal(t, "Milkshake recipe", all[2].Title)

	matched, err := svc.List(ctx, "MILK", nil)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "Buy milk", matched[0].Title)
	assert.Equal(t, "Milkshake recipe", matched[1].Title)

	done := true
	completed, err := svc.List(ctx, "milk", &done)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Buy milk", completed[0].Title)

	notDone := false
	pending, err := svc.List(ctx, "", &notDone)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}
