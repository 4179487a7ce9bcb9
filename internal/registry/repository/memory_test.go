package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/app-registry/internal/registry/domain"
)

func TestMemoryRepository_GetUnknown(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrAppNotFound))
}

func TestMemoryRepository_SaveAssignsIDsAndRoundTrips(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	app := domain.Create("app-1")
	require.NoError(t, app.CreateUser("A", "alice", "pw1"))
	require.NoError(t, app.CreateUser("B", "bob", "pw2"))
	require.NoError(t, repo.Save(ctx, app))

	for _, u := range app.Users() {
		_, ok := u.ID()
		assert.True(t, ok, "saved app must carry ids")
	}

	loaded, err := repo.Get(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, app.Users(), loaded.Users())
}

func TestMemoryRepository_IsolatesStoredState(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	app := domain.Create("app-1")
	require.NoError(t, app.CreateUser("A", "alice", "pw1"))
	require.NoError(t, repo.Save(ctx, app))

	_, err := app.UpdateUserPassword("alice", "unsaved")
	require.NoError(t, err)

	loaded, err := repo.Get(ctx, "app-1")
	require.NoError(t, err)
	assert.True(t, loaded.Login("alice", "pw1"))
}

func TestMemoryRepository_ListInCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	apps, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Save(ctx, domain.Create(id)))
	}
	require.NoError(t, repo.Save(ctx, domain.Create("a")))

	apps, err = repo.List(ctx)
	require.NoError(t, err)
	var ids []string
	for _, a := range apps {
		ids = append(ids, a.ID())
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestMemoryRepository_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	app := domain.Create("app-1")
	require.NoError(t, app.CreateUser("A", "alice", "pw"))
	require.NoError(t, repo.Save(ctx, app))
	first, _ := app.Users()[0].ID()

	_, err := app.RemoveUser("alice")
	require.NoError(t, err)
	require.NoError(t, app.CreateUser("A", "alice", "pw"))
	require.NoError(t, repo.Save(ctx, app))

	second, _ := app.Users()[0].ID()
	assert.Greater(t, second, first)
}

func TestMemoryRepository_StaleSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	app := domain.Create("app-1")
	require.NoError(t, app.CreateUser("A", "alice", "pw"))
	require.NoError(t, repo.Save(ctx, app))

	first, err := repo.Get(ctx, "app-1")
	require.NoError(t, err)
	second, err := repo.Get(ctx, "app-1")
	require.NoError(t, err)

	_, err = first.RemoveUser("alice")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	_, err = second.UpdateUserPassword("alice", "pw2")
	require.NoError(t, err)
	assert.True(t, errors.Is(repo.Save(ctx, second), ErrStaleSnapshot))
}
