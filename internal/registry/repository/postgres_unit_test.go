package repository

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/app-registry/internal/common/logger"
	"github.com/AlibekovAA/app-registry/internal/registry/domain"
)

func newFakePgRepository(pool *fakePool) *PgRepository {
	return NewPgRepository(pool, logger.NewWithWriter(io.Discard, "test", "error"))
}

func restoredApp(appID string) *domain.App {
	return domain.Restore(appID, []domain.User{
		domain.RestoreUser(1, appID, "A", "a", "pw"),
		domain.RestoreUser(2, appID, "B", "b", "pw"),
		domain.RestoreUser(3, appID, "C", "c", "pw"),
	})
}

func userIDs(t *testing.T, app *domain.App) []int64 {
	t.Helper()
	var ids []int64
	for _, u := range app.Users() {
		id, ok := u.ID()
		require.True(t, ok, "user %s has no id", u.Username())
		ids = append(ids, id)
	}
	return ids
}

func TestPgRepositorySave_InsertsNewUsersInOrder(t *testing.T) {
	tx := &fakeTx{lastID: 40}
	repo := newFakePgRepository(&fakePool{tx: tx})

	app := domain.Create("app-1")
	require.NoError(t, app.CreateUser("A", "a", "pw"))
	require.NoError(t, app.CreateUser("B", "b", "pw"))
	require.NoError(t, app.CreateUser("C", "c", "pw"))

	require.NoError(t, repo.Save(context.Background(), app))

	assert.True(t, tx.committed)
	assert.Equal(t, []int64{41, 42, 43}, userIDs(t, app))

	require.Len(t, tx.execs, 2)
	assert.Contains(t, tx.execs[0].sql, "INSERT INTO apps")
	assert.Contains(t, tx.execs[1].sql, "DELETE FROM app_users")
	assert.Equal(t, []int64{}, tx.execs[1].args[1])

	require.Len(t, tx.inserts, 3)
	for position, ins := range tx.inserts {
		assert.Equal(t, position, ins.args[1])
	}
	assert.Equal(t, "b", tx.inserts[1].args[3])
}

func TestPgRepositorySave_DeletesRemovedUsersAndRewritesPositions(t *testing.T) {
	tx := &fakeTx{}
	repo := newFakePgRepository(&fakePool{tx: tx})

	app := restoredApp("app-1")
	_, err := app.RemoveUser("b")
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), app))

	assert.True(t, tx.committed)
	assert.Equal(t, []int64{1, 3}, tx.execs[1].args[1])
	assert.Equal(t, []int64{1, 3}, tx.updatedIDs())
	assert.Equal(t, 1, tx.execs[3].args[0], "c moves to position 1")
	assert.Empty(t, tx.inserts)
}

func TestPgRepositorySave_StaleSnapshotRollsBack(t *testing.T) {
	tx := &fakeTx{staleIDs: map[int64]bool{2: true}}
	repo := newFakePgRepository(&fakePool{tx: tx})

	app := restoredApp("app-1")
	require.NoError(t, app.CreateUser("D", "d", "pw"))

	err := repo.Save(context.Background(), app)
	assert.True(t, errors.Is(err, ErrStaleSnapshot))
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	assert.Empty(t, tx.inserts)

	d, err := app.FindUserByUsername("d")
	require.NoError(t, err)
	_, ok := d.ID()
	assert.False(t, ok, "failed save must not assign ids")
}

func TestPgRepositorySave_UniqueViolationAtCommit(t *testing.T) {
	tx := &fakeTx{commitErr: &pgconn.PgError{Code: "23505", ConstraintName: "app_users_app_id_username_key"}}
	repo := newFakePgRepository(&fakePool{tx: tx})

	app := domain.Create("app-1")
	require.NoError(t, app.CreateUser("A", "a", "pw"))

	err := repo.Save(context.Background(), app)
	assert.True(t, errors.Is(err, domain.ErrUsernameAlreadyExists))
}

func TestPgRepositorySave_BeginFailure(t *testing.T) {
	repo := newFakePgRepository(&fakePool{beginErr: errors.New("pool closed")})

	err := repo.Save(context.Background(), domain.Create("app-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
}

func TestPgRepositoryGet_RestoresUsersInRowOrder(t *testing.T) {
	repo := newFakePgRepository(&fakePool{
		appIDs: []string{"app-1", "app-2"},
		userRows: [][]interface{}{
			{int64(7), "app-1", "B", "b", "pw2"},
			{int64(3), "app-1", "A", "a", "pw1"},
			{int64(9), "app-2", "X", "x", "pw"},
		},
	})

	app, err := repo.Get(context.Background(), "app-1")
	require.NoError(t, err)
	require.Len(t, app.Users(), 2)
	assert.Equal(t, "b", app.Users()[0].Username())
	assert.Equal(t, []int64{7, 3}, userIDs(t, app))
	assert.True(t, app.Login("a", "pw1"))
}

func TestPgRepositoryGet_Unknown(t *testing.T) {
	repo := newFakePgRepository(&fakePool{appIDs: []string{"app-1"}})

	_, err := repo.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrAppNotFound))
}

func TestPgRepositoryList_GroupsUsersByApp(t *testing.T) {
	repo := newFakePgRepository(&fakePool{
		appIDs: []string{"app-2", "app-1"},
		userRows: [][]interface{}{
			{int64(1), "app-1", "A", "a", "pw"},
			{int64(2), "app-2", "B", "b", "pw"},
			{int64(3), "app-2", "C", "c", "pw"},
		},
	})

	apps, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "app-2", apps[0].ID())
	assert.Len(t, apps[0].Users(), 2)
	assert.Equal(t, "app-1", apps[1].ID())
	assert.Len(t, apps[1].Users(), 1)
}

func TestPgRepositoryList_QueryError(t *testing.T) {
	repo := newFakePgRepository(&fakePool{queryErr: errors.New("boom")})

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list apps")
}
