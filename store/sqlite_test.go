package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/veloxdb"
	"github.com/syssam/veloxdb/cascade"
	"github.com/syssam/veloxdb/dialect"
	"github.com/syssam/veloxdb/dialect/sql"
	"github.com/syssam/veloxdb/schema"
	"github.com/syssam/veloxdb/store"
)

const ddl = `
CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, deleted_at DATETIME);
CREATE TABLE projects (
	id INTEGER PRIMARY KEY,
	title TEXT,
	owner_id INTEGER REFERENCES users(id)
);
CREATE TABLE teams (id INTEGER PRIMARY KEY, lead_id INTEGER);
CREATE TABLE members (id INTEGER PRIMARY KEY, team_id INTEGER);
INSERT INTO users (id, name) VALUES (1, 'ann'), (2, 'bob');
INSERT INTO projects (id, title, owner_id) VALUES (10, 'a', 1), (11, 'b', 1), (12, 'c', 2);
INSERT INTO teams (id, lead_id) VALUES (1, 100);
INSERT INTO members (id, team_id) VALUES (100, 1);
`

func sqliteClient(t *testing.T) *store.Client {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "veloxdb.db") + "?_pragma=foreign_keys(1)"
	drv, err := sql.Open(dialect.SQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { drv.Close() })
	_, err = drv.DB().Exec(ddl)
	require.NoError(t, err)

	reg := registry().MustRegister(
		schema.Entity("Team",
			schema.Reference("lead_id", "Member", cascade.None),
			schema.Inverse("members", "Member", "team_id", cascade.ForceRegular),
		),
		schema.Entity("Member",
			schema.Reference("team_id", "Team", cascade.None),
			schema.Inverse("leads", "Team", "lead_id", cascade.ForceRegular),
		),
	)
	return store.NewClient(drv, reg, store.WithClock(func() time.Time { return now }))
}

func count(t *testing.T, c *store.Client, table string) int {
	t.Helper()
	var n int
	require.NoError(t, c.Driver().(*sql.Driver).DB().QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestSQLiteSoftDelete(t *testing.T) {
	ctx := context.Background()
	c := sqliteClient(t)

	u, err := c.Get(ctx, "User", 1)
	require.NoError(t, err)
	affected, err := c.SoftDelete(ctx, u)
	require.NoError(t, err)
	assert.True(t, affected)
	assert.True(t, u.Deleted())

	_, err = c.Get(ctx, "User", 1)
	assert.True(t, veloxdb.IsNotFound(err))
	stored, err := c.Get(ctx, "User", 1, store.WithDeleted())
	require.NoError(t, err)
	assert.True(t, stored.Deleted())

	// Projects are not soft-deletable and stay attached.
	projects, err := c.FindBy(ctx, "Project", "owner_id", 1)
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	// Deleting again restamps the row with the new timestamp.
	later := now.Add(time.Hour)
	again := store.NewClient(c.Driver(), c.Registry(), store.WithClock(func() time.Time { return later }))
	affected, err = again.SoftDelete(ctx, stored)
	require.NoError(t, err)
	assert.True(t, affected)
	assert.Equal(t, later, stored.Value("deleted_at"))
	restamped, err := again.Get(ctx, "User", 1, store.WithDeleted())
	require.NoError(t, err)
	at, ok := restamped.Value("deleted_at").(time.Time)
	require.True(t, ok, "deleted_at is %T", restamped.Value("deleted_at"))
	assert.True(t, later.Equal(at), "stored %v, want %v", at, later)
}

func TestSQLiteHardDelete(t *testing.T) {
	ctx := context.Background()
	c := sqliteClient(t)

	u, err := c.Get(ctx, "User", 1)
	require.NoError(t, err)
	affected, err := c.Delete(ctx, u)
	require.NoError(t, err)
	assert.True(t, affected)

	_, err = c.Get(ctx, "User", 1, store.WithDeleted())
	assert.True(t, veloxdb.IsNotFound(err))
	assert.Equal(t, 1, count(t, c, "users"))
	assert.Equal(t, 1, count(t, c, "projects"))
	p, err := c.Get(ctx, "Project", 12)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Value("owner_id"))

	affected, err = c.Delete(ctx, u)
	require.NoError(t, err)
	assert.False(t, affected, "already deleted")
}

func TestSQLiteForeignKeyEnforced(t *testing.T) {
	ctx := context.Background()
	c := sqliteClient(t)

	// Without the inverse relation the engine must refuse to orphan projects.
	reg := schema.NewRegistry().MustRegister(schema.Entity("User", schema.SoftDelete("")))
	bare := store.NewClient(c.Driver(), reg)
	u, err := bare.Get(ctx, "User", 1)
	require.NoError(t, err)
	_, err = bare.Delete(ctx, u)
	require.Error(t, err)
	assert.True(t, veloxdb.IsConstraintError(err))
	assert.Equal(t, 2, count(t, c, "users"))
}

func TestSQLiteCycle(t *testing.T) {
	ctx := context.Background()
	c := sqliteClient(t)

	team, err := c.Get(ctx, "Team", 1)
	require.NoError(t, err)
	_, err = c.Delete(ctx, team)
	require.Error(t, err)
	assert.True(t, veloxdb.IsCycleError(err))
	assert.Equal(t, 1, count(t, c, "teams"))
	assert.Equal(t, 1, count(t, c, "members"))
}

func TestSQLiteTx(t *testing.T) {
	ctx := context.Background()
	c := sqliteClient(t)

	err := c.WithTx(ctx, func(tx *store.Tx) error {
		u, err := tx.Get(ctx, "User", 2)
		if err != nil {
			return err
		}
		if _, err := tx.Delete(ctx, u); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 2, count(t, c, "users"), "rolled back")
	assert.Equal(t, 3, count(t, c, "projects"))
}

func TestSQLiteTxCache(t *testing.T) {
	ctx := context.Background()
	c := sqliteClient(t)
	cache := newMemCache()
	cc := store.NewClient(c.Driver(), c.Registry(), store.WithCache(cache, 0), store.WithClock(c.Now))

	t.Run("Rollback", func(t *testing.T) {
		_, err := cc.Get(ctx, "User", 2)
		require.NoError(t, err)
		require.True(t, cache.has("users:get:2"))

		err = cc.WithTx(ctx, func(tx *store.Tx) error {
			u, err := tx.Get(ctx, "User", 2)
			if err != nil {
				return err
			}
			if _, err := tx.SoftDelete(ctx, u); err != nil {
				return err
			}
			if _, err := tx.Get(ctx, "User", 2, store.WithDeleted()); err != nil {
				return err
			}
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)

		u, err := cc.Get(ctx, "User", 2)
		require.NoError(t, err)
		assert.False(t, u.Deleted())
	})

	t.Run("Commit", func(t *testing.T) {
		_, err := cc.Get(ctx, "User", 1)
		require.NoError(t, err)
		require.True(t, cache.has("users:get:1"))

		err = cc.WithTx(ctx, func(tx *store.Tx) error {
			u, err := tx.Get(ctx, "User", 1)
			if err != nil {
				return err
			}
			_, err = tx.SoftDelete(ctx, u)
			return err
		})
		require.NoError(t, err)
		assert.False(t, cache.has("users:get:1"), "committed writes invalidate the cache")

		_, err = cc.Get(ctx, "User", 1)
		assert.True(t, veloxdb.IsNotFound(err))
	})
}
