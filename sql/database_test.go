package sql

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testTables(db Executor) error {
	if _, err := db.Exec(`create table testing1 (
		id varchar primary key,
		field int
	)`, nil, nil); err != nil {
		return err
	}
	return nil
}

func testURI(tb testing.TB) string {
	tb.Helper()
	return "file:" + filepath.Join(tb.TempDir(), "state.sql")
}

func TestTransactionIsolation(t *testing.T) {
	db := InMemory(WithMigrations(testTables))

	tx, err := db.Tx(context.TODO())
	require.NoError(t, err)

	key := "dsada"
	_, err = tx.Exec("insert into testing1(id, field) values (?1, ?2)", func(stmt *Statement) {
		stmt.BindText(1, key)
		stmt.BindInt64(2, 20)
	}, nil)
	require.NoError(t, err)

	rows, err := tx.Exec("select 1 from testing1 where id = ?1", func(stmt *Statement) {
		stmt.BindText(1, key)
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, rows)

	require.NoError(t, tx.Release())

	rows, err = db.Exec("select 1 from testing1 where id = ?1", func(stmt *Statement) {
		stmt.BindText(1, key)
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, rows)
}

func TestWithTxRollbackOnError(t *testing.T) {
	db := InMemory(WithMigrations(testTables))
	failure := errors.New("test")
	err := db.WithTxImmediate(context.Background(), func(tx *Tx) error {
		_, err := tx.Exec("insert into testing1(id, field) values ('a', 1)", nil, nil)
		require.NoError(t, err)
		return failure
	})
	require.ErrorIs(t, err, failure)

	rows, err := db.Exec("select 1 from testing1", nil, nil)
	require.NoError(t, err)
	require.Zero(t, rows)

	require.NoError(t, db.WithTx(context.Background(), func(tx *Tx) error {
		_, err := tx.Exec("insert into testing1(id, field) values ('a', 1)", nil, nil)
		return err
	}))
	rows, err = db.Exec("select 1 from testing1", nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, rows)
}

func TestObjectExists(t *testing.T) {
	db := InMemory(WithMigrations(testTables))
	insert := func() error {
		_, err := db.Exec("insert into testing1(id, field) values ('a', 1)", nil, nil)
		return err
	}
	require.NoError(t, insert())
	require.ErrorIs(t, insert(), ErrObjectExists)
}

func TestEmbeddedMigrations(t *testing.T) {
	uri := testURI(t)
	db, err := Open(uri, WithLogger(zaptest.NewLogger(t)), WithLatencyMetering(true))
	require.NoError(t, err)
	v, err := version(db)
	require.NoError(t, err)
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	require.Equal(t, migrations[len(migrations)-1].order, v)

	for _, table := range []string{"accounts", "signers", "executed"} {
		rows, err := db.Exec("select name from sqlite_master where type = 'table' and name = ?1",
			func(stmt *Statement) {
				stmt.BindText(1, table)
			}, nil)
		require.NoError(t, err)
		require.Equal(t, 1, rows, table)
	}
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	// reopening applies nothing new
	db, err = Open(uri)
	require.NoError(t, err)
	v2, err := version(db)
	require.NoError(t, err)
	require.Equal(t, v, v2)
	require.NoError(t, db.Close())
}
