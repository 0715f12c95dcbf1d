package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, Bootstrap(conn))
	return New(conn)
}

func insertUser(t *testing.T, db *DB, email, username string) int64 {
	t.Helper()

	id, err := db.Insert("users", map[string]any{
		"email":     email,
		"username":  username,
		"password":  "x",
		"role":      "user",
		"is_active": 0,
	})
	require.NoError(t, err)
	return id
}

func TestInsertAndSelectOneByField(t *testing.T) {
	db := newTestDB(t)

	id := insertUser(t, db, "a@example.com", "alice")
	assert.Greater(t, id, int64(0))

	row, err := db.SelectOneByField("users", "email", "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "alice", row["username"])
	assert.EqualValues(t, id, row["id"])

	missing, err := db.SelectOneByField("users", "email", "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSelectByField(t *testing.T) {
	db := newTestDB(t)

	insertUser(t, db, "a@example.com", "alice")
	insertUser(t, db, "b@example.com", "bob")

	rows, err := db.SelectByField("users", "role", "user")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	all, err := db.SelectAll("users")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSelectOneByTwoFields(t *testing.T) {
	db := newTestDB(t)

	insertUser(t, db, "a@example.com", "alice")

	row, err := db.SelectOneByTwoFields("users", "email", "a@example.com", "username", "alice")
	require.NoError(t, err)
	require.NotNil(t, row)

	row, err = db.SelectOneByTwoFields("users", "email", "a@example.com", "username", "bob")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestUpdateByKeyField(t *testing.T) {
	db := newTestDB(t)

	id := insertUser(t, db, "a@example.com", "alice")
	insertUser(t, db, "b@example.com", "bob")

	err := db.Update("users", "id", id, map[string]any{"is_active": 1})
	require.NoError(t, err)

	row, err := db.SelectOneByField("users", "id", id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, row["is_active"])

	other, err := db.SelectOneByField("users", "username", "bob")
	require.NoError(t, err)
	assert.EqualValues(t, 0, other["is_active"])
}

func TestUpdateWithoutKeyFailsClosed(t *testing.T) {
	db := newTestDB(t)

	insertUser(t, db, "a@example.com", "alice")

	err := db.Update("users", "", nil, map[string]any{"is_active": 1})
	require.Error(t, err)

	var accessErr *AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, "update", accessErr.Op)

	// Nothing was touched.
	row, err := db.SelectOneByField("users", "username", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 0, row["is_active"])
}

func TestUpdateUnconditional(t *testing.T) {
	db := newTestDB(t)

	insertUser(t, db, "a@example.com", "alice")
	insertUser(t, db, "b@example.com", "bob")

	require.NoError(t, db.Update("users", "", nil, map[string]any{"is_active": 1}, true))

	rows, err := db.SelectAll("users")
	require.NoError(t, err)
	for _, row := range rows {
		assert.EqualValues(t, 1, row["is_active"])
	}
}

func TestDeleteWithoutKeyFailsClosed(t *testing.T) {
	db := newTestDB(t)

	insertUser(t, db, "a@example.com", "alice")

	err := db.Delete("users", "", nil)
	require.Error(t, err)

	var accessErr *AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, "delete", accessErr.Op)

	n, err := db.Count("users")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDeleteByField(t *testing.T) {
	db := newTestDB(t)

	insertUser(t, db, "a@example.com", "alice")
	insertUser(t, db, "b@example.com", "bob")

	require.NoError(t, db.Delete("users", "username", "alice"))

	n, err := db.Count("users")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, db.Delete("users", "", nil, true))

	n, err = db.Count("users")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestBulkInsert(t *testing.T) {
	db := newTestDB(t)

	// Empty input is a no-op.
	require.NoError(t, db.BulkInsert("users", nil))

	rows := []map[string]any{
		{"email": "a@example.com", "username": "alice", "password": "x", "role": "user", "is_active": 0},
		{"email": "b@example.com", "username": "bob", "password": "x", "role": "user", "is_active": 0},
		{"email": "c@example.com", "username": "carol", "password": "x", "role": "admin", "is_active": 1},
	}
	require.NoError(t, db.BulkInsert("users", rows))

	n, err := db.Count("users")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestBulkInsertMismatchedColumns(t *testing.T) {
	db := newTestDB(t)

	rows := []map[string]any{
		{"email": "a@example.com", "username": "alice", "password": "x"},
		{"email": "b@example.com", "username": "bob"},
	}
	err := db.BulkInsert("users", rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestIdentifierAllowList(t *testing.T) {
	db := newTestDB(t)

	_, err := db.SelectOneByField("users; DROP TABLE users", "email", "a@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown table")

	_, err = db.SelectOneByField("users", "email = '' OR 1=1 --", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")

	_, err = db.Insert("users", map[string]any{"nope": 1})
	require.Error(t, err)

	err = db.Update("users", "id", 1, map[string]any{"nope": 1})
	require.Error(t, err)
}

func TestInsertConstraintViolation(t *testing.T) {
	db := newTestDB(t)

	insertUser(t, db, "a@example.com", "alice")

	_, err := db.Insert("users", map[string]any{
		"email":     "a@example.com",
		"username":  "alice2",
		"password":  "x",
		"role":      "user",
		"is_active": 0,
	})
	require.Error(t, err)

	var accessErr *AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, "insert", accessErr.Op)
}

func TestAccessErrorCarriesOperation(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	db := New(conn)

	boom := errors.New("connection lost")
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(boom)

	_, err = db.Insert("users", map[string]any{"email": "a@example.com", "password": "x", "username": "a"})
	require.Error(t, err)

	var accessErr *AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, "insert", accessErr.Op)
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	db := newTestDB(t)

	n, err := db.Count("users")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	insertUser(t, db, "a@example.com", "alice")

	n, err = db.Count("users")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = db.Count("not_a_table")
	require.Error(t, err)
}
