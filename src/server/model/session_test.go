package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreateAndGet(t *testing.T) {
	sessions := &SessionModel{DB: newTestDB(t)}

	s, err := sessions.Create()
	require.NoError(t, err)
	assert.Len(t, s.ID, 64)
	assert.Zero(t, s.UserID)

	loaded, err := sessions.GetByID(s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Empty(t, loaded.Data)

	missing, err := sessions.GetByID("no-such-session")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = sessions.GetByID("")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionSaveDataBag(t *testing.T) {
	db := newTestDB(t)
	sessions := &SessionModel{DB: db}

	s, err := sessions.Create()
	require.NoError(t, err)

	s.UserID = 7
	s.Data["email"] = "a@example.com"
	s.Data["csrf_token"] = "abc123"
	require.NoError(t, sessions.Save(s))

	loaded, err := sessions.GetByID(s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.EqualValues(t, 7, loaded.UserID)
	assert.Equal(t, "a@example.com", loaded.Data["email"])
	assert.Equal(t, "abc123", loaded.Data["csrf_token"])
}

func TestSessionRegenerateKeepsData(t *testing.T) {
	sessions := &SessionModel{DB: newTestDB(t)}

	s, err := sessions.Create()
	require.NoError(t, err)
	s.UserID = 3
	s.Data["csrf_token"] = "keep-me"
	require.NoError(t, sessions.Save(s))

	fresh, err := sessions.Regenerate(s)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, fresh.ID)
	assert.EqualValues(t, 3, fresh.UserID)
	assert.Equal(t, "keep-me", fresh.Data["csrf_token"])

	// The old id no longer resolves.
	old, err := sessions.GetByID(s.ID)
	require.NoError(t, err)
	assert.Nil(t, old)

	loaded, err := sessions.GetByID(fresh.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "keep-me", loaded.Data["csrf_token"])
	assert.EqualValues(t, 3, loaded.UserID)
}

func TestSessionExpiry(t *testing.T) {
	db := newTestDB(t)
	sessions := &SessionModel{DB: db}

	s, err := sessions.Create()
	require.NoError(t, err)

	err = db.Update("sessions", "id", s.ID, map[string]any{
		"expires_at": time.Now().Add(-time.Minute).Format(TimeFormat),
	})
	require.NoError(t, err)

	loaded, err := sessions.GetByID(s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// The expired row was purged on read.
	n, err := db.Count("sessions")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSessionDeleteAndCleanup(t *testing.T) {
	db := newTestDB(t)
	sessions := &SessionModel{DB: db}

	s, err := sessions.Create()
	require.NoError(t, err)
	require.NoError(t, sessions.Delete(s.ID))

	gone, err := sessions.GetByID(s.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	live, err := sessions.Create()
	require.NoError(t, err)

	stale, err := sessions.Create()
	require.NoError(t, err)
	err = db.Update("sessions", "id", stale.ID, map[string]any{
		"expires_at": time.Now().Add(-time.Hour).Format(TimeFormat),
	})
	require.NoError(t, err)

	require.NoError(t, sessions.CleanupExpired())

	n, err := db.Count("sessions")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	kept, err := sessions.GetByID(live.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
