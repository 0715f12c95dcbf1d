package models

import (
	"encoding/json"
	"time"

	"github.com/apimgr/saaskit/src/database"
)

// SessionTTL is how long a session lives without being refreshed.
const SessionTTL = 24 * time.Hour

// Session is a server-side session row. The Data bag carries loose
// per-session values (csrf_token, cached email and role) and survives
// id regeneration at login.
type Session struct {
	ID        string
	UserID    int64
	Data      map[string]string
	ExpiresAt string
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired() bool {
	expires, err := time.ParseInLocation(TimeFormat, s.ExpiresAt, time.Local)
	if err != nil {
		return true
	}
	return time.Now().After(expires)
}

// SessionModel handles server-side session storage.
type SessionModel struct {
	DB *database.DB
}

func sessionFromRow(row database.Row) *Session {
	if row == nil {
		return nil
	}
	s := &Session{
		ID:        asString(row, "id"),
		UserID:    asInt64(row, "user_id"),
		Data:      map[string]string{},
		ExpiresAt: asString(row, "expires_at"),
	}
	if raw := asString(row, "data"); raw != "" {
		// Ignore a corrupt bag rather than fail the request.
		_ = json.Unmarshal([]byte(raw), &s.Data)
	}
	return s
}

func encodeData(data map[string]string) (string, error) {
	if data == nil {
		data = map[string]string{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Create starts a fresh anonymous session and returns it.
func (m *SessionModel) Create() (*Session, error) {
	id, err := GenerateToken(32)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        id,
		Data:      map[string]string{},
		ExpiresAt: time.Now().Add(SessionTTL).Format(TimeFormat),
	}

	_, err = m.DB.Insert("sessions", map[string]any{
		"id":         s.ID,
		"user_id":    nil,
		"data":       "{}",
		"expires_at": s.ExpiresAt,
		"created_at": Now(),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID returns the session with the given id, or nil when it does
// not exist or has expired. Expired rows are deleted on sight.
func (m *SessionModel) GetByID(id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	row, err := m.DB.SelectOneByField("sessions", "id", id)
	if err != nil {
		return nil, err
	}
	s := sessionFromRow(row)
	if s == nil {
		return nil, nil
	}
	if s.Expired() {
		_ = m.DB.Delete("sessions", "id", s.ID)
		return nil, nil
	}
	return s, nil
}

// Save persists the session's user binding and data bag.
func (m *SessionModel) Save(s *Session) error {
	raw, err := encodeData(s.Data)
	if err != nil {
		return err
	}

	var userID any
	if s.UserID != 0 {
		userID = s.UserID
	}

	return m.DB.Update("sessions", "id", s.ID, map[string]any{
		"user_id":    userID,
		"data":       raw,
		"expires_at": s.ExpiresAt,
	})
}

// Regenerate replaces the session id while keeping the user binding and
// the data bag. Called at login so an id handed out before
// authentication never names an authenticated session.
func (m *SessionModel) Regenerate(s *Session) (*Session, error) {
	id, err := GenerateToken(32)
	if err != nil {
		return nil, err
	}
	raw, err := encodeData(s.Data)
	if err != nil {
		return nil, err
	}

	var userID any
	if s.UserID != 0 {
		userID = s.UserID
	}

	fresh := &Session{
		ID:        id,
		UserID:    s.UserID,
		Data:      s.Data,
		ExpiresAt: time.Now().Add(SessionTTL).Format(TimeFormat),
	}

	_, err = m.DB.Insert("sessions", map[string]any{
		"id":         fresh.ID,
		"user_id":    userID,
		"data":       raw,
		"expires_at": fresh.ExpiresAt,
		"created_at": Now(),
	})
	if err != nil {
		return nil, err
	}

	if err := m.DB.Delete("sessions", "id", s.ID); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Delete removes a session row.
func (m *SessionModel) Delete(id string) error {
	return m.DB.Delete("sessions", "id", id)
}

// CleanupExpired removes every session past its expiry.
func (m *SessionModel) CleanupExpired() error {
	return m.DB.Execute(
		`DELETE FROM "sessions" WHERE "expires_at" < ?`,
		Now(),
	)
}
