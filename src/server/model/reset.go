package models

import (
	"time"

	"github.com/apimgr/saaskit/src/database"
)

// ResetTokenTTL is the absolute lifetime of a password reset token.
const ResetTokenTTL = time.Hour

// PasswordReset represents a pending password reset request. There is at
// most one live row per user; a repeated request overwrites the token
// and expiry in place, invalidating any previously emailed link.
type PasswordReset struct {
	UserID    int64  `json:"user_id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Expired reports whether the token's absolute expiry has passed.
func (r *PasswordReset) Expired() bool {
	expires, err := time.ParseInLocation(TimeFormat, r.ExpiresAt, time.Local)
	if err != nil {
		return true
	}
	return time.Now().After(expires)
}

// PasswordResetModel handles password reset rows.
type PasswordResetModel struct {
	DB *database.DB
}

func resetFromRow(row database.Row) *PasswordReset {
	if row == nil {
		return nil
	}
	return &PasswordReset{
		UserID:    asInt64(row, "user_id"),
		Token:     asString(row, "token"),
		ExpiresAt: asString(row, "expires_at"),
	}
}

// Request issues a fresh reset token for a user. An existing row is
// overwritten rather than duplicated, so the newest link always wins.
func (m *PasswordResetModel) Request(userID int64) (*PasswordReset, error) {
	token, err := GenerateToken(32)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(ResetTokenTTL).Format(TimeFormat)

	existing, err := m.DB.SelectOneByField("password_resets", "user_id", userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		err = m.DB.Update("password_resets", "user_id", userID, map[string]any{
			"token":      token,
			"expires_at": expiresAt,
		})
	} else {
		_, err = m.DB.Insert("password_resets", map[string]any{
			"user_id":    userID,
			"token":      token,
			"expires_at": expiresAt,
		})
	}
	if err != nil {
		return nil, err
	}

	return &PasswordReset{UserID: userID, Token: token, ExpiresAt: expiresAt}, nil
}

// GetByToken returns the reset row matching a token, or nil. Expiry is
// the caller's concern; expired rows stay in place until overwritten or
// rejected on use.
func (m *PasswordResetModel) GetByToken(token string) (*PasswordReset, error) {
	if token == "" {
		return nil, nil
	}
	row, err := m.DB.SelectOneByField("password_resets", "token", token)
	if err != nil {
		return nil, err
	}
	return resetFromRow(row), nil
}

// Consume validates a token and, when it matches an unexpired row,
// replaces the user's password and deletes the row. Returns false when
// the token is invalid or expired; the password is left untouched.
func (m *PasswordResetModel) Consume(token, newPassword string, users *UserModel) (bool, error) {
	reset, err := m.GetByToken(token)
	if err != nil {
		return false, err
	}
	if reset == nil || reset.Expired() {
		return false, nil
	}

	if err := users.UpdatePassword(reset.UserID, newPassword); err != nil {
		return false, err
	}
	if err := m.DB.Delete("password_resets", "user_id", reset.UserID); err != nil {
		return false, err
	}
	return true, nil
}
