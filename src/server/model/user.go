// Package models provides the data models backed by the generic
// database access layer.
package models

import (
	"fmt"

	"github.com/apimgr/saaskit/src/database"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a user account.
type User struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	Username          string `json:"username"`
	PasswordHash      string `json:"-"`
	Role              string `json:"role"`
	IsActive          bool   `json:"is_active"`
	VerificationToken string `json:"-"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserModel handles user database operations.
type UserModel struct {
	DB *database.DB
}

func userFromRow(row database.Row) *User {
	if row == nil {
		return nil
	}
	return &User{
		ID:                asInt64(row, "id"),
		Email:             asString(row, "email"),
		Username:          asString(row, "username"),
		PasswordHash:      asString(row, "password"),
		Role:              asString(row, "role"),
		IsActive:          asBool(row, "is_active"),
		VerificationToken: asString(row, "verification_token"),
		CreatedAt:         asString(row, "created_at"),
		UpdatedAt:         asString(row, "updated_at"),
	}
}

// Count returns the number of registered accounts.
func (m *UserModel) Count() (int, error) {
	return m.DB.Count("users")
}

// GetByID returns the user with the given id, or nil.
func (m *UserModel) GetByID(id int64) (*User, error) {
	row, err := m.DB.SelectOneByField("users", "id", id)
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

// GetByEmail returns the user with the given email, or nil.
func (m *UserModel) GetByEmail(email string) (*User, error) {
	row, err := m.DB.SelectOneByField("users", "email", email)
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

// GetByUsername returns the user with the given username, or nil.
func (m *UserModel) GetByUsername(username string) (*User, error) {
	row, err := m.DB.SelectOneByField("users", "username", username)
	if err != nil {
		return nil, err
	}
	return userFromRow(row), nil
}

// All returns every account, for the admin user list.
func (m *UserModel) All() ([]*User, error) {
	rows, err := m.DB.SelectAll("users")
	if err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

// Create registers a new account. The first account ever registered is
// auto-activated and made admin; every later account starts inactive
// with a verification token attached.
func (m *UserModel) Create(email, username, password string) (*User, error) {
	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	count, err := m.Count()
	if err != nil {
		return nil, err
	}

	role := RoleUser
	isActive := 0
	if count == 0 {
		role = RoleAdmin
		isActive = 1
	}

	token, err := GenerateToken(32)
	if err != nil {
		return nil, err
	}

	now := Now()
	id, err := m.DB.Insert("users", map[string]any{
		"email":              email,
		"username":           username,
		"password":           passwordHash,
		"role":               role,
		"verification_token": token,
		"is_active":          isActive,
		"created_at":         now,
		"updated_at":         now,
	})
	if err != nil {
		return nil, err
	}

	return m.GetByID(id)
}

// Verify consumes a verification token: the matching account is
// activated and the token column cleared, which makes the token
// single-use. Returns the verified user, or nil when the token does not
// match any account.
func (m *UserModel) Verify(token string) (*User, error) {
	if token == "" {
		return nil, nil
	}

	row, err := m.DB.SelectOneByField("users", "verification_token", token)
	if err != nil {
		return nil, err
	}
	user := userFromRow(row)
	if user == nil {
		return nil, nil
	}

	err = m.DB.Update("users", "id", user.ID, map[string]any{
		"is_active":          1,
		"verification_token": nil,
		"updated_at":         Now(),
	})
	if err != nil {
		return nil, err
	}

	user.IsActive = true
	user.VerificationToken = ""
	return user, nil
}

// UpdatePassword replaces the stored password hash.
func (m *UserModel) UpdatePassword(id int64, password string) error {
	passwordHash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return m.DB.Update("users", "id", id, map[string]any{
		"password":   passwordHash,
		"updated_at": Now(),
	})
}

// AdminUpdate applies an admin edit to username, email, role and active
// flag.
func (m *UserModel) AdminUpdate(id int64, username, email, role string, isActive bool) error {
	active := 0
	if isActive {
		active = 1
	}
	return m.DB.Update("users", "id", id, map[string]any{
		"username":   username,
		"email":      email,
		"role":       role,
		"is_active":  active,
		"updated_at": Now(),
	})
}

// Delete removes an account.
func (m *UserModel) Delete(id int64) error {
	return m.DB.Delete("users", "id", id)
}
