package database

// SchemaVersion is bumped whenever Schema changes shape.
const SchemaVersion = 1

// Schema contains all table creation SQL. Written for SQLite, which is
// the default and test database; MySQL and PostgreSQL deployments are
// expected to be pre-provisioned from deployment scripts rather than
// from this bootstrap DDL.
var Schema = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- User accounts
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT UNIQUE NOT NULL,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user' CHECK(role IN ('admin', 'user')),
	is_active INTEGER NOT NULL DEFAULT 0,
	verification_token TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
CREATE INDEX IF NOT EXISTS idx_users_verification_token ON users(verification_token);

-- Password reset requests, at most one live row per user
CREATE TABLE IF NOT EXISTS password_resets (
	user_id INTEGER PRIMARY KEY,
	token TEXT NOT NULL,
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_password_resets_token ON password_resets(token);

-- Site settings singleton (id = 1)
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY,
	site_name TEXT,
	site_icon TEXT,
	site_description TEXT,
	contact_email TEXT,
	price_gbp TEXT,
	recaptcha_site_key TEXT,
	recaptcha_secret_key TEXT,
	stripe_mode TEXT,
	stripe_test_secret_key TEXT,
	stripe_test_publishable_key TEXT,
	stripe_live_secret_key TEXT,
	stripe_live_publishable_key TEXT,
	facebook_link TEXT,
	x_link TEXT,
	instagram_link TEXT,
	home_meta_title TEXT,
	home_meta_description TEXT
);

-- Server-side sessions
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	user_id INTEGER,
	data TEXT,
	expires_at DATETIME NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
`

// allowedColumns is the identifier allow-list consulted before any table
// or column name is interpolated into SQL text. Values are always bound
// through placeholders; identifiers never come from user input, but the
// list keeps a careless caller from turning a form field into SQL.
var allowedColumns = map[string]map[string]bool{
	"users": {
		"id":                 true,
		"email":              true,
		"username":           true,
		"password":           true,
		"role":               true,
		"is_active":          true,
		"verification_token": true,
		"created_at":         true,
		"updated_at":         true,
	},
	"password_resets": {
		"user_id":    true,
		"token":      true,
		"expires_at": true,
	},
	"settings": {
		"id":                          true,
		"site_name":                   true,
		"site_icon":                   true,
		"site_description":            true,
		"contact_email":               true,
		"price_gbp":                   true,
		"recaptcha_site_key":          true,
		"recaptcha_secret_key":        true,
		"stripe_mode":                 true,
		"stripe_test_secret_key":      true,
		"stripe_test_publishable_key": true,
		"stripe_live_secret_key":      true,
		"stripe_live_publishable_key": true,
		"facebook_link":               true,
		"x_link":                      true,
		"instagram_link":              true,
		"home_meta_title":             true,
		"home_meta_description":       true,
	},
	"sessions": {
		"id":         true,
		"user_id":    true,
		"data":       true,
		"expires_at": true,
		"created_at": true,
	},
}

// DefaultSettings seeds the settings singleton on a fresh database.
var DefaultSettings = map[string]string{
	"site_name":        "Your Site Name",
	"site_icon":        "fas fa-globe",
	"site_description": "Your site description.",
	"contact_email":    "no-reply@example.com",
	"stripe_mode":      "test",
}
