package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Config holds database connection configuration.
type Config struct {
	// sqlite, mysql, postgres
	Type     string `yaml:"type" env:"DB_TYPE"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Database string `yaml:"database" env:"DB_NAME"`
	Username string `yaml:"username" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASS"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
}

// Open connects to the configured database, applies the schema on fresh
// SQLite databases and seeds the settings singleton.
func Open(cfg Config) (*DB, error) {
	var dsn, driver string

	switch strings.ToLower(cfg.Type) {
	case "", "sqlite":
		driver = "sqlite"
		if cfg.Database == "" {
			return nil, fmt.Errorf("database path required for SQLite")
		}
		dsn = cfg.Database

	case "mysql", "mariadb":
		driver = "mysql"
		// ANSI_QUOTES so the access layer's double-quoted identifiers work.
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&sql_mode=ANSI_QUOTES",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	case "postgres", "postgresql":
		driver = "pgx"
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, sslMode)

	default:
		return nil, fmt.Errorf("unsupported database type: %s (supported: sqlite, mysql, postgres)", cfg.Type)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetConnMaxLifetime(3 * time.Minute)
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite" {
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := Bootstrap(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return New(conn), nil
}

// Bootstrap creates the schema if needed, records the schema version and
// seeds the settings singleton. Safe to call on an existing database.
func Bootstrap(conn *sql.DB) error {
	if _, err := conn.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var currentVersion int
	err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to check schema version: %w", err)
	}

	if currentVersion == 0 {
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return fmt.Errorf("failed to insert schema version: %w", err)
		}
	}

	// The settings row is assumed to exist at runtime; create it here so
	// reads never have to deal with an absent singleton.
	var settingsCount int
	if err := conn.QueryRow("SELECT COUNT(*) FROM settings WHERE id = 1").Scan(&settingsCount); err != nil {
		return fmt.Errorf("failed to check settings row: %w", err)
	}
	if settingsCount == 0 {
		_, err := conn.Exec(`
			INSERT INTO settings (id, site_name, site_icon, site_description, contact_email, stripe_mode)
			VALUES (1, ?, ?, ?, ?, ?)
		`,
			DefaultSettings["site_name"],
			DefaultSettings["site_icon"],
			DefaultSettings["site_description"],
			DefaultSettings["contact_email"],
			DefaultSettings["stripe_mode"],
		)
		if err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
	}

	return nil
}
