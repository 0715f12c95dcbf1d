// Package database provides the connection bootstrap and a generic,
// allow-listed CRUD helper shared by every model in the application.
package database

import (
	"database/sql"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
)

// Row is a single result row keyed by column name.
type Row map[string]any

// AccessError wraps a failed statement with the operation that issued it.
// Handlers let it propagate to the top-level error page; nothing retries.
type AccessError struct {
	Op  string
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("database: %s: %v", e.Op, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

func accessErr(op string, err error) error {
	return &AccessError{Op: op, Err: err}
}

// DB is the generic data access layer. One instance is constructed at
// startup and handed to every handler; there is no package-level state.
type DB struct {
	conn *sql.DB
	sb   sq.StatementBuilderType
}

// New wraps an open connection. Callers own the connection lifetime.
func New(conn *sql.DB) *DB {
	return &DB{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// Conn exposes the underlying connection for the rare caller that needs
// driver-level access (schema bootstrap, health checks).
func (db *DB) Conn() *sql.DB { return db.conn }

// table validates a table name against the schema allow-list and returns
// it quoted for interpolation.
func table(op, name string) (string, error) {
	if _, ok := allowedColumns[name]; !ok {
		return "", accessErr(op, fmt.Errorf("unknown table %q", name))
	}
	return quoteIdent(name), nil
}

// column validates a column name within a table against the allow-list.
func column(op, tableName, name string) (string, error) {
	cols, ok := allowedColumns[tableName]
	if !ok {
		return "", accessErr(op, fmt.Errorf("unknown table %q", tableName))
	}
	if !cols[name] {
		return "", accessErr(op, fmt.Errorf("unknown column %q in table %q", name, tableName))
	}
	return quoteIdent(name), nil
}

func quoteIdent(name string) string { return `"` + name + `"` }

// sortedKeys gives field maps a deterministic statement shape.
func sortedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Select runs a raw parameterized query and returns all rows.
func (db *DB) Select(query string, args ...any) ([]Row, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, accessErr("select", err)
	}
	defer rows.Close()
	return scanRows("select", rows)
}

// SelectOne runs a raw parameterized query and returns the first row,
// or nil when nothing matched.
func (db *DB) SelectOne(query string, args ...any) (Row, error) {
	result, err := db.Select(query, args...)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

// SelectAll returns every row of a table.
func (db *DB) SelectAll(tableName string) ([]Row, error) {
	t, err := table("selectAll", tableName)
	if err != nil {
		return nil, err
	}
	return db.Select(fmt.Sprintf("SELECT * FROM %s", t))
}

// SelectByField returns all rows where field = value.
func (db *DB) SelectByField(tableName, field string, value any) ([]Row, error) {
	t, err := table("selectByField", tableName)
	if err != nil {
		return nil, err
	}
	f, err := column("selectByField", tableName, field)
	if err != nil {
		return nil, err
	}
	return db.Select(fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", t, f), value)
}

// SelectAllByField is an alias for SelectByField kept for call-site
// readability when the full set is wanted.
func (db *DB) SelectAllByField(tableName, field string, value any) ([]Row, error) {
	return db.SelectByField(tableName, field, value)
}

// SelectOneByField returns the first row where field = value, or nil.
func (db *DB) SelectOneByField(tableName, field string, value any) (Row, error) {
	result, err := db.SelectByField(tableName, field, value)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

// SelectOneByTwoFields returns the first row matching both equality
// filters, or nil.
func (db *DB) SelectOneByTwoFields(tableName, field1 string, value1 any, field2 string, value2 any) (Row, error) {
	t, err := table("selectOneByTwoFields", tableName)
	if err != nil {
		return nil, err
	}
	f1, err := column("selectOneByTwoFields", tableName, field1)
	if err != nil {
		return nil, err
	}
	f2, err := column("selectOneByTwoFields", tableName, field2)
	if err != nil {
		return nil, err
	}
	return db.SelectOne(
		fmt.Sprintf("SELECT * FROM %s WHERE %s = ? AND %s = ?", t, f1, f2),
		value1, value2,
	)
}

// Insert builds an INSERT from the field map and returns the generated id.
func (db *DB) Insert(tableName string, fields map[string]any) (int64, error) {
	t, err := table("insert", tableName)
	if err != nil {
		return 0, err
	}

	cols := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, k := range sortedKeys(fields) {
		c, err := column("insert", tableName, k)
		if err != nil {
			return 0, err
		}
		cols = append(cols, c)
		vals = append(vals, fields[k])
	}

	query, args, err := db.sb.Insert(t).Columns(cols...).Values(vals...).ToSql()
	if err != nil {
		return 0, accessErr("insert", err)
	}

	result, err := db.conn.Exec(query, args...)
	if err != nil {
		return 0, accessErr("insert", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, accessErr("insert", err)
	}
	return id, nil
}

// BulkInsert inserts all rows in one statement. The column set is taken
// from the first row; every row must supply the same columns. Empty
// input is a no-op.
func (db *DB) BulkInsert(tableName string, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}

	t, err := table("bulkInsert", tableName)
	if err != nil {
		return err
	}

	keys := sortedKeys(rows[0])
	cols := make([]string, 0, len(keys))
	for _, k := range keys {
		c, err := column("bulkInsert", tableName, k)
		if err != nil {
			return err
		}
		cols = append(cols, c)
	}

	builder := db.sb.Insert(t).Columns(cols...)
	for i, row := range rows {
		vals := make([]any, 0, len(keys))
		for _, k := range keys {
			v, ok := row[k]
			if !ok {
				return accessErr("bulkInsert", fmt.Errorf("row %d is missing column %q", i, k))
			}
			vals = append(vals, v)
		}
		builder = builder.Values(vals...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return accessErr("bulkInsert", err)
	}
	if _, err := db.conn.Exec(query, args...); err != nil {
		return accessErr("bulkInsert", err)
	}
	return nil
}

// Update builds an UPDATE ... SET ... WHERE keyField = keyValue. Passing
// an empty keyField updates every row and must be confirmed explicitly
// with unconditional=true; otherwise the operation is refused before any
// statement is issued.
func (db *DB) Update(tableName, keyField string, keyValue any, fields map[string]any, unconditional ...bool) error {
	t, err := table("update", tableName)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return accessErr("update", fmt.Errorf("no fields to update"))
	}

	builder := db.sb.Update(t)
	for _, k := range sortedKeys(fields) {
		c, err := column("update", tableName, k)
		if err != nil {
			return err
		}
		builder = builder.Set(c, fields[k])
	}

	if keyField == "" {
		if len(unconditional) == 0 || !unconditional[0] {
			return accessErr("update", fmt.Errorf("refusing to update all rows of %q without confirmation", tableName))
		}
	} else {
		f, err := column("update", tableName, keyField)
		if err != nil {
			return err
		}
		builder = builder.Where(fmt.Sprintf("%s = ?", f), keyValue)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return accessErr("update", err)
	}
	if _, err := db.conn.Exec(query, args...); err != nil {
		return accessErr("update", err)
	}
	return nil
}

// Delete removes rows where field = value. Passing an empty field deletes
// every row and must be confirmed explicitly with unconditional=true.
func (db *DB) Delete(tableName, field string, value any, unconditional ...bool) error {
	t, err := table("delete", tableName)
	if err != nil {
		return err
	}

	builder := db.sb.Delete(t)
	if field == "" {
		if len(unconditional) == 0 || !unconditional[0] {
			return accessErr("delete", fmt.Errorf("refusing to delete all rows of %q without confirmation", tableName))
		}
	} else {
		f, err := column("delete", tableName, field)
		if err != nil {
			return err
		}
		builder = builder.Where(fmt.Sprintf("%s = ?", f), value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return accessErr("delete", err)
	}
	if _, err := db.conn.Exec(query, args...); err != nil {
		return accessErr("delete", err)
	}
	return nil
}

// Count returns the number of rows in a table.
func (db *DB) Count(tableName string) (int, error) {
	t, err := table("count", tableName)
	if err != nil {
		return 0, err
	}

	var n int
	if err := db.conn.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", t)).Scan(&n); err != nil {
		return 0, accessErr("count", err)
	}
	return n, nil
}

// Execute runs a raw parameterized statement with no result rows.
func (db *DB) Execute(query string, args ...any) error {
	if _, err := db.conn.Exec(query, args...); err != nil {
		return accessErr("execute", err)
	}
	return nil
}

// scanRows converts sql.Rows into string-keyed maps, normalizing []byte
// values to string so callers can compare and render them directly.
func scanRows(op string, rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, accessErr(op, err)
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, accessErr(op, err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, accessErr(op, err)
	}
	return result, nil
}
