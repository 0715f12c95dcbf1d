package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/apimgr/saaskit/src/database"
)

// TimeFormat is the storage format for every timestamp column.
const TimeFormat = "2006-01-02 15:04:05"

// Now returns the current time formatted for storage.
func Now() string {
	return time.Now().Format(TimeFormat)
}

// asString coerces a row value to string; NULL becomes "".
func asString(row database.Row, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// asInt64 coerces a row value to int64; NULL and unparseable values
// become 0.
func asInt64(row database.Row, key string) int64 {
	switch v := row[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// asBool treats any non-zero numeric or "true"/"1" string as true,
// matching how SQLite and MySQL hand back boolean columns.
func asBool(row database.Row, key string) bool {
	switch v := row[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v == "1" || v == "true"
	default:
		return false
	}
}
