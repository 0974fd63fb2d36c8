package dialect

import "strings"

// Database dialects supported by the provisioners and the query runtime.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Normalize maps driver names and DSN schemes to a dialect constant.
// It returns the empty string for unknown names.
func Normalize(name string) string {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3", "file":
		return SQLite
	case "postgres", "postgresql", "pg":
		return Postgres
	case "mysql", "mariadb":
		return MySQL
	default:
		return ""
	}
}
