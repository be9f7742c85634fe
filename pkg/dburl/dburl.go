// Package dburl classifies the database URLs accepted by the server and the
// migration tool.
package dburl

import "strings"

// Memory selects the in-memory store.
const Memory = "memory://"

// DefaultSQLite is the legacy database file the migration tool reads by default.
const DefaultSQLite = "sqlite:///./meapi.db"

// Normalize rewrites postgres:// and SQLAlchemy-style postgresql+driver://
// URLs to postgresql://.
func Normalize(url string) string {
	url = strings.TrimSpace(url)
	for _, prefix := range []string{"postgresql+psycopg2://", "postgresql+psycopg://", "postgres://"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			return "postgresql://" + rest
		}
	}
	return url
}

func IsPostgres(url string) bool {
	return strings.HasPrefix(Normalize(url), "postgresql://")
}

func IsSQLite(url string) bool {
	return strings.HasPrefix(strings.TrimSpace(url), "sqlite:")
}

func IsMemory(url string) bool {
	return strings.TrimSpace(url) == Memory
}

// SQLitePath extracts the file path from sqlite:///relative or sqlite:////absolute.
func SQLitePath(url string) string {
	url = strings.TrimSpace(url)
	if rest, ok := strings.CutPrefix(url, "sqlite:///"); ok {
		return rest
	}
	return strings.TrimPrefix(url, "sqlite:")
}
