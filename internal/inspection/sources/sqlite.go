package sources

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteSource reads collections from a local SQLite file, for offline use.
type SQLiteSource struct {
	sqlSource
}

// OpenSQLite opens the database file at path.
func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return NewSQLiteSource(db), nil
}

// NewSQLiteSource wraps an open *sql.DB using the sqlite driver.
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{sqlSource{
		name: "sqlite",
		db:   db,
		query: func(collection string) string {
			// Timestamps are stored as text, so order by their julian day
			// rather than lexically. Unparseable and NULL values sort last.
			return fmt.Sprintf("SELECT CAST(id AS TEXT), %s FROM %s ORDER BY julianday(analyzed_at) IS NULL, julianday(analyzed_at) ASC",
				recordColumns, quoteIdent(collection))
		},
	}}
}

// sqliteDSN appends the busy timeout pragma to path, keeping any query
// parameters it already carries.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
