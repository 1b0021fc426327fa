package sources

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresSource reads collections straight from the Postgres database
// behind the hosted project.
type PostgresSource struct {
	sqlSource
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewPostgresSource(db), nil
}

// NewPostgresSource wraps an open *sql.DB using the postgres driver.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{sqlSource{
		name: "postgres",
		db:   db,
		query: func(collection string) string {
			// ASC puts NULL timestamps last in Postgres.
			return fmt.Sprintf("SELECT id::text, %s FROM %s ORDER BY analyzed_at ASC",
				recordColumns, pq.QuoteIdentifier(collection))
		},
	}}
}
