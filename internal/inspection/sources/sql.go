package sources

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

// recordColumns is the projection every SQL backend selects, in scan order.
const recordColumns = "analyzed_at, ripeness_score, latitude, longitude, location_description, fruit_type"

// sqlSource is the database/sql plumbing shared by the Postgres and SQLite sources.
type sqlSource struct {
	name  string
	db    *sql.DB
	query func(collection string) string
}

func (s *sqlSource) Name() string {
	return s.name
}

// Close releases the underlying connection pool.
func (s *sqlSource) Close() error {
	return s.db.Close()
}

func (s *sqlSource) Records(ctx context.Context, collection string) ([]inspection.Record, error) {
	rows, err := s.db.QueryContext(ctx, s.query(collection))
	if err != nil {
		if mentionsAny(err.Error(), "does not exist", "no such table") {
			return nil, fmt.Errorf("query %s: %w: %v", collection, errMissingCollection, err)
		}
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var records []inspection.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (inspection.Record, error) {
	var (
		id          sql.NullString
		analyzedAt  any
		ripeness    any
		lat, lon    any
		description sql.NullString
		fruit       sql.NullString
	)
	if err := rows.Scan(&id, &analyzedAt, &ripeness, &lat, &lon, &description, &fruit); err != nil {
		return inspection.Record{}, err
	}

	rec := inspection.Record{
		ID:                  id.String,
		RipenessScore:       floatValue(ripeness),
		Latitude:            floatValue(lat),
		Longitude:           floatValue(lon),
		LocationDescription: nullString(description),
		FruitType:           nullString(fruit),
	}
	if ts, ok := timestampValue(analyzedAt); ok {
		rec.AnalyzedAt = &ts
	}
	return rec, nil
}

// timestampValue normalizes what drivers hand back for a timestamp column:
// lib/pq yields time.Time, SQLite usually yields text.
func timestampValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		return parseTimestamp(t)
	case []byte:
		return parseTimestamp(string(t))
	default:
		return time.Time{}, false
	}
}

// floatValue normalizes a numeric column. SQLite's loose typing lets text
// land in REAL columns; values that do not parse as a finite number are nil.
func floatValue(v any) *float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	case int64:
		f := float64(n)
		return &f
	case string:
		return parseFloat(n)
	case []byte:
		return parseFloat(string(n))
	default:
		return nil
	}
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
