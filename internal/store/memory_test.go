package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

func ptrTime(t time.Time) *time.Time { return &t }
func ptrFloat(v float64) *float64    { return &v }

func TestMemoryStoreOrdersByAnalyzedAt(t *testing.T) {
	s := NewMemoryStore()
	day := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)

	s.Put("sunkist_data",
		inspection.Record{ID: "c", AnalyzedAt: ptrTime(day.Add(3 * time.Hour))},
		inspection.Record{ID: "none"},
		inspection.Record{ID: "a", AnalyzedAt: ptrTime(day.Add(1 * time.Hour))},
	)
	s.Put("sunkist_data", inspection.Record{ID: "b", AnalyzedAt: ptrTime(day.Add(2 * time.Hour))})

	got, err := s.Records(context.Background(), "sunkist_data")
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"a", "b", "c", "none"}, ids)
}

func TestMemoryStoreUnknownCollection(t *testing.T) {
	got, err := NewMemoryStore().Records(context.Background(), "missing_data")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.Put("halos_data", inspection.Record{ID: "1"})

	got, err := s.Records(context.Background(), "halos_data")
	require.NoError(t, err)
	got[0].ID = "mutated"

	again, err := s.Records(context.Background(), "halos_data")
	require.NoError(t, err)
	assert.Equal(t, "1", again[0].ID)
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Records(ctx, "halos_data")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
halos_data:
  - id: "2"
    analyzed_at: 2025-09-21T10:00:00Z
    ripeness_score: 9.5
    fruit_type: Mandarin
  - id: "1"
    analyzed_at: 2025-09-20T10:00:00Z
    ripeness_score: 2
    latitude: 34.0522
    longitude: -118.2437
sunkist_data: []
`), 0o644))

	s, err := LoadFixtures(path)
	require.NoError(t, err)

	got, err := s.Records(context.Background(), "halos_data")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, ptrFloat(2), got[0].RipenessScore)
	assert.Equal(t, ptrFloat(34.0522), got[0].Latitude)
	require.NotNil(t, got[1].FruitType)
	assert.Equal(t, "Mandarin", *got[1].FruitType)

	empty, err := s.Records(context.Background(), "sunkist_data")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadFixturesMissingFile(t *testing.T) {
	_, err := LoadFixtures(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
