package store

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

// MemoryStore is a concurrency-safe in-memory inspection.Source.
type MemoryStore struct {
	mu sync.RWMutex

	// key: collection name, value: records in insertion order
	data map[string][]inspection.Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]inspection.Record),
	}
}

// LoadFixtures reads a YAML file mapping collection names to record lists:
//
//	halos_data:
//	  - analyzed_at: 2025-09-20T10:00:00Z
//	    ripeness_score: 6.5
func LoadFixtures(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var collections map[string][]inspection.Record
	if err := yaml.Unmarshal(raw, &collections); err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}

	s := NewMemoryStore()
	for name, records := range collections {
		s.Put(name, records...)
	}
	return s, nil
}

// Name implements inspection.Source.
func (s *MemoryStore) Name() string {
	return "memory"
}

// Put appends records to a collection, creating it when needed.
func (s *MemoryStore) Put(collection string, records ...inspection.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[collection] = append(s.data[collection], records...)
}

// Records returns a copy of the collection ordered by analyzed_at ascending.
// Records without a timestamp sort last, like NULLs in an ascending SQL order.
// Unknown collections yield an empty result.
func (s *MemoryStore) Records(ctx context.Context, collection string) ([]inspection.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.data[collection]
	if len(stored) == 0 {
		return nil, nil
	}

	result := make([]inspection.Record, len(stored))
	copy(result, stored)
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].AnalyzedAt, result[j].AnalyzedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return result, nil
}
