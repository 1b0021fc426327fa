package inspection

import (
	"testing"
	"time"
)

func at(t *testing.T, s string) *time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return &ts
}

func score(v float64) *float64 {
	return &v
}
