package chart

import (
	"bytes"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

func ripenessFixture() inspection.Series {
	base := time.Date(2025, 9, 18, 9, 30, 0, 0, time.UTC)
	return inspection.Series{
		{X: base, Y: 12.4},
		{X: base.Add(5 * time.Hour), Y: 8.1},
		{X: base.Add(30 * time.Hour), Y: 5.5},
		{X: base.Add(52 * time.Hour), Y: 2.2},
		{X: base.Add(75 * time.Hour), Y: 0},
	}
}

func shelfLifeFixture() inspection.Series {
	day := time.Date(2025, 9, 18, 0, 0, 0, 0, time.UTC)
	return inspection.Series{
		{X: day, Y: 8},
		{X: day.AddDate(0, 0, 1), Y: 5.75},
		{X: day.AddDate(0, 0, 2), Y: 2.75},
		{X: day.AddDate(0, 0, 4), Y: 1.5},
	}
}

func TestRenderProducesPNG(t *testing.T) {
	tests := []struct {
		kind   inspection.ChartKind
		series inspection.Series
	}{
		{inspection.ChartRipeness, ripenessFixture()},
		{inspection.ChartShelfLife, shelfLifeFixture()},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			img, err := Render(tt.kind, tt.series, "Sunkist")
			require.NoError(t, err)

			decoded, err := png.Decode(bytes.NewReader(img))
			require.NoError(t, err)
			assert.Equal(t, 1800, decoded.Bounds().Dx())
			assert.Equal(t, 900, decoded.Bounds().Dy())
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer()

	first, err := r.Render(inspection.ChartShelfLife, shelfLifeFixture(), "Halos")
	require.NoError(t, err)
	second, err := r.Render(inspection.ChartShelfLife, shelfLifeFixture(), "Halos")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second), "identical input must give identical bytes")

	other, err := r.Render(inspection.ChartShelfLife, shelfLifeFixture(), "Dole")
	require.NoError(t, err)
	assert.False(t, bytes.Equal(first, other), "the label is part of the image")
}

func TestRenderConcurrentCallsAreIsolated(t *testing.T) {
	want, err := Render(inspection.ChartRipeness, ripenessFixture(), "Sunkist")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Render(inspection.ChartRipeness, ripenessFixture(), "Sunkist")
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.True(t, bytes.Equal(want, got), "render %d differs", i)
	}
}

func TestRenderSinglePoint(t *testing.T) {
	series := inspection.Series{{X: time.Date(2025, 9, 18, 14, 0, 0, 0, time.UTC), Y: 4}}

	for _, kind := range []inspection.ChartKind{inspection.ChartRipeness, inspection.ChartShelfLife} {
		_, err := Render(kind, series, "Solo")
		assert.NoError(t, err, kind)
	}
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(inspection.ChartRipeness, nil, "Sunkist")
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = Render(inspection.ChartKind("pie"), ripenessFixture(), "Sunkist")
	assert.Error(t, err)
}
