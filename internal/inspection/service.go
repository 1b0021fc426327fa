package inspection

import (
	"context"
	"fmt"
)

// ChartKind names one of the charts the service can draw.
type ChartKind string

const (
	ChartRipeness  ChartKind = "ripeness"
	ChartShelfLife ChartKind = "shelf_life"
)

// Valid reports whether k is a known chart kind.
func (k ChartKind) Valid() bool {
	return k == ChartRipeness || k == ChartShelfLife
}

// Renderer turns a series into an encoded image.
type Renderer interface {
	Render(kind ChartKind, series Series, label string) ([]byte, error)
}

// Service runs the resolve -> fetch -> transform pipeline for one supplier.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	gateway  *Gateway
	renderer Renderer
}

// NewService creates a new Service.
func NewService(gateway *Gateway, renderer Renderer) *Service {
	return &Service{
		gateway:  gateway,
		renderer: renderer,
	}
}

// records resolves the supplier's collection and fetches it through the gateway.
func (s *Service) records(ctx context.Context, email string) ([]Record, error) {
	res := s.gateway.Fetch(ctx, SourceName(email))
	switch res.Outcome {
	case OutcomePrimary, OutcomeFallback:
		return res.Records, nil
	default:
		return nil, ErrNoData
	}
}

// Series builds the chart series of the given kind for a supplier.
func (s *Service) Series(ctx context.Context, kind ChartKind, email string) (Series, error) {
	records, err := s.records(ctx, email)
	if err != nil {
		return nil, err
	}
	return BuildSeries(kind, records)
}

// Chart renders the chart of the given kind for a supplier.
func (s *Service) Chart(ctx context.Context, kind ChartKind, email string) ([]byte, error) {
	series, err := s.Series(ctx, kind, email)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(kind, series, DisplayLabel(email))
}

// Summary computes the summary statistics for a supplier.
func (s *Service) Summary(ctx context.Context, email string) (Summary, error) {
	records, err := s.records(ctx, email)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records)
}

// BuildSeries dispatches to the series builder for kind.
func BuildSeries(kind ChartKind, records []Record) (Series, error) {
	switch kind {
	case ChartRipeness:
		return RipenessSeries(records)
	case ChartShelfLife:
		return ShelfLifeSeries(records)
	default:
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}
}
