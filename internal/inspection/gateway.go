package inspection

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Outcome tells callers which branch of the fallback policy produced a FetchResult.
type Outcome int

const (
	// OutcomePrimary means the supplier's own collection had records.
	OutcomePrimary Outcome = iota
	// OutcomeFallback means the default collection was served instead.
	OutcomeFallback
	// OutcomeEmpty means both collections answered with no records.
	OutcomeEmpty
	// OutcomeFailed means the default collection could not be queried either.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePrimary:
		return "primary"
	case OutcomeFallback:
		return "fallback"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchResult is what the Gateway hands back for a collection lookup.
type FetchResult struct {
	Outcome    Outcome
	Collection string
	Records    []Record
	// Err is the fallback query error; only set with OutcomeFailed.
	Err error
}

// HasData reports whether the result carries any records.
func (r FetchResult) HasData() bool {
	return len(r.Records) > 0
}

// Gateway applies the fallback policy on top of a Source.
type Gateway struct {
	source   Source
	fallback string
	log      logrus.FieldLogger
}

// NewGateway creates a Gateway that falls back to DefaultCollection.
func NewGateway(source Source, log logrus.FieldLogger) *Gateway {
	return &Gateway{
		source:   source,
		fallback: DefaultCollection,
		log:      log,
	}
}

// Fetch queries collection and falls back to the default collection once when
// the query fails or returns nothing. Source errors never escape; they are
// reported through the Outcome.
func (g *Gateway) Fetch(ctx context.Context, collection string) FetchResult {
	log := g.log.WithFields(logrus.Fields{"source": g.source.Name(), "collection": collection})

	records, err := g.source.Records(ctx, collection)
	switch {
	case err != nil:
		log.WithError(err).Warnf("error fetching %s, trying %s as fallback", collection, g.fallback)
	case len(records) == 0:
		log.Infof("no data in %s, trying %s as fallback", collection, g.fallback)
	default:
		log.Infof("found %d records in %s", len(records), collection)
		return FetchResult{Outcome: OutcomePrimary, Collection: collection, Records: records}
	}

	fallback, err := g.source.Records(ctx, g.fallback)
	if err != nil {
		log.WithError(err).Errorf("fallback to %s also failed", g.fallback)
		return FetchResult{Outcome: OutcomeFailed, Collection: g.fallback, Err: err}
	}

	log.Infof("using %d records from %s", len(fallback), g.fallback)
	if len(fallback) == 0 {
		return FetchResult{Outcome: OutcomeEmpty, Collection: g.fallback}
	}
	return FetchResult{Outcome: OutcomeFallback, Collection: g.fallback, Records: fallback}
}

// Count returns the number of records in collection without any fallback.
func (g *Gateway) Count(ctx context.Context, collection string) (int, error) {
	records, err := g.source.Records(ctx, collection)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
