package inspection

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned records and errors per collection and records
// which collections were queried.
type fakeSource struct {
	data    map[string][]Record
	errs    map[string]error
	queried []string
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Records(_ context.Context, collection string) ([]Record, error) {
	f.queried = append(f.queried, collection)
	if err := f.errs[collection]; err != nil {
		return nil, err
	}
	return f.data[collection], nil
}

func newTestGateway(src Source) (*Gateway, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewGateway(src, log), hook
}

func hasMessage(hook *test.Hook, level logrus.Level, substr string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestGatewayPrimary(t *testing.T) {
	own := []Record{{RipenessScore: score(3)}}
	src := &fakeSource{data: map[string][]Record{
		"sunkist_data":    own,
		DefaultCollection: {{RipenessScore: score(9)}},
	}}
	gw, hook := newTestGateway(src)

	res := gw.Fetch(context.Background(), "sunkist_data")

	assert.Equal(t, OutcomePrimary, res.Outcome)
	assert.Equal(t, "sunkist_data", res.Collection)
	assert.Equal(t, own, res.Records)
	assert.True(t, res.HasData())
	assert.Equal(t, []string{"sunkist_data"}, src.queried)
	assert.True(t, hasMessage(hook, logrus.InfoLevel, "found 1 records in sunkist_data"))
}

func TestGatewayFallbackOnEmpty(t *testing.T) {
	demo := []Record{
		{AnalyzedAt: at(t, "2025-09-20T08:00:00Z"), RipenessScore: score(9)},
		{AnalyzedAt: at(t, "2025-09-21T08:00:00Z"), RipenessScore: score(4)},
	}
	src := &fakeSource{data: map[string][]Record{DefaultCollection: demo}}
	gw, hook := newTestGateway(src)

	res := gw.Fetch(context.Background(), "sunkist_data")

	assert.Equal(t, OutcomeFallback, res.Outcome)
	assert.Equal(t, DefaultCollection, res.Collection)
	assert.Equal(t, demo, res.Records)
	assert.Equal(t, []string{"sunkist_data", DefaultCollection}, src.queried)
	assert.True(t, hasMessage(hook, logrus.InfoLevel, "no data in sunkist_data"))
	assert.True(t, hasMessage(hook, logrus.InfoLevel, "using 2 records from halos_data"))
}

func TestGatewayFallbackOnError(t *testing.T) {
	demo := []Record{{RipenessScore: score(9)}}
	src := &fakeSource{
		data: map[string][]Record{DefaultCollection: demo},
		errs: map[string]error{"dole_data": errors.New("relation does not exist")},
	}
	gw, hook := newTestGateway(src)

	res := gw.Fetch(context.Background(), "dole_data")

	assert.Equal(t, OutcomeFallback, res.Outcome)
	assert.Equal(t, demo, res.Records)
	assert.NoError(t, res.Err)
	assert.True(t, hasMessage(hook, logrus.WarnLevel, "error fetching dole_data"))
}

func TestGatewayBothEmpty(t *testing.T) {
	gw, _ := newTestGateway(&fakeSource{})

	res := gw.Fetch(context.Background(), "sunkist_data")

	assert.Equal(t, OutcomeEmpty, res.Outcome)
	assert.False(t, res.HasData())
	assert.NoError(t, res.Err)
}

func TestGatewayFallbackFails(t *testing.T) {
	boom := errors.New("connection refused")
	src := &fakeSource{errs: map[string]error{
		"sunkist_data":    boom,
		DefaultCollection: boom,
	}}
	gw, hook := newTestGateway(src)

	res := gw.Fetch(context.Background(), "sunkist_data")

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Empty(t, res.Records)
	assert.ErrorIs(t, res.Err, boom)
	assert.True(t, hasMessage(hook, logrus.ErrorLevel, "fallback to halos_data also failed"))
}

func TestGatewayCount(t *testing.T) {
	src := &fakeSource{data: map[string][]Record{DefaultCollection: {{}, {}, {}}}}
	gw, _ := newTestGateway(src)

	n, err := gw.Count(context.Background(), DefaultCollection)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "fallback", OutcomeFallback.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
