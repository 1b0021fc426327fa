package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

// HTTPClientConfig bundles the HTTP client and its guards.
type HTTPClientConfig struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

var (
	errRateLimited       = errors.New("rate limited")
	errServerError       = errors.New("server error")
	errUnexpected        = errors.New("unexpected status code")
	errCircuitOpen       = errors.New("circuit breaker open")
	errNoHTTPClient      = errors.New("http client not configured")
	errMissingCollection = errors.New("collection does not exist")
)

// newBreaker returns the breaker shared by every collection of one backend.
// Only transport failures and 5xx responses count against it, so a supplier
// without a table cannot trip it and block the fallback query.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doRequest executes a single guarded request: it waits on the limiter, runs
// through the circuit breaker and rejects non-2xx answers. There are no
// retries; the gateway's fallback is the only second attempt.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	req *http.Request,
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, errors.New("unexpected result type from circuit breaker")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, errRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		defer resp.Body.Close()
		var body bytes.Buffer
		_, _ = body.ReadFrom(resp.Body)
		if mentionsAny(body.String(), "does not exist", "could not find the table", "42p01") {
			return nil, fmt.Errorf("%w: %s", errMissingCollection, strings.TrimSpace(body.String()))
		}
		return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	}
	return resp, nil
}

// row is the wire shape of an inspection record as stored upstream. Columns
// are kept raw and converted per row, so one malformed value only blanks that
// field instead of failing the whole collection.
type row struct {
	ID                  json.RawMessage `json:"id"`
	AnalyzedAt          json.RawMessage `json:"analyzed_at"`
	RipenessScore       json.RawMessage `json:"ripeness_score"`
	Latitude            json.RawMessage `json:"latitude"`
	Longitude           json.RawMessage `json:"longitude"`
	LocationDescription json.RawMessage `json:"location_description"`
	FruitType           json.RawMessage `json:"fruit_type"`
}

func (r row) toRecord() inspection.Record {
	rec := inspection.Record{
		ID:                  rawText(r.ID),
		RipenessScore:       rawFloat(r.RipenessScore),
		Latitude:            rawFloat(r.Latitude),
		Longitude:           rawFloat(r.Longitude),
		LocationDescription: rawString(r.LocationDescription),
		FruitType:           rawString(r.FruitType),
	}
	if ts, ok := parseTimestamp(rawText(r.AnalyzedAt)); ok {
		rec.AnalyzedAt = &ts
	}
	return rec
}

// rawText returns a JSON scalar as text, unquoting strings. null is "".
func rawText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return s
}

// rawString is rawText for optional columns: null or absent yields nil.
func rawString(raw json.RawMessage) *string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}
	text := rawText(raw)
	return &text
}

// rawFloat reads a numeric column encoded as a JSON number or a numeric
// string. Anything else, including non-finite values, yields nil.
func rawFloat(raw json.RawMessage) *float64 {
	return parseFloat(rawText(raw))
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// timestampLayouts are tried in order; zone-less values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp reads an ISO-8601 timestamp as written by Postgres or PostgREST.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// mentionsAny reports whether msg contains any of subs, ignoring case.
func mentionsAny(msg string, subs ...string) bool {
	msg = strings.ToLower(msg)
	for _, sub := range subs {
		if strings.Contains(msg, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
