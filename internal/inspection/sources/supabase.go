package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

// SupabaseSource reads collections through the PostgREST endpoint of a
// Supabase project.
type SupabaseSource struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ inspection.Source = (*SupabaseSource)(nil)

// NewSupabaseSource creates a source for the project at projectURL
// (e.g. https://xyz.supabase.co) authenticated with apiKey.
func NewSupabaseSource(cfg HTTPClientConfig, projectURL, apiKey string) *SupabaseSource {
	return &SupabaseSource{
		name:    "supabase",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(projectURL, "/") + "/rest/v1",
		httpCfg: cfg,
		circuit: newBreaker("supabase"),
	}
}

func (s *SupabaseSource) Name() string {
	return s.name
}

// Records implements inspection.Source.
func (s *SupabaseSource) Records(ctx context.Context, collection string) ([]inspection.Record, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("supabase api key is not configured")
	}

	values := url.Values{}
	values.Set("select", "*")
	values.Set("order", "analyzed_at.asc")

	u := fmt.Sprintf("%s/%s?%s", s.baseURL, url.PathEscape(collection), values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := doRequest(ctx, s.httpCfg, s.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer resp.Body.Close()

	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	records := make([]inspection.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.toRecord())
	}
	return records, nil
}
