package sources

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/DhruvDarbha/Env/internal/config"
	"github.com/DhruvDarbha/Env/internal/inspection"
	"github.com/DhruvDarbha/Env/internal/store"
)

// Open builds the backend named by cfg.Driver. The returned close func
// releases its connections and is never nil.
func Open(cfg config.SourceConfig) (inspection.Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverSupabase:
		httpCfg := HTTPClientConfig{
			Client:  &http.Client{Timeout: cfg.HTTPTimeout},
			Limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		}
		return NewSupabaseSource(httpCfg, cfg.SupabaseURL, cfg.SupabaseKey), noop, nil

	case config.DriverPostgres:
		src, err := OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil

	case config.DriverSQLite:
		src, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil

	case config.DriverMemory:
		if cfg.FixturesFile == "" {
			return store.NewMemoryStore(), noop, nil
		}
		mem, err := store.LoadFixtures(cfg.FixturesFile)
		if err != nil {
			return nil, noop, err
		}
		return mem, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown data source driver %q", cfg.Driver)
	}
}
