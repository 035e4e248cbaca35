package colornames

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/swatchtower/swatchtower/pkg/cache"
	"github.com/swatchtower/swatchtower/pkg/errors"
)

// DefaultURL is the upstream colornames list.
const DefaultURL = "https://raw.githubusercontent.com/meodai/color-names/master/dist/colornames.csv"

// Source fetches the colornames CSV with an at-most-daily refresh: the
// fetched list is cached for cache.TTLHTTP and served from cache until it
// expires. Checking upstream for changes costs nearly as much as refetching,
// so no conditional requests are made.
type Source struct {
	// URL of the CSV list. Defaults to DefaultURL.
	URL string

	// Cache stores the fetched CSV. Defaults to a null cache, which makes
	// every Load fetch.
	Cache cache.Cache

	// Keyer builds the cache key. Defaults to the standard keyer.
	Keyer cache.Keyer

	// Client is the HTTP client used to fetch. Defaults to a client with
	// a 30 second timeout.
	Client *http.Client

	// Logger receives refresh events. Defaults to the standard logger.
	Logger *log.Logger
}

// NewSource creates a source backed by the given cache.
func NewSource(c cache.Cache, logger *log.Logger) *Source {
	return &Source{Cache: c, Logger: logger}
}

func (s *Source) setDefaults() {
	if s.URL == "" {
		s.URL = DefaultURL
	}
	if s.Cache == nil {
		s.Cache = cache.NewNullCache()
	}
	if s.Keyer == nil {
		s.Keyer = cache.NewDefaultKeyer()
	}
	if s.Client == nil {
		s.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if s.Logger == nil {
		s.Logger = log.Default()
	}
}

// Load returns the colornames table, refreshing from upstream only when the
// cached copy has expired.
func (s *Source) Load(ctx context.Context) (*Table, error) {
	s.setDefaults()
	key := s.Keyer.HTTPKey("colornames", s.URL)

	if data, hit, err := s.Cache.Get(ctx, key); err == nil && hit {
		if t, err := ParseCSV(bytes.NewReader(data)); err == nil {
			return t, nil
		}
		// Corrupt cached copy; fall through to refetch.
	}

	data, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	t, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	_ = s.Cache.Set(ctx, key, data, cache.TTLHTTP)

	s.Logger.Debug("refreshed colornames", "url", s.URL, "entries", t.Len())
	return t, nil
}

// fetch downloads the CSV, retrying transient failures.
func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build colornames request")
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch colornames"))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return cache.Retryable(errors.New(errors.ErrCodeNetwork,
				"fetch colornames: status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return errors.New(errors.ErrCodeNetwork, "fetch colornames: status %d", resp.StatusCode)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read colornames body"))
		}
		return nil
	})
	return data, err
}
