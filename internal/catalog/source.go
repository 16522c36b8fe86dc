package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/b-ciq/brand-assets-server/internal/models"
)

// Config holds catalog source configuration
type Config struct {
	// Source selects the inventory backend: "embedded", "file", "http",
	// or "postgres".
	Source string `mapstructure:"source"`

	// Path to an inventory JSON file when Source is "file"
	Path string `mapstructure:"path"`

	// URL of the remote inventory when Source is "http"
	URL            string        `mapstructure:"url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     uint64        `mapstructure:"max_retries"`

	// DSN of the asset database when Source is "postgres"
	DSN string `mapstructure:"dsn"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Source:         "embedded",
		RequestTimeout: 10 * time.Second,
		MaxRetries:     3,
	}
}

// Source loads the asset inventory from a backend
type Source interface {
	Load(ctx context.Context) ([]models.Asset, error)
	Name() string
}

// inventory is the on-disk/wire shape of the asset inventory
type inventory struct {
	Version string         `json:"version"`
	Index   *inventoryIdx  `json:"index"`
	Assets  []models.Asset `json:"assets"`
}

type inventoryIdx struct {
	TotalAssets int      `json:"total_assets"`
	Brands      []string `json:"brands"`
}

// parseInventory decodes and validates raw inventory JSON
func parseInventory(data []byte) ([]models.Asset, error) {
	var inv inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("invalid inventory JSON: %w", err)
	}
	if inv.Assets == nil || inv.Index == nil {
		return nil, fmt.Errorf("invalid inventory structure: missing assets or index section")
	}
	if inv.Index.TotalAssets != len(inv.Assets) {
		return nil, fmt.Errorf("inventory index claims %d assets, found %d",
			inv.Index.TotalAssets, len(inv.Assets))
	}
	return inv.Assets, nil
}

// FileSource reads the inventory from a local file, or from the embedded
// default inventory when no path is configured.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource. An empty path selects the embedded
// inventory.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements Source
func (s *FileSource) Load(ctx context.Context) ([]models.Asset, error) {
	data := embeddedInventory
	if s.path != "" {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read inventory file: %w", err)
		}
	}
	return parseInventory(data)
}

// Name implements Source
func (s *FileSource) Name() string {
	if s.path == "" {
		return "embedded"
	}
	return "file:" + s.path
}

// HTTPSource fetches the inventory from a remote URL. Transient failures are
// retried with exponential backoff; repeated failures trip a circuit breaker
// so reloads fail fast instead of hammering the upstream.
type HTTPSource struct {
	url     string
	client  *http.Client
	retries uint64
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPSource creates an HTTPSource for the given inventory URL
func NewHTTPSource(cfg Config) *HTTPSource {
	return &HTTPSource{
		url:     cfg.URL,
		retries: cfg.MaxRetries,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "catalog-inventory",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
		}),
	}
}

// Load implements Source
func (s *HTTPSource) Load(ctx context.Context) ([]models.Asset, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		var data []byte
		operation := func() error {
			var fetchErr error
			data, fetchErr = s.fetch(ctx)
			return fetchErr
		}

		policy := backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.retries), ctx)
		if err := backoff.Retry(operation, policy); err != nil {
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	return parseInventory(result.([]byte))
}

// fetch performs a single inventory request
func (s *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("inventory request returned status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	return io.ReadAll(resp.Body)
}

// Name implements Source
func (s *HTTPSource) Name() string {
	return "http:" + s.url
}
