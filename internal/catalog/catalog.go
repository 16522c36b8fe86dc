// Package catalog holds the in-memory asset inventory and implements search
// over it. The inventory is immutable after load; Reload swaps the whole
// snapshot under a write lock.
package catalog

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/b-ciq/brand-assets-server/internal/models"
	"github.com/b-ciq/brand-assets-server/internal/observability"
)

const searchCacheSize = 256

// Store is the loaded asset catalog
type Store struct {
	mu     sync.RWMutex
	assets []models.Asset
	byID   map[string]int

	source      Source
	logger      observability.Logger
	searchCache *lru.Cache[string, *models.SearchResponse]
}

// NewStore creates a catalog store backed by the given source. The catalog
// is empty until Load is called.
func NewStore(source Source, logger observability.Logger) (*Store, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source cannot be nil")
	}
	if logger == nil {
		logger = observability.NewNoopLogger()
	}

	cache, err := lru.New[string, *models.SearchResponse](searchCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}

	return &Store{
		byID:        make(map[string]int),
		source:      source,
		logger:      logger,
		searchCache: cache,
	}, nil
}

// Load fetches the inventory from the source and replaces the current
// snapshot. Duplicate asset ids in the source are rejected.
func (s *Store) Load(ctx context.Context) error {
	assets, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog from %s: %w", s.source.Name(), err)
	}

	byID := make(map[string]int, len(assets))
	brands := make(map[string]struct{})
	for i, a := range assets {
		if a.ID == "" {
			return fmt.Errorf("catalog entry %d has empty id", i)
		}
		if _, dup := byID[a.ID]; dup {
			return fmt.Errorf("duplicate asset id %q in catalog", a.ID)
		}
		byID[a.ID] = i
		if a.Brand != "" {
			brands[a.Brand] = struct{}{}
		}
	}

	s.mu.Lock()
	s.assets = assets
	s.byID = byID
	s.searchCache.Purge()
	s.mu.Unlock()

	s.logger.Info("Catalog loaded", map[string]interface{}{
		"source": s.source.Name(),
		"assets": len(assets),
		"brands": len(brands),
	})

	return nil
}

// Get returns the asset with the given id
func (s *Store) Get(id string) (models.Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return models.Asset{}, false
	}
	return s.assets[i], true
}

// Len returns the number of assets in the catalog
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}

// Health reports the catalog component status for the health endpoint
func (s *Store) Health() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.assets) == 0 {
		return "unhealthy: catalog empty"
	}
	return "healthy"
}

// snapshot returns the current asset slice. Callers must not mutate it.
func (s *Store) snapshot() []models.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assets
}
