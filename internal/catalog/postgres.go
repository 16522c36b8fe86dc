package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/b-ciq/brand-assets-server/internal/models"
)

// PostgresSource loads the inventory from the brand_assets table. The table
// is read-only from the service's point of view; its schema lives in
// configs/schema.sql.
type PostgresSource struct {
	db *sqlx.DB
}

// NewPostgresSource creates a PostgresSource over an existing connection pool
func NewPostgresSource(db *sqlx.DB) (*PostgresSource, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle cannot be nil")
	}
	return &PostgresSource{db: db}, nil
}

// assetRow maps a brand_assets row. Tags are a text[] column; dimensions
// are flattened into two integer columns.
type assetRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	URL          string         `db:"url"`
	ThumbnailURL string         `db:"thumbnail_url"`
	FileType     string         `db:"file_type"`
	FileSize     int64          `db:"file_size"`
	Width        int            `db:"width"`
	Height       int            `db:"height"`
	Tags         pq.StringArray `db:"tags"`
	Brand        string         `db:"brand"`
	Description  string         `db:"description"`
	CreatedAt    time.Time      `db:"created_at"`
	AssetType    string         `db:"asset_type"`
	Background   string         `db:"background"`
	Layout       string         `db:"layout"`
	Family       string         `db:"family"`
	Preferred    bool           `db:"preferred"`
}

const selectAssets = `
SELECT id, title, url, thumbnail_url, file_type, file_size,
       width, height, tags, brand, COALESCE(description, '') AS description,
       created_at, asset_type, COALESCE(background, '') AS background,
       COALESCE(layout, '') AS layout, COALESCE(family, '') AS family, preferred
FROM brand_assets
ORDER BY sort_order, id`

// Load implements Source
func (s *PostgresSource) Load(ctx context.Context) ([]models.Asset, error) {
	var rows []assetRow
	if err := s.db.SelectContext(ctx, &rows, selectAssets); err != nil {
		return nil, fmt.Errorf("failed to query brand_assets: %w", err)
	}

	assets := make([]models.Asset, 0, len(rows))
	for _, r := range rows {
		assets = append(assets, models.Asset{
			ID:           r.ID,
			Title:        r.Title,
			URL:          r.URL,
			ThumbnailURL: r.ThumbnailURL,
			FileType:     r.FileType,
			FileSize:     r.FileSize,
			Dimensions:   models.Dimensions{Width: r.Width, Height: r.Height},
			Tags:         []string(r.Tags),
			Brand:        r.Brand,
			Description:  r.Description,
			CreatedAt:    r.CreatedAt,
			AssetType:    r.AssetType,
			Background:   r.Background,
			Layout:       r.Layout,
			Family:       r.Family,
			Preferred:    r.Preferred,
		})
	}

	return assets, nil
}

// Name implements Source
func (s *PostgresSource) Name() string {
	return "postgres"
}
