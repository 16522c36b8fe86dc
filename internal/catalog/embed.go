package catalog

import (
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed inventory.json
var embeddedInventory []byte

// NewSource builds the Source selected by the configuration. The db handle
// is only required for the postgres source.
func NewSource(cfg Config, db *sqlx.DB) (Source, error) {
	switch cfg.Source {
	case "", "embedded":
		return NewFileSource(""), nil
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("catalog source %q requires a path", cfg.Source)
		}
		return NewFileSource(cfg.Path), nil
	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("catalog source %q requires a url", cfg.Source)
		}
		return NewHTTPSource(cfg), nil
	case "postgres":
		return NewPostgresSource(db)
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", cfg.Source)
	}
}
