// Package models defines the value types shared across the brand assets
// service. All types are plain records; none carry behavior beyond
// convenience accessors.
package models

import "time"

// Asset is a single downloadable brand file (logo, icon, document) with
// metadata. Assets are immutable and sourced from a static inventory.
type Asset struct {
	ID           string     `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	URL          string     `json:"url" db:"url"`
	ThumbnailURL string     `json:"thumbnailUrl" db:"thumbnail_url"`
	FileType     string     `json:"fileType" db:"file_type"`
	FileSize     int64      `json:"fileSize" db:"file_size"`
	Dimensions   Dimensions `json:"dimensions" db:"-"`
	Tags         []string   `json:"tags" db:"-"`
	Brand        string     `json:"brand" db:"brand"`
	Description  string     `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`

	// Inventory metadata used by filtering and variant collapsing.
	AssetType  string `json:"assetType" db:"asset_type"`
	Background string `json:"background,omitempty" db:"background"`
	Layout     string `json:"layout,omitempty" db:"layout"`
	Family     string `json:"family,omitempty" db:"family"`
	Preferred  bool   `json:"preferred" db:"preferred"`
}

// Dimensions holds pixel dimensions for raster assets. Zero for vector
// formats.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SearchFilters restricts a catalog search. Empty fields match everything.
type SearchFilters struct {
	FileType          string `json:"fileType,omitempty"`
	AssetType         string `json:"assetType,omitempty"`
	Brand             string `json:"brand,omitempty"`
	Background        string `json:"background,omitempty"` // "light" or "dark"
	Layout            string `json:"layout,omitempty"`     // "horizontal", "vertical", "symbol"
	ShowPreferredOnly bool   `json:"showPreferredOnly"`
	ShowAllVariants   bool   `json:"showAllVariants"`
}

// SearchResponse is the unpaginated result of a catalog search. Assets keep
// catalog insertion order.
type SearchResponse struct {
	Assets         []Asset `json:"assets"`
	Total          int     `json:"total"`
	Confidence     float64 `json:"confidence"`
	Recommendation string  `json:"recommendation,omitempty"`
}

// UserContext is the per-request context the smart defaults engine works
// from. It is reconstructed fresh on every request and never persisted.
type UserContext struct {
	Source      string `json:"source,omitempty"`
	SessionID   string `json:"sessionId,omitempty"`
	TimeOfDay   string `json:"timeOfDay,omitempty"`   // "morning", "afternoon", "evening", "night"
	DeviceTheme string `json:"deviceTheme,omitempty"` // "light" or "dark"
	UserRole    string `json:"userRole,omitempty"`    // "developer", "designer", "marketing", "general"
	UserAgent   string `json:"userAgent,omitempty"`
}

// SmartDefaults is a recommended export configuration for an asset. Derived
// per request and discarded.
type SmartDefaults struct {
	Format     string  `json:"format"`
	Size       string  `json:"size"`
	Background string  `json:"background"`
	Color      string  `json:"color"`
	Confidence float64 `json:"confidence"`
}
