package api

import (
	"github.com/b-ciq/brand-assets-server/internal/models"
)

// Search result caps. showAllVariants raises the default cap so the full
// inventory of a family can be inspected.
const (
	defaultSearchLimit     = 20
	allVariantsSearchLimit = 200
)

// PagedSearchResponse is the wire form of a search result page
type PagedSearchResponse struct {
	Assets         []models.Asset `json:"assets"`
	Total          int            `json:"total"`
	Page           int            `json:"page"`
	HasMore        bool           `json:"hasMore"`
	Confidence     float64        `json:"confidence"`
	Recommendation string         `json:"recommendation,omitempty"`
}

// SearchErrorResponse is returned when a search fails. No partial results
// are ever returned alongside an error.
type SearchErrorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion"`
}

// DefaultsRequest is the body of the smart defaults endpoint
type DefaultsRequest struct {
	Asset   models.Asset        `json:"asset"`
	Context *models.UserContext `json:"context,omitempty"`
	Options *DefaultsOptions    `json:"options,omitempty"`
}

// DefaultsOptions carries caller overrides for defaults generation
type DefaultsOptions struct {
	Source string `json:"source,omitempty"`
}

// DefaultsResponse is the envelope of the smart defaults endpoint
type DefaultsResponse struct {
	Success bool                  `json:"success"`
	Data    *models.SmartDefaults `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}
