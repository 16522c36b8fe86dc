package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/b-ciq/brand-assets-server/internal/models"
)

// Search filters the catalog by the free-text query and the structured
// filters. The query performs case-insensitive substring matching against
// title, tags, and brand; an empty query matches everything. Results keep
// catalog insertion order.
func (s *Store) Search(query string, filters *models.SearchFilters) (*models.SearchResponse, error) {
	if filters == nil {
		filters = &models.SearchFilters{ShowPreferredOnly: true}
	}

	key := searchKey(query, filters)
	if cached, ok := s.searchCache.Get(key); ok {
		return cached, nil
	}

	assets := s.snapshot()
	if assets == nil {
		return nil, fmt.Errorf("catalog not loaded")
	}

	q := strings.ToLower(strings.TrimSpace(query))

	matched := make([]models.Asset, 0)
	for _, a := range assets {
		if !matchesFilters(a, filters) {
			continue
		}
		if q != "" && !matchesQuery(a, q) {
			continue
		}
		matched = append(matched, a)
	}

	if filters.ShowPreferredOnly && !filters.ShowAllVariants {
		matched = collapseVariants(matched)
	}

	resp := &models.SearchResponse{
		Assets:     matched,
		Total:      len(matched),
		Confidence: searchConfidence(q, filters, len(matched)),
	}
	resp.Recommendation = recommend(q, resp.Confidence, len(matched))

	s.searchCache.Add(key, resp)
	return resp, nil
}

// matchesFilters reports whether the asset satisfies every provided filter
// field. Comparison is case-insensitive exact match.
func matchesFilters(a models.Asset, f *models.SearchFilters) bool {
	if f.FileType != "" && !strings.EqualFold(a.FileType, f.FileType) {
		return false
	}
	if f.AssetType != "" && !strings.EqualFold(a.AssetType, f.AssetType) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(a.Brand, f.Brand) {
		return false
	}
	if f.Background != "" && !strings.EqualFold(a.Background, f.Background) {
		return false
	}
	if f.Layout != "" && !strings.EqualFold(a.Layout, f.Layout) {
		return false
	}
	return true
}

// matchesQuery reports whether the lowercased query is a substring of the
// asset title, any tag, or the brand.
func matchesQuery(a models.Asset, q string) bool {
	if strings.Contains(strings.ToLower(a.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Brand), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// collapseVariants keeps one canonical asset per variant family: the one
// marked preferred, or the first in catalog order when none is marked.
// Assets without a family key always survive.
func collapseVariants(assets []models.Asset) []models.Asset {
	chosen := make(map[string]int) // family -> index into result
	result := make([]models.Asset, 0, len(assets))

	for _, a := range assets {
		if a.Family == "" {
			result = append(result, a)
			continue
		}
		if i, ok := chosen[a.Family]; ok {
			if a.Preferred && !result[i].Preferred {
				result[i] = a
			}
			continue
		}
		chosen[a.Family] = len(result)
		result = append(result, a)
	}

	return result
}

// searchConfidence scores how specific the request was. More structured
// filters and a non-empty query raise the score; an empty result set caps
// it low so the UI can surface a hint.
func searchConfidence(q string, f *models.SearchFilters, matches int) float64 {
	confidence := 0.4

	if q != "" {
		// Longer query terms are more specific, same weighting the
		// inventory matcher uses.
		confidence += math.Min(float64(len(q))/10.0, 0.3)
	}

	filterCount := 0
	for _, v := range []string{f.FileType, f.AssetType, f.Brand, f.Background, f.Layout} {
		if v != "" {
			filterCount++
		}
	}
	confidence += float64(filterCount) * 0.1

	if matches == 0 {
		confidence = math.Min(confidence, 0.3)
	}

	return math.Round(math.Min(confidence, 1.0)*100) / 100
}

// recommend produces the optional "did you mean" style hint shown by the UI
func recommend(q string, confidence float64, matches int) string {
	switch {
	case matches == 0 && q != "":
		return fmt.Sprintf("No assets matched %q. Try a product name like 'fuzzball' or 'warewulf', or remove some filters.", q)
	case matches == 0:
		return "No assets matched the selected filters. Try removing some filters."
	case confidence < 0.5:
		return "Showing broad results. Add a file type or brand filter to narrow them."
	default:
		return ""
	}
}

// searchKey builds the memoization key for a query/filter combination.
// Filter matching is case-insensitive, so the key folds case too.
func searchKey(query string, f *models.SearchFilters) string {
	return strings.ToLower(fmt.Sprintf("%s|%s|%s|%s|%s|%s|%t|%t",
		strings.TrimSpace(query),
		f.FileType, f.AssetType, f.Brand, f.Background, f.Layout,
		f.ShowPreferredOnly, f.ShowAllVariants))
}
