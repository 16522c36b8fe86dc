package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b-ciq/brand-assets-server/internal/models"
	"github.com/b-ciq/brand-assets-server/internal/observability"
)

// newTestStore loads the embedded inventory into a fresh store
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(NewFileSource(""), observability.NewNoopLogger())
	require.NoError(t, err)
	require.NoError(t, store.Load(context.Background()))
	return store
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Search("", &models.SearchFilters{ShowAllVariants: true})
	require.NoError(t, err)

	assert.Equal(t, store.Len(), result.Total)
	assert.Len(t, result.Assets, store.Len())
}

func TestSearchSubstringMatching(t *testing.T) {
	store := newTestStore(t)

	// "fuzz" must match "fuzzball" via substring
	result, err := store.Search("fuzz", &models.SearchFilters{ShowAllVariants: true})
	require.NoError(t, err)
	require.NotEmpty(t, result.Assets)

	for _, a := range result.Assets {
		matched := strings.Contains(strings.ToLower(a.Title), "fuzz") ||
			strings.Contains(strings.ToLower(a.Brand), "fuzz")
		for _, tag := range a.Tags {
			matched = matched || strings.Contains(strings.ToLower(tag), "fuzz")
		}
		assert.True(t, matched, "asset %s does not match query", a.ID)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	lower, err := store.Search("fuzzball", nil)
	require.NoError(t, err)
	upper, err := store.Search("FUZZBALL", nil)
	require.NoError(t, err)

	assert.Equal(t, lower.Total, upper.Total)
	require.NotEmpty(t, lower.Assets)
}

func TestSearchFilterPredicates(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name    string
		filters models.SearchFilters
	}{
		{"file type", models.SearchFilters{FileType: "SVG", ShowAllVariants: true}},
		{"asset type", models.SearchFilters{AssetType: "document", ShowAllVariants: true}},
		{"brand", models.SearchFilters{Brand: "fuzzball", ShowAllVariants: true}},
		{"background", models.SearchFilters{Background: "dark", ShowAllVariants: true}},
		{"layout", models.SearchFilters{Layout: "horizontal", ShowAllVariants: true}},
		{"combined", models.SearchFilters{Brand: "ciq", FileType: "SVG", Background: "light", ShowAllVariants: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := store.Search("", &tt.filters)
			require.NoError(t, err)

			for _, a := range result.Assets {
				if tt.filters.FileType != "" {
					assert.True(t, strings.EqualFold(a.FileType, tt.filters.FileType))
				}
				if tt.filters.AssetType != "" {
					assert.True(t, strings.EqualFold(a.AssetType, tt.filters.AssetType))
				}
				if tt.filters.Brand != "" {
					assert.True(t, strings.EqualFold(a.Brand, tt.filters.Brand))
				}
				if tt.filters.Background != "" {
					assert.True(t, strings.EqualFold(a.Background, tt.filters.Background))
				}
				if tt.filters.Layout != "" {
					assert.True(t, strings.EqualFold(a.Layout, tt.filters.Layout))
				}
			}
		})
	}
}

func TestSearchPreferredVariantCollapsing(t *testing.T) {
	store := newTestStore(t)

	collapsed, err := store.Search("", &models.SearchFilters{ShowPreferredOnly: true})
	require.NoError(t, err)
	all, err := store.Search("", &models.SearchFilters{ShowAllVariants: true})
	require.NoError(t, err)

	assert.Less(t, collapsed.Total, all.Total)

	// At most one asset per family
	families := make(map[string]int)
	for _, a := range collapsed.Assets {
		if a.Family != "" {
			families[a.Family]++
		}
	}
	for family, count := range families {
		assert.Equal(t, 1, count, "family %s appears %d times", family, count)
	}

	// The surviving variant is the preferred one when a family has one
	for _, a := range collapsed.Assets {
		if a.Family == "fuzzball-logo" {
			assert.True(t, a.Preferred)
		}
	}
}

func TestSearchShowAllVariantsOverridesPreferred(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Search("", &models.SearchFilters{ShowPreferredOnly: true, ShowAllVariants: true})
	require.NoError(t, err)

	assert.Equal(t, store.Len(), result.Total)
}

func TestSearchInsertionOrderPreserved(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Search("", &models.SearchFilters{ShowAllVariants: true})
	require.NoError(t, err)

	ids := make(map[string]int)
	for i, a := range store.snapshot() {
		ids[a.ID] = i
	}

	last := -1
	for _, a := range result.Assets {
		assert.Greater(t, ids[a.ID], last)
		last = ids[a.ID]
	}
}

func TestSearchConfidenceBounds(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		query   string
		filters models.SearchFilters
	}{
		{"", models.SearchFilters{}},
		{"fuzzball", models.SearchFilters{}},
		{"fuzzball", models.SearchFilters{FileType: "SVG", Background: "dark", Layout: "horizontal", Brand: "fuzzball", AssetType: "logo"}},
		{"no-such-thing-anywhere", models.SearchFilters{}},
	}

	for _, tt := range tests {
		result, err := store.Search(tt.query, &tt.filters)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}

func TestSearchRecommendationOnNoMatch(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Search("zebra-unicorn", nil)
	require.NoError(t, err)

	assert.Zero(t, result.Total)
	assert.Empty(t, result.Assets)
	assert.NotEmpty(t, result.Recommendation)
	assert.LessOrEqual(t, result.Confidence, 0.3)
}

func TestSearchMemoization(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Search("warewulf", nil)
	require.NoError(t, err)
	second, err := store.Search("warewulf", nil)
	require.NoError(t, err)

	// Same pointer: served from the in-process cache
	assert.Same(t, first, second)
}

func TestSearchMemoizationFoldsFilterCase(t *testing.T) {
	store := newTestStore(t)

	upper, err := store.Search("", &models.SearchFilters{FileType: "SVG", Brand: "FUZZBALL", ShowAllVariants: true})
	require.NoError(t, err)
	lower, err := store.Search("", &models.SearchFilters{FileType: "svg", Brand: "fuzzball", ShowAllVariants: true})
	require.NoError(t, err)

	// Filter matching is case-insensitive, so both spellings share one entry
	assert.Same(t, upper, lower)
}

func TestSearchNotLoaded(t *testing.T) {
	store, err := NewStore(NewFileSource(""), observability.NewNoopLogger())
	require.NoError(t, err)

	_, err = store.Search("anything", nil)
	assert.Error(t, err)
}
