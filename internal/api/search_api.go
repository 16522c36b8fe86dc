package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/b-ciq/brand-assets-server/internal/cache"
	"github.com/b-ciq/brand-assets-server/internal/catalog"
	"github.com/b-ciq/brand-assets-server/internal/models"
	"github.com/b-ciq/brand-assets-server/internal/observability"
)

// SearchAPI serves the asset search endpoint
type SearchAPI struct {
	store    *catalog.Store
	cache    cache.Cache
	cacheTTL time.Duration
	logger   observability.Logger
}

// NewSearchAPI creates a new SearchAPI
func NewSearchAPI(store *catalog.Store, cacheClient cache.Cache, cacheTTL time.Duration, logger observability.Logger) *SearchAPI {
	if cacheClient == nil {
		cacheClient = cache.NewNoopCache()
	}
	return &SearchAPI{
		store:    store,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// RegisterRoutes registers search routes on the given router group
func (a *SearchAPI) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assets/search", a.searchAssets)
}

// searchAssets handles GET /assets/search
func (a *SearchAPI) searchAssets(c *gin.Context) {
	query := c.Query("query")
	filters := &models.SearchFilters{
		FileType:          c.Query("fileType"),
		AssetType:         c.Query("assetType"),
		Brand:             c.Query("brand"),
		Background:        c.Query("background"),
		Layout:            c.Query("layout"),
		ShowPreferredOnly: boolParam(c, "showPreferredOnly", true),
		ShowAllVariants:   boolParam(c, "showAllVariants", false),
	}

	limitDefault := defaultSearchLimit
	if filters.ShowAllVariants {
		limitDefault = allVariantsSearchLimit
	}
	limit := intParam(c, "limit", limitDefault)
	if limit < 1 {
		limit = limitDefault
	}
	if limit > allVariantsSearchLimit {
		limit = allVariantsSearchLimit
	}
	page := intParam(c, "page", 1)
	if page < 1 {
		page = 1
	}

	cacheKey := "search:" + c.Request.URL.RawQuery
	var cached PagedSearchResponse
	if err := a.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := a.store.Search(query, filters)
	if err != nil {
		a.logger.Error("Search failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, SearchErrorResponse{
			Error:      "Search failed",
			Details:    err.Error(),
			Suggestion: "Try again in a moment, or simplify your search.",
		})
		return
	}

	paged := paginate(result, page, limit)

	if err := a.cache.Set(c.Request.Context(), cacheKey, paged, a.cacheTTL); err != nil {
		a.logger.Warn("Failed to cache search response", map[string]interface{}{
			"error": err.Error(),
		})
	}

	c.JSON(http.StatusOK, paged)
}

// paginate slices one page out of a search result. Slice bounds are clamped
// to the asset count so they can never exceed it.
func paginate(result *models.SearchResponse, page, limit int) PagedSearchResponse {
	startIndex := (page - 1) * limit
	if startIndex > len(result.Assets) {
		startIndex = len(result.Assets)
	}
	endIndex := startIndex + limit
	if endIndex > len(result.Assets) {
		endIndex = len(result.Assets)
	}

	return PagedSearchResponse{
		Assets:         result.Assets[startIndex:endIndex],
		Total:          result.Total,
		Page:           page,
		HasMore:        endIndex < len(result.Assets),
		Confidence:     result.Confidence,
		Recommendation: result.Recommendation,
	}
}

// boolParam parses a boolean query parameter with a default
func boolParam(c *gin.Context, name string, def bool) bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// intParam parses an integer query parameter with a default
func intParam(c *gin.Context, name string, def int) int {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
