package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/b-ciq/brand-assets-server/internal/defaults"
	"github.com/b-ciq/brand-assets-server/internal/models"
	"github.com/b-ciq/brand-assets-server/internal/observability"
)

// DefaultsAPI serves the smart defaults endpoint
type DefaultsAPI struct {
	engine *defaults.Engine
	logger observability.Logger
}

// NewDefaultsAPI creates a new DefaultsAPI
func NewDefaultsAPI(engine *defaults.Engine, logger observability.Logger) *DefaultsAPI {
	return &DefaultsAPI{
		engine: engine,
		logger: logger,
	}
}

// RegisterRoutes registers defaults routes on the given router group. Any is
// used so non-POST methods get an explicit 405 instead of gin's default 404.
func (a *DefaultsAPI) RegisterRoutes(router *gin.RouterGroup) {
	router.Any("/defaults", a.generateDefaults)
}

// generateDefaults handles POST /defaults
func (a *DefaultsAPI) generateDefaults(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, DefaultsResponse{
			Success: false,
			Error:   "method not allowed, use POST",
		})
		return
	}

	var req DefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DefaultsResponse{
			Success: false,
			Error:   "invalid request body: " + err.Error(),
		})
		return
	}

	if req.Asset.ID == "" {
		c.JSON(http.StatusBadRequest, DefaultsResponse{
			Success: false,
			Error:   "asset with a non-empty id is required",
		})
		return
	}

	var userCtx models.UserContext
	if req.Context != nil {
		userCtx = *req.Context
	}
	if req.Options != nil && req.Options.Source != "" {
		userCtx.Source = req.Options.Source
	}
	userCtx = defaults.DetectContext(c.Request, userCtx, time.Now())

	result, err := a.engine.GenerateDefaults(c.Request.Context(), req.Asset, userCtx)
	if err != nil {
		a.logger.Error("Defaults generation failed", map[string]interface{}{
			"asset_id": req.Asset.ID,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, DefaultsResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if err := defaults.ValidateDefaults(result); err != nil {
		a.logger.Warn("Generated defaults failed validation", map[string]interface{}{
			"asset_id": req.Asset.ID,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnprocessableEntity, DefaultsResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, DefaultsResponse{
		Success: true,
		Data:    result,
	})
}
