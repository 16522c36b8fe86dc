package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/b-ciq/brand-assets-server/internal/colors"
)

// ColorsAPI serves the design-system color palette
type ColorsAPI struct {
	palette *colors.Palette
}

// NewColorsAPI creates a new ColorsAPI
func NewColorsAPI(palette *colors.Palette) *ColorsAPI {
	return &ColorsAPI{palette: palette}
}

// RegisterRoutes registers color routes on the given router group
func (a *ColorsAPI) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/colors", a.getOverview)
	router.GET("/colors/families/:family", a.getFamily)
}

// getOverview handles GET /colors
func (a *ColorsAPI) getOverview(c *gin.Context) {
	c.JSON(http.StatusOK, a.palette.Overview())
}

// getFamily handles GET /colors/families/:family
func (a *ColorsAPI) getFamily(c *gin.Context) {
	family := c.Param("family")

	shades, err := a.palette.Family(family)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      err.Error(),
			"suggestion": "List available families via GET /api/v1/colors",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"family":      family,
		"shades":      shades,
		"totalShades": len(shades),
	})
}
