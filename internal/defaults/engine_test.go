package defaults

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b-ciq/brand-assets-server/internal/models"
)

func testAsset() models.Asset {
	return models.Asset{
		ID:         "fuzzball-horizontal-light",
		Title:      "Fuzzball Logo Horizontal Light",
		FileType:   "SVG",
		Brand:      "fuzzball",
		AssetType:  "logo",
		Background: "light",
	}
}

func TestGenerateDefaultsRequiresAssetID(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	_, err := engine.GenerateDefaults(context.Background(), models.Asset{}, models.UserContext{})
	assert.Error(t, err)
}

func TestGenerateDefaultsConfidenceInRange(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	d, err := engine.GenerateDefaults(context.Background(), models.Asset{ID: "a1"}, models.UserContext{})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, d.Confidence, 0.0)
	assert.LessOrEqual(t, d.Confidence, 1.0)
	assert.NoError(t, ValidateDefaults(d))
}

func TestTeamPatternsByRole(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	tests := []struct {
		role       string
		wantFormat string
		wantSize   string
	}{
		{"developer", "svg", "small"},
		{"designer", "svg", "large"},
		{"marketing", "png", "large"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			d, err := engine.GenerateDefaults(context.Background(), testAsset(), models.UserContext{
				UserRole:    tt.role,
				DeviceTheme: "light",
				TimeOfDay:   "morning",
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantFormat, d.Format)
			assert.Equal(t, tt.wantSize, d.Size)
			assert.GreaterOrEqual(t, d.Confidence, 0.6)
		})
	}
}

func TestPopularityFallbackForUnknownRole(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	d, err := engine.GenerateDefaults(context.Background(), testAsset(), models.UserContext{
		UserRole: "general",
	})
	require.NoError(t, err)

	// SVG assets default to svg export, medium size
	assert.Equal(t, "svg", d.Format)
	assert.Equal(t, "medium", d.Size)
}

func TestBackgroundFollowsAssetThenTheme(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	// Asset with its own background variant wins
	d, err := engine.GenerateDefaults(context.Background(), testAsset(), models.UserContext{
		UserRole: "developer", DeviceTheme: "dark",
	})
	require.NoError(t, err)
	assert.Equal(t, "light", d.Background)

	// Without one, the device theme decides
	bare := models.Asset{ID: "a1", FileType: "PNG"}
	d, err = engine.GenerateDefaults(context.Background(), bare, models.UserContext{
		UserRole: "developer", DeviceTheme: "dark",
	})
	require.NoError(t, err)
	assert.Equal(t, "dark", d.Background)
}

func TestDocumentAssetsExportAsPDF(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	doc := models.Asset{ID: "fuzzball-brief", FileType: "PDF", AssetType: "document"}
	d, err := engine.GenerateDefaults(context.Background(), doc, models.UserContext{
		UserRole: "marketing", DeviceTheme: "light",
	})
	require.NoError(t, err)
	assert.Equal(t, "pdf", d.Format)
}

func TestTeamPatternsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableTeamPatterns = false
	engine := NewEngine(cfg, nil)

	d, err := engine.GenerateDefaults(context.Background(), testAsset(), models.UserContext{
		UserRole: "developer",
	})
	require.NoError(t, err)

	// Without team patterns the popularity fallback decides
	assert.Equal(t, "medium", d.Size)
}

func TestThresholdStopsAtFirstClearingRule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfidenceThreshold = 0.5
	engine := NewEngine(cfg, nil)

	d, err := engine.GenerateDefaults(context.Background(), testAsset(), models.UserContext{
		UserRole: "designer", DeviceTheme: "dark", TimeOfDay: "evening",
	})
	require.NoError(t, err)

	// Team patterns clears 0.5 first, so the designer pattern wins
	assert.Equal(t, "large", d.Size)
}

func TestHighThresholdReturnsBestCandidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfidenceThreshold = 0.99
	engine := NewEngine(cfg, nil)

	d, err := engine.GenerateDefaults(context.Background(), testAsset(), models.UserContext{
		UserRole: "developer", DeviceTheme: "light", TimeOfDay: "morning",
	})
	require.NoError(t, err)

	// Nothing clears 0.99; the best candidate is still returned
	assert.Less(t, d.Confidence, 0.99)
	assert.NoError(t, ValidateDefaults(d))
}

func TestCancelledContext(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.GenerateDefaults(ctx, testAsset(), models.UserContext{})
	assert.Error(t, err)
}

func TestEngineHealth(t *testing.T) {
	assert.Equal(t, "healthy", NewEngine(DefaultConfig(), nil).Health())
}

func TestOutOfRangeThresholdFallsBackToDefault(t *testing.T) {
	for _, threshold := range []float64{0, -0.5, 1.5} {
		cfg := DefaultConfig()
		cfg.ConfidenceThreshold = threshold

		engine := NewEngine(cfg, nil)
		assert.InDelta(t, 0.6, engine.config.ConfidenceThreshold, 1e-9, "threshold %v", threshold)
	}
}
