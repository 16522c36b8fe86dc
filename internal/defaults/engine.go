package defaults

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/b-ciq/brand-assets-server/internal/models"
	"github.com/b-ciq/brand-assets-server/internal/observability"
)

// Config holds smart defaults engine configuration. Rule weights and the
// threshold are deliberately configuration, not fixed behavior.
type Config struct {
	ConfidenceThreshold float64            `mapstructure:"confidence_threshold"`
	EnableTeamPatterns  bool               `mapstructure:"enable_team_patterns"`
	RuleWeights         map[string]float64 `mapstructure:"rule_weights"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.6,
		EnableTeamPatterns:  true,
		RuleWeights: map[string]float64{
			"team_patterns": 0.75,
			"popularity":    0.65,
		},
	}
}

// Engine evaluates the ordered rule set. It is stateless across requests.
type Engine struct {
	config Config
	logger observability.Logger
	rules  []rule
}

// rule produces a candidate configuration and its confidence, or reports
// that it does not apply.
type rule interface {
	Name() string
	Evaluate(asset models.Asset, ctx models.UserContext) (*models.SmartDefaults, bool)
}

// NewEngine creates a smart defaults engine
func NewEngine(cfg Config, logger observability.Logger) *Engine {
	if logger == nil {
		logger = observability.NewNoopLogger()
	}
	if cfg.ConfidenceThreshold <= 0 || cfg.ConfidenceThreshold > 1 {
		logger.Warn("Confidence threshold out of range, using default", map[string]interface{}{
			"configured": cfg.ConfidenceThreshold,
			"default":    0.6,
		})
		cfg.ConfidenceThreshold = 0.6
	}

	e := &Engine{config: cfg, logger: logger}

	if cfg.EnableTeamPatterns {
		e.rules = append(e.rules, &teamPatternRule{weight: cfg.weight("team_patterns", 0.75)})
	}
	e.rules = append(e.rules, &popularityRule{weight: cfg.weight("popularity", 0.65)})

	return e
}

func (c Config) weight(name string, fallback float64) float64 {
	if w, ok := c.RuleWeights[name]; ok && w > 0 && w <= 1 {
		return w
	}
	return fallback
}

// GenerateDefaults runs the ordered rules against the asset and context and
// returns the first candidate whose confidence clears the configured
// threshold. When no rule clears it, the highest-confidence candidate is
// returned so the caller can decide via validation.
func (e *Engine) GenerateDefaults(ctx context.Context, asset models.Asset, user models.UserContext) (*models.SmartDefaults, error) {
	if asset.ID == "" {
		return nil, fmt.Errorf("asset id is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var best *models.SmartDefaults
	for _, r := range e.rules {
		candidate, ok := r.Evaluate(asset, user)
		if !ok {
			continue
		}

		e.logger.Debug("Rule evaluated", map[string]interface{}{
			"rule":       r.Name(),
			"asset_id":   asset.ID,
			"confidence": candidate.Confidence,
		})

		if candidate.Confidence >= e.config.ConfidenceThreshold {
			return candidate, nil
		}
		if best == nil || candidate.Confidence > best.Confidence {
			best = candidate
		}
	}

	if best == nil {
		return nil, fmt.Errorf("no rule produced a configuration for asset %s", asset.ID)
	}
	return best, nil
}

// Health reports the engine status for the health endpoint
func (e *Engine) Health() string {
	if len(e.rules) == 0 {
		return "unhealthy: no rules configured"
	}
	return "healthy"
}

// teamPatternRule maps a detected user role to the export configuration
// that role most commonly downloads.
type teamPatternRule struct {
	weight float64
}

func (r *teamPatternRule) Name() string { return "team_patterns" }

func (r *teamPatternRule) Evaluate(asset models.Asset, ctx models.UserContext) (*models.SmartDefaults, bool) {
	var d models.SmartDefaults

	switch ctx.UserRole {
	case "developer":
		// Developers grab small vectors for READMEs and docs sites.
		d = models.SmartDefaults{Format: "svg", Size: "small", Color: "1-color"}
	case "designer":
		d = models.SmartDefaults{Format: "svg", Size: "large", Color: "fullcolor"}
	case "marketing":
		d = models.SmartDefaults{Format: "png", Size: "large", Color: "fullcolor"}
	default:
		return nil, false
	}

	d.Background = backgroundFor(asset, ctx)
	d.Confidence = clamp(r.weight + contextBonus(ctx))

	if strings.EqualFold(asset.FileType, "PDF") {
		// Documents have no export configuration beyond the file itself.
		d.Format = "pdf"
		d.Color = "fullcolor"
	}

	return &d, true
}

// popularityRule is the fallback: the most commonly downloaded configuration
// for the asset's type, nudged by the device theme.
type popularityRule struct {
	weight float64
}

func (r *popularityRule) Name() string { return "popularity" }

func (r *popularityRule) Evaluate(asset models.Asset, ctx models.UserContext) (*models.SmartDefaults, bool) {
	d := models.SmartDefaults{
		Format:     "png",
		Size:       "medium",
		Color:      "fullcolor",
		Background: backgroundFor(asset, ctx),
	}

	switch strings.ToUpper(asset.FileType) {
	case "SVG":
		d.Format = "svg"
	case "PDF":
		d.Format = "pdf"
	}

	d.Confidence = clamp(r.weight + contextBonus(ctx)/2)
	return &d, true
}

// backgroundFor picks the background the export will sit on: the asset's own
// background variant when it has one, otherwise the one matching the device
// theme.
func backgroundFor(asset models.Asset, ctx models.UserContext) string {
	if asset.Background != "" {
		return asset.Background
	}
	if ctx.DeviceTheme == "dark" {
		return "dark"
	}
	return "light"
}

// contextBonus rewards richer contexts: each detected signal slightly raises
// confidence, mirroring the parameter-count boost in the search scorer.
func contextBonus(ctx models.UserContext) float64 {
	bonus := 0.0
	for _, v := range []string{ctx.DeviceTheme, ctx.UserRole, ctx.TimeOfDay} {
		if v != "" {
			bonus += 0.05
		}
	}
	return bonus
}

func clamp(v float64) float64 {
	return math.Round(math.Min(math.Max(v, 0), 1)*100) / 100
}
